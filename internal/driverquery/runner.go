package driverquery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/latortuga71/GoDriverReport/internal/log"
)

const defaultTimeout = 2 * time.Minute

// Runner invokes the enumeration utility. Both argv slices carry the utility
// name in element zero so configured overrides can swap the whole command.
type Runner struct {
	Timeout       time.Duration
	VerboseArgv   []string
	SignatureArgv []string
}

// Collect runs the verbose and signature queries and parses both outputs.
// The queries are independent reads of the same inventory so they run
// concurrently; nothing downstream depends on their relative completion order.
// Any failure aborts the collection, there is nothing transient to retry.
func (r *Runner) Collect(ctx context.Context) (*Inventory, error) {
	var (
		wg      sync.WaitGroup
		drivers []DriverRecord
		sigs    []SignatureRecord
		vErr    error
		sErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		out, err := r.run(ctx, "verbose", r.VerboseArgv)
		if err != nil {
			vErr = err
			return
		}
		drivers, vErr = ParseVerbose(out)
	}()
	go func() {
		defer wg.Done()
		out, err := r.run(ctx, "signature", r.SignatureArgv)
		if err != nil {
			sErr = err
			return
		}
		sigs, sErr = ParseSignature(out)
	}()
	wg.Wait()

	if vErr != nil {
		return nil, vErr
	}
	if sErr != nil {
		return nil, sErr
	}
	return &Inventory{Drivers: drivers, Signatures: sigs}, nil
}

func (r *Runner) run(ctx context.Context, op string, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", &QueryError{Op: op, Hint: "no enumeration command configured"}
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Log.Info().Msgf("Executing '%s'...", strings.Join(argv, " "))
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return "", &QueryError{
				Op:   op,
				Err:  err,
				Hint: fmt.Sprintf("the query did not finish within %s; a malfunctioning driver can hang enumeration", timeout),
			}
		case errors.Is(err, exec.ErrNotFound):
			return "", &QueryError{
				Op:   op,
				Err:  err,
				Hint: fmt.Sprintf("make sure '%s' is available on the system PATH", argv[0]),
			}
		default:
			hint := fmt.Sprintf("verify '%s' works by running it manually", argv[0])
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				hint = fmt.Sprintf("the utility reported: %s", msg)
			}
			return "", &QueryError{Op: op, Err: err, Hint: hint}
		}
	}
	log.Log.Debug().Msgf("%s query returned %d bytes", op, stdout.Len())
	return decodeConsoleOutput(stdout.Bytes()), nil
}

// decodeConsoleOutput converts the utility's stdout to UTF-8. Console tools on
// Windows write through the legacy OEM code page (CP850 on western locales),
// so raw bytes that are not already valid UTF-8 get decoded from that.
func decodeConsoleOutput(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.CodePage850.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
