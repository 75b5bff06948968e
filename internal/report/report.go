// Package report renders the diagnostic report as an ordered list of
// independently-rendered sections and writes the concatenated result to disk.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/latortuga71/GoDriverReport/internal/driverquery"
)

const timestampFormat = "2006-01-02 15:04:05"

// Section renders one block of the report to a writer. Sections never depend
// on each other, which keeps each one testable on its own.
type Section interface {
	Render(w io.Writer) error
}

// Params carries everything the report needs. Stopped and Unsigned are the
// already-filtered subsets, in original enumeration order.
type Params struct {
	GeneratedAt time.Time
	RunID       string
	Stopped     []driverquery.DriverRecord
	Unsigned    []driverquery.SignatureRecord
}

// Report is an ordered list of sections.
type Report struct {
	sections []Section
}

// Build assembles the fixed section order: header, summary, stopped list,
// unsigned list, recommendations.
func Build(p Params) *Report {
	return &Report{sections: []Section{
		headerSection{generatedAt: p.GeneratedAt, runID: p.RunID},
		summarySection{stopped: len(p.Stopped), unsigned: len(p.Unsigned)},
		stoppedSection{drivers: p.Stopped},
		unsignedSection{records: p.Unsigned},
		footerSection{},
	}}
}

// Render produces the full report text in one pass.
func (r *Report) Render() (string, error) {
	var buf bytes.Buffer
	for _, s := range r.sections {
		if err := s.Render(&buf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// errWriter makes the first write failure sticky so a section can print its
// lines unconditionally and still surface every error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

type headerSection struct {
	generatedAt time.Time
	runID       string
}

func (s headerSection) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("Driver Analysis Report\n")
	ew.printf("======================\n")
	ew.printf("Generated on: %s (run %s)\n\n", s.generatedAt.Format(timestampFormat), s.runID)
	return ew.err
}

type summarySection struct {
	stopped  int
	unsigned int
}

func (s summarySection) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("--- Summary ---\n")
	ew.printf("Found %d stopped drivers.\n", s.stopped)
	ew.printf("Found %d unsigned drivers.\n", s.unsigned)
	ew.printf("Note: Not all stopped or unsigned drivers indicate a problem. This report is for informational purposes.\n\n")
	return ew.err
}

type stoppedSection struct {
	drivers []driverquery.DriverRecord
}

func (s stoppedSection) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("--- Stopped Drivers ---\n")
	if len(s.drivers) == 0 {
		ew.printf("No stopped drivers found.\n\n")
		return ew.err
	}
	for _, d := range s.drivers {
		// Empty fields render as blank values, never dropped lines, so
		// every entry has the same shape.
		ew.printf("  - Display Name: %s\n", d.DisplayName)
		ew.printf("    Name: %s\n", d.ModuleName)
		ew.printf("    State: %s\n", d.State)
		ew.printf("    PnP Device ID: %s\n\n", d.PnPDeviceID)
	}
	return ew.err
}

type unsignedSection struct {
	records []driverquery.SignatureRecord
}

func (s unsignedSection) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("--- Unsigned Drivers ---\n")
	if len(s.records) == 0 {
		ew.printf("No unsigned drivers found.\n\n")
		return ew.err
	}
	for _, r := range s.records {
		ew.printf("  - Device Name: %s\n", r.DeviceName)
		ew.printf("    Signed: %s\n", boolLabel(r.IsSigned))
		ew.printf("    Driver Version: %s\n\n", r.DriverVersion)
	}
	return ew.err
}

type footerSection struct{}

func (footerSection) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("--- Recommendations ---\n")
	ew.printf("1. Check Windows Update for the latest official drivers.\n")
	ew.printf("2. For specific hardware (e.g., graphics cards), visit the manufacturer's official website (NVIDIA, AMD, Intel).\n")
	ew.printf("3. Do NOT download drivers from third-party websites.\n\n")
	ew.printf("This report supplements the built-in Windows Update mechanism; it does not replace it.\n")
	return ew.err
}

func boolLabel(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
