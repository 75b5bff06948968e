package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latortuga71/GoDriverReport/internal/config"
	"github.com/latortuga71/GoDriverReport/internal/driverquery"
	"github.com/latortuga71/GoDriverReport/internal/elevation"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputPath = filepath.Join(t.TempDir(), "report.txt")
	return cfg
}

func requireNoReport(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "no report file may exist at %s", path)
}

func TestRunWithoutElevationIssuesNoQuery(t *testing.T) {
	cfg := testConfig(t)
	queries := 0
	collect := func(ctx context.Context) (*driverquery.Inventory, error) {
		queries++
		return &driverquery.Inventory{}, nil
	}
	notElevated := func() error { return &elevation.PrivilegeError{} }

	code := run(cfg, 0, notElevated, collect)

	assert.Equal(t, exitPrivilege, code)
	assert.Zero(t, queries, "no enumeration query may be issued without elevation")
	requireNoReport(t, cfg.OutputPath)
}

func TestRunWithoutElevationDoesNotOverwriteReport(t *testing.T) {
	cfg := testConfig(t)
	previous := "report from an earlier elevated run\n"
	require.NoError(t, os.WriteFile(cfg.OutputPath, []byte(previous), 0644))

	code := run(cfg, 0, func() error { return &elevation.PrivilegeError{} }, func(ctx context.Context) (*driverquery.Inventory, error) {
		return &driverquery.Inventory{}, nil
	})

	assert.Equal(t, exitPrivilege, code)
	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, previous, string(data))
}

func TestRunQueryFailureWritesNoReport(t *testing.T) {
	cfg := testConfig(t)
	collect := func(ctx context.Context) (*driverquery.Inventory, error) {
		return nil, &driverquery.QueryError{Op: "verbose", Hint: "utility unavailable"}
	}

	code := run(cfg, 0, elevationGranted, collect)

	assert.Equal(t, exitQuery, code)
	requireNoReport(t, cfg.OutputPath)
}

func TestRunMissingUtilityWritesNoReport(t *testing.T) {
	cfg := testConfig(t)
	runner := &driverquery.Runner{
		VerboseArgv:   []string{"drvreport-test-no-such-utility", "/v", "/fo", "list"},
		SignatureArgv: []string{"drvreport-test-no-such-utility", "/si", "/fo", "csv"},
	}

	code := run(cfg, 0, elevationGranted, runner.Collect)

	assert.Equal(t, exitQuery, code)
	requireNoReport(t, cfg.OutputPath)
}

func TestRunWriteFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputPath = filepath.Join(cfg.OutputPath, "not-a-dir", "report.txt")

	code := run(cfg, 0, elevationGranted, emptyInventory)

	assert.Equal(t, exitWrite, code)
}

func TestRunSuccess(t *testing.T) {
	cfg := testConfig(t)
	collect := func(ctx context.Context) (*driverquery.Inventory, error) {
		return &driverquery.Inventory{
			Drivers: []driverquery.DriverRecord{
				{ModuleName: "NicDrv", DisplayName: "Network Adapter", State: "Running"},
				{ModuleName: "OldPrn", DisplayName: "Legacy Printer", State: "Stopped", PnPDeviceID: "USB\\VID_1"},
			},
			Signatures: []driverquery.SignatureRecord{
				{DeviceName: "Legacy Printer", IsSigned: false, DriverVersion: "1.0.0"},
			},
		}, nil
	}

	code := run(cfg, 0, elevationGranted, collect)

	assert.Zero(t, code)
	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Found 1 stopped drivers.")
	assert.Contains(t, string(data), "Name: OldPrn")
	assert.Contains(t, string(data), "Driver Version: 1.0.0")
}

func elevationGranted() error { return nil }

func emptyInventory(ctx context.Context) (*driverquery.Inventory, error) {
	return &driverquery.Inventory{}, nil
}
