// Package driverquery shells out to the Windows driverquery utility and turns
// its tabular output into typed records. The utility's output shape is treated
// as an untrusted boundary: both parsers enforce an explicit column contract
// and report violations as a QueryError instead of guessing.
package driverquery

import "fmt"

// DriverRecord is one row of the verbose enumeration (driverquery /v /fo list).
// ModuleName is the unique service key. PnPDeviceID may be empty for non-PnP
// drivers. Records are never mutated after parsing.
type DriverRecord struct {
	ModuleName  string
	DisplayName string
	State       string
	PnPDeviceID string
}

// SignatureRecord is one row of the signature enumeration
// (driverquery /si /fo csv). It is intentionally not joined against
// DriverRecord; the two queries do not share a reliable key across
// driverquery locales and versions.
type SignatureRecord struct {
	DeviceName    string
	IsSigned      bool
	DriverVersion string
}

// Inventory holds both record sets from a single collection run, in the order
// the utility enumerated them. That order drives report ordering downstream.
type Inventory struct {
	Drivers    []DriverRecord
	Signatures []SignatureRecord
}

// QueryError covers every way the enumeration can fail: the utility missing
// from PATH, a non-zero exit, a timeout, or output that violates the parsing
// contract. None of these are transient, so callers never retry.
type QueryError struct {
	Op   string
	Hint string
	Err  error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("driver query failed (%s): %v. %s", e.Op, e.Err, e.Hint)
	}
	return fmt.Sprintf("driver query failed (%s). %s", e.Op, e.Hint)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
