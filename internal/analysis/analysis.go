// Package analysis holds the two classification filters. Both are pure: they
// never mutate the input records, and the originals stay available so summary
// counts always agree with the listed entries.
package analysis

import (
	"strings"

	"github.com/latortuga71/GoDriverReport/internal/driverquery"
)

// Stopped returns the drivers whose state matches the utility's literal
// "Stopped" string, in enumeration order. The comparison folds case since
// driverquery's casing is not stable across versions.
func Stopped(drivers []driverquery.DriverRecord) []driverquery.DriverRecord {
	var stopped []driverquery.DriverRecord
	for _, d := range drivers {
		if strings.EqualFold(d.State, "Stopped") {
			stopped = append(stopped, d)
		}
	}
	return stopped
}

// Unsigned returns the signature records whose IsSigned flag is false, in
// enumeration order.
func Unsigned(records []driverquery.SignatureRecord) []driverquery.SignatureRecord {
	var unsigned []driverquery.SignatureRecord
	for _, r := range records {
		if !r.IsSigned {
			unsigned = append(unsigned, r)
		}
	}
	return unsigned
}
