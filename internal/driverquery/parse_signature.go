package driverquery

import (
	"encoding/csv"
	"strings"
)

var (
	signedHeaders  = []string{"IsSigned", "Está firmado"}
	versionHeaders = []string{"Driver Version", "Versión del controlador"}
)

// ParseSignature parses `driverquery /si /fo csv` output. The device name is
// always the first column; the signature column is located by header so the
// parse works across locales. A missing signature column is a contract
// violation and fails the query outright, it is never guessed by position.
// The version column is optional and renders blank when absent.
func ParseSignature(output string) ([]SignatureRecord, error) {
	output = strings.ReplaceAll(output, "\r\n", "\n")

	r := csv.NewReader(strings.NewReader(strings.TrimSpace(output)))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &QueryError{
			Op:   "signature",
			Hint: "driverquery produced malformed CSV; verify the utility works by running 'driverquery /si /fo csv' manually",
			Err:  err,
		}
	}
	if len(rows) < 2 {
		return nil, &QueryError{
			Op:   "signature",
			Hint: "driverquery produced no signature records; verify the utility works by running 'driverquery /si /fo csv' manually",
		}
	}

	header := rows[0]
	signedIdx := columnIndex(header, signedHeaders)
	if signedIdx < 0 {
		return nil, &QueryError{
			Op:   "signature",
			Hint: "driverquery output did not contain the expected IsSigned column",
		}
	}
	versionIdx := columnIndex(header, versionHeaders)

	records := make([]SignatureRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= signedIdx || strings.TrimSpace(row[0]) == "" {
			continue
		}
		rec := SignatureRecord{
			DeviceName: strings.TrimSpace(row[0]),
			// driverquery emits TRUE/FALSE; anything that is not
			// literally FALSE counts as signed, matching the
			// utility's own semantics.
			IsSigned: !strings.EqualFold(strings.TrimSpace(row[signedIdx]), "false"),
		}
		if versionIdx >= 0 && len(row) > versionIdx {
			rec.DriverVersion = strings.TrimSpace(row[versionIdx])
		}
		records = append(records, rec)
	}
	return records, nil
}

func columnIndex(header []string, names []string) int {
	for i, h := range header {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}
