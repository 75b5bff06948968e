package driverquery

import (
	"strings"
)

// driverquery localizes its headers. The map folds the locales we have seen in
// the wild (English and Spanish) onto one set of keys; unknown headers pass
// through untouched so extra columns never break a parse.
var listHeaderMap = map[string]string{
	"Module Name":                      "ModuleName",
	"Nombre de módulo":                 "ModuleName",
	"Display Name":                     "DisplayName",
	"Nombre a mostrar":                 "DisplayName",
	"Driver Description":               "Description",
	"Descripción del controlador":      "Description",
	"Driver Type":                      "DriverType",
	"Tipo de controlador":              "DriverType",
	"Tipo":                             "DriverType",
	"State":                            "State",
	"Estado":                           "State",
	"PnP Device ID":                    "PnPDeviceID",
	"Id. de dispositivo Plug and Play": "PnPDeviceID",
}

// ParseVerbose parses `driverquery /v /fo list` output: records separated by
// blank lines, one "Header: value" pair per line. Row order is preserved.
// Output in which no record carries a module or display name violates the
// contract and is reported as a QueryError.
func ParseVerbose(output string) ([]DriverRecord, error) {
	rows := parseListRows(output)
	if len(rows) == 0 {
		return nil, &QueryError{
			Op:   "verbose",
			Hint: "driverquery produced no parseable records; verify the utility works by running 'driverquery /v /fo list' manually",
		}
	}

	drivers := make([]DriverRecord, 0, len(rows))
	usable := false
	for _, row := range rows {
		rec := DriverRecord{
			ModuleName:  row["ModuleName"],
			DisplayName: row["DisplayName"],
			State:       row["State"],
			PnPDeviceID: row["PnPDeviceID"],
		}
		if rec.ModuleName != "" || rec.DisplayName != "" {
			usable = true
		}
		drivers = append(drivers, rec)
	}
	if !usable {
		return nil, &QueryError{
			Op:   "verbose",
			Hint: "driverquery output did not contain the expected Module Name / Display Name columns",
		}
	}
	return drivers, nil
}

func parseListRows(output string) []map[string]string {
	output = strings.ReplaceAll(output, "\r\n", "\n")

	var rows []map[string]string
	for _, record := range strings.Split(strings.TrimSpace(output), "\n\n") {
		row := make(map[string]string)
		for _, line := range strings.Split(record, "\n") {
			key, value, ok := splitHeaderLine(line)
			if !ok {
				continue
			}
			if mapped, known := listHeaderMap[key]; known {
				key = mapped
			}
			row[key] = value
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func splitHeaderLine(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
