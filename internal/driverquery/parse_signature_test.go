package driverquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSignatureOutput = "\"Device Name\",\"INF Name\",\"IsSigned\",\"Driver Version\"\r\n" +
	"\"Network Adapter\",\"nicdrv.inf\",\"TRUE\",\"2.3.1\"\r\n" +
	"\"Legacy Printer\",\"oldprn.inf\",\"FALSE\",\"1.0.0\"\r\n"

func TestParseSignature(t *testing.T) {
	records, err := ParseSignature(sampleSignatureOutput)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, SignatureRecord{
		DeviceName:    "Network Adapter",
		IsSigned:      true,
		DriverVersion: "2.3.1",
	}, records[0])
	assert.Equal(t, SignatureRecord{
		DeviceName:    "Legacy Printer",
		IsSigned:      false,
		DriverVersion: "1.0.0",
	}, records[1])
}

func TestParseSignatureSpanishHeaders(t *testing.T) {
	output := "\"Nombre de dispositivo\",\"Está firmado\",\"Versión del controlador\"\n" +
		"\"Impresora antigua\",\"FALSE\",\"1.0.0\"\n"

	records, err := ParseSignature(output)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Impresora antigua", records[0].DeviceName)
	assert.False(t, records[0].IsSigned)
	assert.Equal(t, "1.0.0", records[0].DriverVersion)
}

func TestParseSignatureQuotedCommaInDeviceName(t *testing.T) {
	output := "\"Device Name\",\"IsSigned\"\n" +
		"\"Widget, Inc. Audio\",\"FALSE\"\n"

	records, err := ParseSignature(output)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Widget, Inc. Audio", records[0].DeviceName)
	assert.False(t, records[0].IsSigned)
}

func TestParseSignatureMissingVersionColumn(t *testing.T) {
	output := "\"Device Name\",\"IsSigned\"\n" +
		"\"Legacy Printer\",\"FALSE\"\n"

	records, err := ParseSignature(output)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].DriverVersion)
}

func TestParseSignatureMissingSignedColumnFails(t *testing.T) {
	output := "\"Device Name\",\"INF Name\"\n" +
		"\"Legacy Printer\",\"oldprn.inf\"\n"

	_, err := ParseSignature(output)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "signature", qe.Op)
	assert.Contains(t, err.Error(), "IsSigned")
}

func TestParseSignatureEmptyOutputFails(t *testing.T) {
	for _, output := range []string{"", "\"Device Name\",\"IsSigned\"\n"} {
		_, err := ParseSignature(output)
		var qe *QueryError
		require.ErrorAs(t, err, &qe)
	}
}
