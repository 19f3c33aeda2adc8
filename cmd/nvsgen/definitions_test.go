package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSVDefinition_ParsesNamespacesAndTypes(t *testing.T) {
	csv := `key,type,encoding,value
storage,namespace,,
channel,data,u8,6
port,data,u16,8080
ssid,data,string,my-network
wifi,namespace,,
password,data,string,hunter2
`

	data, err := readCSVDefinition(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, data.Namespaces, 2)

	storage := data.Namespaces[0]
	require.Equal(t, "storage", storage.Name)
	require.Len(t, storage.Entries, 3)
	require.Equal(t, uint8(6), storage.Entries[0].Value.Uint8())
	require.Equal(t, uint16(8080), storage.Entries[1].Value.Uint16())
	require.Equal(t, "my-network", storage.Entries[2].Value.String())

	wifi := data.Namespaces[1]
	require.Equal(t, "wifi", wifi.Name)
	require.Equal(t, "hunter2", wifi.Entries[0].Value.String())
}

func TestReadCSVDefinition_DataBeforeNamespaceErrors(t *testing.T) {
	csv := `key,type,encoding,value
channel,data,u8,6
`
	_, err := readCSVDefinition(strings.NewReader(csv))
	require.Error(t, err)
}

func TestReadCSVDefinition_RejectsBadEncoding(t *testing.T) {
	csv := `key,type,encoding,value
storage,namespace,,
channel,data,weird,6
`
	_, err := readCSVDefinition(strings.NewReader(csv))
	require.Error(t, err)
}

func TestCSVDefinition_RoundTrip(t *testing.T) {
	original := `key,type,encoding,value
storage,namespace,,
channel,data,u8,6
port,data,u16,8080
ssid,data,string,my-network
`
	data, err := readCSVDefinition(strings.NewReader(original))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCSVDefinition(&buf, data))

	roundTripped, err := readCSVDefinition(&buf)
	require.NoError(t, err)
	require.Equal(t, data, roundTripped)
}

func TestReadYAMLDefinition_ParsesNestedStructure(t *testing.T) {
	yaml := `
namespaces:
  - name: storage
    entries:
      - key: channel
        encoding: u8
        value: "6"
      - key: ssid
        encoding: string
        value: my-network
`
	data, err := readYAMLDefinition(strings.NewReader(yaml))
	require.NoError(t, err)
	require.Len(t, data.Namespaces, 1)
	require.Equal(t, "storage", data.Namespaces[0].Name)
	require.Equal(t, uint8(6), data.Namespaces[0].Entries[0].Value.Uint8())
	require.Equal(t, "my-network", data.Namespaces[0].Entries[1].Value.String())
}

func TestYAMLDefinition_RoundTrip(t *testing.T) {
	original := `
namespaces:
  - name: storage
    entries:
      - key: channel
        encoding: u8
        value: "6"
      - key: blob
        encoding: binary
        value: "\x00\x01\x02"
`
	data, err := readYAMLDefinition(strings.NewReader(original))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeYAMLDefinition(&buf, data))

	roundTripped, err := readYAMLDefinition(&buf)
	require.NoError(t, err)
	require.Equal(t, data, roundTripped)
}

func TestParseCompressionType_AllValidNames(t *testing.T) {
	for _, name := range []string{"none", "zstd", "ZSTD"} {
		_, err := parseCompressionType(name)
		require.NoError(t, err)
	}
}

func TestParseCompressionType_RejectsUnknown(t *testing.T) {
	_, err := parseCompressionType("gzip")
	require.Error(t, err)
}
