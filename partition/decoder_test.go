package partition

import (
	"testing"

	"github.com/espflash/nvs/section"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyErasedImage(t *testing.T) {
	image := make([]byte, section.PageSize)
	for i := range image {
		image[i] = section.Erased
	}

	data, err := Decode(image)
	require.NoError(t, err)
	require.Empty(t, data.Namespaces)
}

func TestDecode_AllZeroPageSkippedWithoutDiagnostics(t *testing.T) {
	image := make([]byte, section.PageSize) // left all 0x00, not 0xFF

	var diags []Diagnostic
	data, err := Decode(image, WithCRCVerification(), WithDiagnostics(func(d Diagnostic) { diags = append(diags, d) }))
	require.NoError(t, err)
	require.Empty(t, data.Namespaces)
	require.Empty(t, diags)
}

func TestDecode_RejectsEmptyInput(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
}

// TestEncode_ScenarioS1_U16ExactBytes checks the exact wire bytes for
// {config: {port: 1883}}: namespace def at slot 1, the port entry at
// slot 2 with its little-endian payload at offset 24-25.
func TestEncode_ScenarioS1_U16ExactBytes(t *testing.T) {
	data := NewBuilder().Namespace("config").SetU16("port", 1883).Build()
	image, err := Encode(data, 0x6000)
	require.NoError(t, err)

	nsDef := image[section.HeaderSize+section.EntrySize : section.HeaderSize+2*section.EntrySize]
	require.Equal(t, uint8(0), nsDef[0])
	require.Equal(t, byte(1), nsDef[24])

	portSlot := image[section.HeaderSize+2*section.EntrySize : section.HeaderSize+3*section.EntrySize]
	require.Equal(t, uint8(1), portSlot[0])  // namespace index
	require.Equal(t, byte(0x02), portSlot[1]) // type U16
	require.Equal(t, byte(0x01), portSlot[2]) // span
	require.Equal(t, []byte{0x5B, 0x07}, portSlot[24:26])
}

// TestEncode_ScenarioS2_StringExactBytes checks the exact wire bytes for
// {config: {ssid: "HomeWiFi"}}.
func TestEncode_ScenarioS2_StringExactBytes(t *testing.T) {
	data := NewBuilder().Namespace("config").SetStr("ssid", "HomeWiFi").Build()
	image, err := Encode(data, 0x6000)
	require.NoError(t, err)

	ssidSlot := image[section.HeaderSize+2*section.EntrySize : section.HeaderSize+3*section.EntrySize]
	require.Equal(t, uint8(1), ssidSlot[0])
	require.Equal(t, byte(0x21), ssidSlot[1]) // type STR
	require.Equal(t, byte(0x02), ssidSlot[2]) // span
	require.Equal(t, []byte{0x09, 0x00}, ssidSlot[24:26])

	payloadSlot := image[section.HeaderSize+3*section.EntrySize : section.HeaderSize+4*section.EntrySize]
	require.Equal(t, []byte("HomeWiFi\x00"), payloadSlot[:9])
	for _, b := range payloadSlot[9:] {
		require.Equal(t, byte(0xFF), b)
	}
}

func TestDecode_U16PortRoundTrip(t *testing.T) {
	data := NewBuilder().Namespace("config").SetU16("port", 1883).Build()
	image, err := Encode(data, section.PageSize)
	require.NoError(t, err)

	out, err := Decode(image)
	require.NoError(t, err)
	require.Len(t, out.Namespaces, 1)
	require.Equal(t, "config", out.Namespaces[0].Name)
	require.Equal(t, "port", out.Namespaces[0].Entries[0].Key)
	require.Equal(t, uint16(1883), out.Namespaces[0].Entries[0].Value.Uint16())
}

func TestDecode_StringSSIDRoundTrip(t *testing.T) {
	data := NewBuilder().Namespace("wifi").SetStr("ssid", "HomeWiFi").Build()
	image, err := Encode(data, section.PageSize)
	require.NoError(t, err)

	out, err := Decode(image)
	require.NoError(t, err)
	require.Equal(t, "HomeWiFi", out.Namespaces[0].Entries[0].Value.String())
}

func TestDecode_MixedTypesRoundTrip(t *testing.T) {
	data := NewBuilder().
		Namespace("config").
		SetU8("flag", 1).
		SetI16("offset", -42).
		SetStr("label", "node-1").
		SetBlob("cert", []byte{0xDE, 0xAD, 0xBE, 0xEF}).
		Build()

	image, err := Encode(data, section.PageSize)
	require.NoError(t, err)

	out, err := Decode(image)
	require.NoError(t, err)
	require.Len(t, out.Namespaces, 1)
	entries := out.Namespaces[0].Entries
	require.Equal(t, uint8(1), entries[0].Value.Uint8())
	require.Equal(t, int16(-42), entries[1].Value.Int16())
	require.Equal(t, "node-1", entries[2].Value.String())
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, entries[3].Value.Bytes())
}

func TestDecode_NamespaceOrderPreserved(t *testing.T) {
	data := NewBuilder().
		Namespace("zeta").SetU8("a", 1).
		Namespace("alpha").SetU8("b", 2).
		Build()

	image, err := Encode(data, section.PageSize)
	require.NoError(t, err)

	out, err := Decode(image)
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha"}, []string{out.Namespaces[0].Name, out.Namespaces[1].Name})
}

func TestDecode_WithCRCVerificationDetectsCorruption(t *testing.T) {
	data := NewBuilder().Namespace("config").SetU16("port", 1883).Build()
	image, err := Encode(data, section.PageSize)
	require.NoError(t, err)

	image[section.HeaderSize+section.EntrySize+8] ^= 0xFF // corrupt the key byte of the namespace-definition entry

	var diags []Diagnostic
	_, err = Decode(image, WithCRCVerification(), WithDiagnostics(func(d Diagnostic) { diags = append(diags, d) }))
	require.NoError(t, err)
	require.NotEmpty(t, diags)
}

func TestDecode_UnknownNamespaceIndexGetsSyntheticName(t *testing.T) {
	data := NewBuilder().Namespace("config").SetU8("flag", 1).Build()
	image, err := Encode(data, section.PageSize)
	require.NoError(t, err)

	namespaceDefOffset := section.HeaderSize + section.EntrySize
	image[namespaceDefOffset] = 0xFF
	for i := 0; i < section.EntrySize; i++ {
		image[namespaceDefOffset+i] = section.Erased
	}

	var diags []Diagnostic
	out, err := Decode(image, WithDiagnostics(func(d Diagnostic) { diags = append(diags, d) }))
	require.NoError(t, err)
	require.Len(t, out.Namespaces, 1)
	require.Equal(t, "ns_1", out.Namespaces[0].Name)
	require.NotEmpty(t, diags)
}

func TestEncodeDecode_RoundTripFullPartition(t *testing.T) {
	data := NewBuilder().
		Namespace("config").
		SetU16("port", 1883).
		SetStr("ssid", "HomeWiFi").
		Namespace("device").
		SetU32("uptime", 123456).
		SetBlob("mac", []byte{0, 1, 2, 3, 4, 5}).
		Build()

	image, err := Encode(data, 2*section.PageSize)
	require.NoError(t, err)

	out, err := Decode(image)
	require.NoError(t, err)
	require.Equal(t, data, out)
}
