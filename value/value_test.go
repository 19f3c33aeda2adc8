package value

import (
	"testing"

	"github.com/espflash/nvs/errs"
	"github.com/espflash/nvs/format"
	"github.com/stretchr/testify/require"
)

func TestConstructors_KindAndAccessor(t *testing.T) {
	require.Equal(t, format.TypeU8, U8(5).Kind())
	require.Equal(t, uint8(5), U8(5).Uint8())

	require.Equal(t, format.TypeI8, I8(-5).Kind())
	require.Equal(t, int8(-5), I8(-5).Int8())

	require.Equal(t, format.TypeU16, U16(1883).Kind())
	require.Equal(t, uint16(1883), U16(1883).Uint16())

	require.Equal(t, format.TypeI16, I16(-1000).Kind())
	require.Equal(t, int16(-1000), I16(-1000).Int16())

	require.Equal(t, format.TypeU32, U32(100000).Kind())
	require.Equal(t, uint32(100000), U32(100000).Uint32())

	require.Equal(t, format.TypeI32, I32(-100000).Kind())
	require.Equal(t, int32(-100000), I32(-100000).Int32())

	require.Equal(t, format.TypeStr, Str("HomeWiFi").Kind())
	require.Equal(t, "HomeWiFi", Str("HomeWiFi").String())

	require.Equal(t, format.TypeBlob, Blob([]byte{1, 2, 3}).Kind())
	require.Equal(t, []byte{1, 2, 3}, Blob([]byte{1, 2, 3}).Bytes())
}

func TestBlob_DefensiveCopyOnConstruct(t *testing.T) {
	src := []byte{1, 2, 3}
	v := Blob(src)
	src[0] = 0xFF
	require.Equal(t, byte(1), v.Bytes()[0])
}

func TestBlob_DefensiveCopyOnRead(t *testing.T) {
	v := Blob([]byte{1, 2, 3})
	out := v.Bytes()
	out[0] = 0xFF
	require.Equal(t, byte(1), v.Bytes()[0])
}

func TestAccessor_PanicsOnWrongKind(t *testing.T) {
	require.Panics(t, func() { U8(1).Uint16() })
	require.Panics(t, func() { Str("x").Bytes() })
}

func TestAutoInt_PicksNarrowestType(t *testing.T) {
	v, err := AutoInt(5)
	require.NoError(t, err)
	require.Equal(t, format.TypeI8, v.Kind())

	v, err = AutoInt(-200)
	require.NoError(t, err)
	require.Equal(t, format.TypeI16, v.Kind())

	v, err = AutoInt(100000)
	require.NoError(t, err)
	require.Equal(t, format.TypeI32, v.Kind())

	_, err = AutoInt(1 << 40)
	require.ErrorIs(t, err, errs.ErrValueTooLarge)
}

func TestAutoUint_PicksNarrowestType(t *testing.T) {
	v, err := AutoUint(5)
	require.NoError(t, err)
	require.Equal(t, format.TypeU8, v.Kind())

	v, err = AutoUint(1883)
	require.NoError(t, err)
	require.Equal(t, format.TypeU16, v.Kind())

	v, err = AutoUint(100000)
	require.NoError(t, err)
	require.Equal(t, format.TypeU32, v.Kind())

	_, err = AutoUint(1 << 40)
	require.ErrorIs(t, err, errs.ErrValueTooLarge)
}

func TestPayloadLen(t *testing.T) {
	require.Equal(t, 1, U8(1).PayloadLen())
	require.Equal(t, 2, U16(1).PayloadLen())
	require.Equal(t, 4, U32(1).PayloadLen())
	require.Equal(t, len("HomeWiFi")+1, Str("HomeWiFi").PayloadLen())
	require.Equal(t, 3, Blob([]byte{1, 2, 3}).PayloadLen())
}
