package partition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_ResumesExistingNamespace(t *testing.T) {
	data := NewBuilder().
		Namespace("config").SetU8("a", 1).
		Namespace("device").SetU8("b", 2).
		Namespace("config").SetU8("c", 3).
		Build()

	require.Len(t, data.Namespaces, 2)
	require.Len(t, data.Namespaces[0].Entries, 2)
	require.Equal(t, "a", data.Namespaces[0].Entries[0].Key)
	require.Equal(t, "c", data.Namespaces[0].Entries[1].Key)
}

func TestBuilder_SetBeforeNamespacePanics(t *testing.T) {
	require.Panics(t, func() {
		NewBuilder().SetU8("a", 1)
	})
}

func TestBuilder_TypedSetters(t *testing.T) {
	data := NewBuilder().
		Namespace("ns").
		SetU8("u8", 1).
		SetI8("i8", -1).
		SetU16("u16", 2).
		SetI16("i16", -2).
		SetU32("u32", 3).
		SetI32("i32", -3).
		SetStr("str", "x").
		SetBlob("blob", []byte{1}).
		Build()

	require.Len(t, data.Namespaces[0].Entries, 8)
}
