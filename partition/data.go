// Package partition assembles and parses whole NVS partition images: page
// layout, namespace indexing, and per-entry span placement, built on top of
// the byte-exact records in package section.
package partition

import "github.com/espflash/nvs/value"

// KV is one namespace-scoped key/value pair, in the order it was added.
type KV struct {
	Key   string
	Value value.Value
}

// Namespace is an ordered group of key/value pairs sharing one namespace
// name. Order is preserved from construction through encode and decode.
type Namespace struct {
	Name    string
	Entries []KV
}

// Data is the in-memory, namespace-ordered representation of a partition's
// contents: the thing Encode consumes and Decode produces. Namespaces and
// their entries are ordered slices, not maps, so that a round trip through
// Encode/Decode reproduces the same iteration order the caller built.
type Data struct {
	Namespaces []Namespace
}

// Builder provides a fluent, mutation-friendly way to assemble a Data value,
// mirroring the encoder-state style the teacher repo uses for its blob
// encoders: start a namespace, add typed values to it, move to the next.
type Builder struct {
	data Data
	cur  int // index into data.Namespaces of the namespace currently being filled, -1 if none
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{cur: -1}
}

// Namespace starts (or resumes) a namespace by name and returns the Builder
// for chaining. Calling Namespace again with a name already started resumes
// appending to that namespace instead of creating a duplicate.
func (b *Builder) Namespace(name string) *Builder {
	for i := range b.data.Namespaces {
		if b.data.Namespaces[i].Name == name {
			b.cur = i
			return b
		}
	}

	b.data.Namespaces = append(b.data.Namespaces, Namespace{Name: name})
	b.cur = len(b.data.Namespaces) - 1
	return b
}

// Set appends a key/value pair to the namespace most recently started with
// Namespace. Set panics if called before any Namespace call, the same
// narrow-contract convention package value uses for its kind accessors:
// a Builder misused this way is a programming error, not a runtime input
// to validate.
func (b *Builder) Set(key string, v value.Value) *Builder {
	if b.cur < 0 {
		panic("partition: Set called before Namespace")
	}

	ns := &b.data.Namespaces[b.cur]
	ns.Entries = append(ns.Entries, KV{Key: key, Value: v})
	return b
}

// SetU8 is a convenience wrapper around Set(key, value.U8(v)).
func (b *Builder) SetU8(key string, v uint8) *Builder { return b.Set(key, value.U8(v)) }

// SetI8 is a convenience wrapper around Set(key, value.I8(v)).
func (b *Builder) SetI8(key string, v int8) *Builder { return b.Set(key, value.I8(v)) }

// SetU16 is a convenience wrapper around Set(key, value.U16(v)).
func (b *Builder) SetU16(key string, v uint16) *Builder { return b.Set(key, value.U16(v)) }

// SetI16 is a convenience wrapper around Set(key, value.I16(v)).
func (b *Builder) SetI16(key string, v int16) *Builder { return b.Set(key, value.I16(v)) }

// SetU32 is a convenience wrapper around Set(key, value.U32(v)).
func (b *Builder) SetU32(key string, v uint32) *Builder { return b.Set(key, value.U32(v)) }

// SetI32 is a convenience wrapper around Set(key, value.I32(v)).
func (b *Builder) SetI32(key string, v int32) *Builder { return b.Set(key, value.I32(v)) }

// SetStr is a convenience wrapper around Set(key, value.Str(v)).
func (b *Builder) SetStr(key string, v string) *Builder { return b.Set(key, value.Str(v)) }

// SetBlob is a convenience wrapper around Set(key, value.Blob(v)).
func (b *Builder) SetBlob(key string, v []byte) *Builder { return b.Set(key, value.Blob(v)) }

// Build returns the assembled Data.
func (b *Builder) Build() Data {
	return b.data
}
