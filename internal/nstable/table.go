// Package nstable assigns and resolves the small integer namespace
// indices that NVS entries reference. Indices are assigned 1..254 in the
// order namespace names are first seen, matching the wire format's
// requirement that namespace-definition entries appear in insertion
// order with strictly increasing index values.
package nstable

import "github.com/espflash/nvs/errs"

// MaxNamespaces is the largest number of distinct namespaces a single
// partition can hold. Index 0 is reserved for namespace-definition
// entries and 255 is reserved by the format, leaving 1..254.
const MaxNamespaces = 254

// Table tracks name <-> index assignment during encode, and index -> name
// resolution during decode. The zero value is not usable; use New.
type Table struct {
	nameToIndex map[string]uint8
	indexToName map[uint8]string
	order       []string
}

// New creates an empty namespace table.
func New() *Table {
	return &Table{
		nameToIndex: make(map[string]uint8),
		indexToName: make(map[uint8]string),
	}
}

// Assign registers name and returns its namespace index, assigning the
// next sequential index (starting at 1) the first time a name is seen.
// Calling Assign again with a name already registered is an error: each
// namespace must be started at most once per partition.
func (t *Table) Assign(name string) (uint8, error) {
	if _, exists := t.nameToIndex[name]; exists {
		return 0, errs.ErrDuplicateNamespace
	}

	if len(t.order) >= MaxNamespaces {
		return 0, errs.ErrTooManyNamespaces
	}

	idx := uint8(len(t.order) + 1) //nolint:gosec // bounded by MaxNamespaces above
	t.nameToIndex[name] = idx
	t.indexToName[idx] = name
	t.order = append(t.order, name)

	return idx, nil
}

// Register records a (index, name) pair read from a namespace-definition
// entry during decode. It does not enforce sequential assignment since a
// decoded image may legitimately contain gaps (a namespace removed by
// firmware at runtime, out of scope for this tool to reproduce but not
// to tolerate on read).
func (t *Table) Register(index uint8, name string) {
	if _, exists := t.indexToName[index]; exists {
		return
	}

	t.indexToName[index] = name
	t.nameToIndex[name] = index
	t.order = append(t.order, name)
}

// Lookup resolves a namespace index to its name, as recorded by Assign or
// Register. ok is false if the index was never registered.
func (t *Table) Lookup(index uint8) (name string, ok bool) {
	name, ok = t.indexToName[index]
	return name, ok
}

// Index resolves a namespace name to its assigned index. ok is false if
// the name was never assigned.
func (t *Table) Index(name string) (index uint8, ok bool) {
	index, ok = t.nameToIndex[name]
	return index, ok
}

// Names returns the registered namespace names in assignment order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Count returns the number of registered namespaces.
func (t *Table) Count() int {
	return len(t.order)
}
