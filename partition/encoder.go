package partition

import (
	"fmt"

	"github.com/espflash/nvs/errs"
	"github.com/espflash/nvs/format"
	"github.com/espflash/nvs/internal/hash"
	"github.com/espflash/nvs/internal/nstable"
	"github.com/espflash/nvs/internal/options"
	"github.com/espflash/nvs/section"
	"github.com/espflash/nvs/value"
)

// encodeConfig holds the state EncodeOption values mutate before Encode
// runs, following the teacher's options-carry-a-config-struct convention.
type encodeConfig struct {
	sequenceStart  uint32
	fingerprint    bool
	fingerprintOut *uint64
}

// EncodeOption configures a call to Encode.
type EncodeOption = options.Option[*encodeConfig]

// bitmapFill is the cosmetic byte the page manager stamps across the
// bitmap slot, matching the source tool's 0xAA 0xAA ... pattern rather
// than a reconstructed real per-slot bitmap (see spec note on the
// bitmap's on-device state tracking, which this tool never needs).
const bitmapFill = 0xAA

// WithSequenceStart overrides the page sequence number the first written
// page starts counting from. Defaults to 0.
func WithSequenceStart(n uint32) EncodeOption {
	return options.NoError(func(c *encodeConfig) { c.sequenceStart = n })
}

// WithFingerprint requests that Encode compute an xxHash64 fingerprint of
// the finished image and write it into out. out must be non-nil.
func WithFingerprint(out *uint64) EncodeOption {
	return options.NoError(func(c *encodeConfig) {
		c.fingerprint = true
		c.fingerprintOut = out
	})
}

// pageManager tracks the encoder's progress across the fixed-size page
// buffer as entries are reserved, generalizing the teacher's single
// growing-offset encoderState into a fixed-capacity, page-granular one.
type pageManager struct {
	image     []byte
	pageCount int
	cur       int // index of the page currently being filled
	slot      int // next free slot index within the current page, starting at section.DataSlotStart
	sequence  uint32
}

func newPageManager(partitionSize int, sequenceStart uint32) (*pageManager, error) {
	if partitionSize <= 0 || partitionSize%section.PageSize != 0 {
		return nil, fmt.Errorf("%w: %d is not a positive multiple of %d", errs.ErrInvalidPartitionSize, partitionSize, section.PageSize)
	}

	image := make([]byte, partitionSize)
	for i := range image {
		image[i] = section.Erased
	}

	return &pageManager{
		image:     image,
		pageCount: partitionSize / section.PageSize,
		cur:       0,
		slot:      section.DataSlotStart,
		sequence:  sequenceStart,
	}, nil
}

// reserve finds room for an entry spanning span consecutive slots,
// sealing the current page and advancing to the next if it doesn't fit.
// It returns the absolute byte offset the entry record (and any
// continuation slots) should be written at.
func (m *pageManager) reserve(span int) (int, error) {
	if span > section.MaxUsableSlots {
		return 0, fmt.Errorf("%w: entry spans %d slots, a page holds at most %d", errs.ErrPartitionTooSmall, span, section.MaxUsableSlots)
	}

	if m.slot+span > section.EntriesPerPage {
		m.seal()
		m.cur++
		m.slot = section.DataSlotStart
	}

	if m.cur >= m.pageCount {
		return 0, errs.ErrPartitionTooSmall
	}

	offset := m.cur*section.PageSize + section.HeaderSize + m.slot*section.EntrySize
	m.slot += span
	return offset, nil
}

// seal writes the current page's header, marking it Active, and stamps
// its bitmap slot. Unused pages are left entirely 0xFF (erased), matching
// the on-flash convention for never-written pages.
func (m *pageManager) seal() {
	if m.cur >= m.pageCount {
		return
	}

	start := m.cur * section.PageSize
	header := section.NewPageHeader(m.sequence)
	copy(m.image[start:start+section.HeaderSize], header.Bytes())
	m.sequence++

	m.writeBitmap()
}

// writeBitmap stamps the page's bitmap slot (slot 0) with the fixed
// 0xAA fill pattern. Real NVS firmware tracks per-slot used/freed state
// here; this tool only ever produces freshly written pages with no freed
// slots, so like the source tool it writes the cosmetic pattern rather
// than reconstructing a real bitmap, and on-device NVS ignores this
// slot's contents on read.
func (m *pageManager) writeBitmap() {
	start := m.cur*section.PageSize + section.HeaderSize
	bitmap := m.image[start : start+section.EntrySize]
	for i := range bitmap {
		bitmap[i] = bitmapFill
	}
}

// finish seals the final in-progress page if any entries were written to
// it. Page 0 is always sealed, so an encode with no entries still yields
// a sealed, empty first page.
func (m *pageManager) finish() {
	if m.slot > section.DataSlotStart || m.cur == 0 {
		m.seal()
	}
}

// Fingerprint computes the xxHash64 content fingerprint of an already
// finished partition image, the same value WithFingerprint would have
// populated during Encode. Callers that cached an image without keeping
// its fingerprint can recompute it here instead of re-encoding.
func Fingerprint(image []byte) uint64 {
	return hash.Fingerprint(image)
}

// Encode serializes data into a partition image of exactly partitionSize
// bytes. partitionSize must be a positive multiple of section.PageSize.
func Encode(data Data, partitionSize int, opts ...EncodeOption) ([]byte, error) {
	cfg := &encodeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	pm, err := newPageManager(partitionSize, cfg.sequenceStart)
	if err != nil {
		return nil, err
	}

	table := nstable.New()

	for _, ns := range data.Namespaces {
		if len(ns.Entries) == 0 {
			continue
		}

		nsIndex, isNew, err := assignNamespace(table, ns.Name)
		if err != nil {
			return nil, err
		}

		if isNew {
			if err := writeNamespaceDef(pm, ns.Name, nsIndex); err != nil {
				return nil, err
			}
		}

		for _, kv := range ns.Entries {
			if err := writeValueEntry(pm, nsIndex, kv.Key, kv.Value); err != nil {
				return nil, err
			}
		}
	}

	pm.finish()

	if cfg.fingerprint && cfg.fingerprintOut != nil {
		*cfg.fingerprintOut = hash.Fingerprint(pm.image)
	}

	return pm.image, nil
}

func assignNamespace(table *nstable.Table, name string) (index uint8, isNew bool, err error) {
	if idx, ok := table.Index(name); ok {
		return idx, false, nil
	}

	idx, err := table.Assign(name)
	if err != nil {
		return 0, false, err
	}

	return idx, true, nil
}

func writeNamespaceDef(pm *pageManager, name string, index uint8) error {
	e := section.Entry{
		Namespace: 0,
		Type:      format.TypeU8,
		Span:      1,
		Key:       name,
		Inline:    section.PutInlineUint(1, uint64(index)),
	}

	offset, err := pm.reserve(1)
	if err != nil {
		return err
	}

	raw, err := e.Bytes()
	if err != nil {
		return err
	}

	copy(pm.image[offset:offset+section.EntrySize], raw)
	return nil
}

// writeValueEntry reserves the slot span a value.Value needs and writes its
// entry record (plus, for STR/BLOB, its continuation payload slots).
func writeValueEntry(pm *pageManager, nsIndex uint8, key string, v value.Value) error {
	if len(key) > section.MaxKeyLen {
		return errs.ErrKeyTooLong
	}

	kind := v.Kind()
	switch kind {
	case format.TypeU8, format.TypeI8, format.TypeU16, format.TypeI16, format.TypeU32, format.TypeI32, format.TypeStr, format.TypeBlob:
	default:
		return fmt.Errorf("%w: key %q has type tag 0x%02x", errs.ErrValueUnsupported, key, byte(kind))
	}

	payloadLen := v.PayloadLen()
	if (kind == format.TypeStr || kind == format.TypeBlob) && payloadLen > section.MaxPayloadLen {
		return fmt.Errorf("%w: %s payload for key %q is %d bytes", errs.ErrValueTooLarge, kind, key, payloadLen)
	}
	span := kind.SpanFor(payloadLen)

	offset, err := pm.reserve(span)
	if err != nil {
		return err
	}

	e := section.Entry{
		Namespace: nsIndex,
		Type:      kind,
		Span:      uint8(span),
		Key:       key,
	}

	var payload []byte
	switch kind {
	case format.TypeStr:
		e.Inline = section.PutInlineLength(uint16(payloadLen))
		payload = append([]byte(v.String()), 0)
	case format.TypeBlob:
		e.Inline = section.PutInlineLength(uint16(payloadLen))
		payload = v.Bytes()
	default:
		e.Inline = section.PutInlineUint(kind.FixedWidth(), numericBits(v))
	}

	raw, err := e.Bytes()
	if err != nil {
		return err
	}

	copy(pm.image[offset:offset+section.EntrySize], raw)

	if payload != nil {
		copy(pm.image[offset+section.EntrySize:], payload)
	}

	return nil
}

// numericBits extracts the raw bit pattern of a fixed-width numeric value
// as a zero-extended uint64, for PutInlineUint.
func numericBits(v value.Value) uint64 {
	switch v.Kind() {
	case format.TypeU8:
		return uint64(v.Uint8())
	case format.TypeI8:
		return uint64(uint8(v.Int8()))
	case format.TypeU16:
		return uint64(v.Uint16())
	case format.TypeI16:
		return uint64(uint16(v.Int16()))
	case format.TypeU32:
		return uint64(v.Uint32())
	case format.TypeI32:
		return uint64(uint32(v.Int32()))
	default:
		return 0
	}
}
