package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/espflash/nvs/partition"
	"github.com/espflash/nvs/value"
)

// record is one row of a CSV definition file, following the column
// convention of ESP-IDF's own nvs_partition_gen.py: a "namespace" row
// opens a new namespace, and the "data" rows that follow it belong to
// that namespace until the next "namespace" row.
type record struct {
	Key      string `yaml:"key"`
	Type     string `yaml:"type"` // "namespace" or "data"
	Encoding string `yaml:"encoding,omitempty"`
	Value    string `yaml:"value,omitempty"`
}

// yamlDefinition is the YAML alternative to the flat CSV row format: an
// ordered list of namespaces, each with an ordered list of key/encoding/
// value entries.
type yamlDefinition struct {
	Namespaces []yamlNamespace `yaml:"namespaces"`
}

type yamlNamespace struct {
	Name    string      `yaml:"name"`
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Key      string `yaml:"key"`
	Encoding string `yaml:"encoding"`
	Value    string `yaml:"value"`
}

// readCSVDefinition parses the nvs_partition_gen.py-style CSV into Data.
func readCSVDefinition(r io.Reader) (partition.Data, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return partition.Data{}, fmt.Errorf("reading csv: %w", err)
	}

	b := partition.NewBuilder()
	started := false
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}

		rec, err := rowToRecord(row)
		if err != nil {
			return partition.Data{}, fmt.Errorf("row %d: %w", i+1, err)
		}

		if rec.Type == "namespace" {
			b.Namespace(rec.Key)
			started = true
			continue
		}

		if !started {
			return partition.Data{}, fmt.Errorf("row %d: data row before any namespace row", i+1)
		}

		v, err := recordValue(rec)
		if err != nil {
			return partition.Data{}, fmt.Errorf("row %d (%s): %w", i+1, rec.Key, err)
		}

		b.Set(rec.Key, v)
	}

	return b.Build(), nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "key")
}

func rowToRecord(row []string) (record, error) {
	if len(row) < 2 {
		return record{}, fmt.Errorf("expected at least key,type columns, got %d", len(row))
	}

	rec := record{Key: strings.TrimSpace(row[0]), Type: strings.TrimSpace(row[1])}
	if len(row) > 2 {
		rec.Encoding = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		rec.Value = row[3]
	}

	return rec, nil
}

// readYAMLDefinition parses the nested YAML definition format into Data.
func readYAMLDefinition(r io.Reader) (partition.Data, error) {
	var doc yamlDefinition
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return partition.Data{}, fmt.Errorf("reading yaml: %w", err)
	}

	b := partition.NewBuilder()
	for _, ns := range doc.Namespaces {
		b.Namespace(ns.Name)
		for _, e := range ns.Entries {
			v, err := recordValue(record{Key: e.Key, Encoding: e.Encoding, Value: e.Value})
			if err != nil {
				return partition.Data{}, fmt.Errorf("namespace %s, key %s: %w", ns.Name, e.Key, err)
			}
			b.Set(e.Key, v)
		}
	}

	return b.Build(), nil
}

// recordValue converts a record's encoding/value pair into a value.Value.
func recordValue(rec record) (value.Value, error) {
	switch strings.ToLower(rec.Encoding) {
	case "u8":
		n, err := strconv.ParseUint(rec.Value, 10, 8)
		return value.U8(uint8(n)), wrapParse(err, rec)
	case "i8":
		n, err := strconv.ParseInt(rec.Value, 10, 8)
		return value.I8(int8(n)), wrapParse(err, rec)
	case "u16":
		n, err := strconv.ParseUint(rec.Value, 10, 16)
		return value.U16(uint16(n)), wrapParse(err, rec)
	case "i16":
		n, err := strconv.ParseInt(rec.Value, 10, 16)
		return value.I16(int16(n)), wrapParse(err, rec)
	case "u32":
		n, err := strconv.ParseUint(rec.Value, 10, 32)
		return value.U32(uint32(n)), wrapParse(err, rec)
	case "i32":
		n, err := strconv.ParseInt(rec.Value, 10, 32)
		return value.I32(int32(n)), wrapParse(err, rec)
	case "string":
		return value.Str(rec.Value), nil
	case "binary", "blob":
		return value.Blob([]byte(rec.Value)), nil
	default:
		return value.Value{}, fmt.Errorf("unknown encoding %q", rec.Encoding)
	}
}

func wrapParse(err error, rec record) error {
	if err != nil {
		return fmt.Errorf("parsing %q as %s: %w", rec.Value, rec.Encoding, err)
	}
	return nil
}

// writeCSVDefinition renders Data back into the CSV row format generate
// reads, so dump's output can round trip through generate.
func writeCSVDefinition(w io.Writer, data partition.Data) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"key", "type", "encoding", "value"}); err != nil {
		return err
	}

	for _, ns := range data.Namespaces {
		if err := cw.Write([]string{ns.Name, "namespace", "", ""}); err != nil {
			return err
		}

		for _, kv := range ns.Entries {
			encoding, text := encodeRecordValue(kv.Value)
			if err := cw.Write([]string{kv.Key, "data", encoding, text}); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeYAMLDefinition renders Data into the nested YAML definition format.
func writeYAMLDefinition(w io.Writer, data partition.Data) error {
	doc := yamlDefinition{Namespaces: make([]yamlNamespace, 0, len(data.Namespaces))}

	for _, ns := range data.Namespaces {
		out := yamlNamespace{Name: ns.Name, Entries: make([]yamlEntry, 0, len(ns.Entries))}
		for _, kv := range ns.Entries {
			encoding, text := encodeRecordValue(kv.Value)
			out.Entries = append(out.Entries, yamlEntry{Key: kv.Key, Encoding: encoding, Value: text})
		}
		doc.Namespaces = append(doc.Namespaces, out)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	return enc.Encode(doc)
}

func encodeRecordValue(v value.Value) (encoding, text string) {
	switch v.Kind().String() {
	case "u8":
		return "u8", strconv.FormatUint(uint64(v.Uint8()), 10)
	case "i8":
		return "i8", strconv.FormatInt(int64(v.Int8()), 10)
	case "u16":
		return "u16", strconv.FormatUint(uint64(v.Uint16()), 10)
	case "i16":
		return "i16", strconv.FormatInt(int64(v.Int16()), 10)
	case "u32":
		return "u32", strconv.FormatUint(uint64(v.Uint32()), 10)
	case "i32":
		return "i32", strconv.FormatInt(int64(v.Int32()), 10)
	case "string":
		return "string", v.String()
	default:
		return "binary", string(v.Bytes())
	}
}
