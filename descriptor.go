// File: descriptor.go
package config

import (
	"fmt"
	"reflect"
	"strings"
)

// Field describes one default-bearing member of a configuration
// structure.
type Field struct {
	// Name is the identifier-style field name, mapped through
	// MapFieldName unless an explicit Key or RawName is set.
	Name string

	// Key overrides the lookup key entirely when non-empty.
	Key string

	// Default is the default value. Fields with an empty default are
	// never emitted during a scan.
	Default string

	// RawName disables name mapping, using Name verbatim as the key.
	RawName bool
}

// key resolves the lookup key for the field.
func (f Field) key() string {
	if f.Key != "" {
		return f.Key
	}
	if f.RawName {
		return f.Name
	}
	return MapFieldName(f.Name)
}

// Descriptor is an ordered set of default-bearing fields, typically one
// per configuration structure.
type Descriptor struct {
	// Name identifies the descriptor in logs. It plays no part in key
	// resolution.
	Name string

	Fields []Field
}

// Entry is a single key/value pair produced by a descriptor scan.
type Entry struct {
	Key   string
	Value string
}

// scanDefaults walks descriptors in order and emits (key, default) pairs.
// A pair is emitted only when the field carries a non-empty default and
// its key is not already present among previously emitted pairs or the
// existing map. First writer wins across the whole scan, so callers that
// pre-seed the base map block scanned defaults for the same key.
// Malformed fields are skipped; scanning never fails.
func scanDefaults(descriptors []Descriptor, existing map[string]string) []Entry {
	var entries []Entry
	seen := make(map[string]bool, len(existing))
	for k := range existing {
		seen[k] = true
	}

	for _, d := range descriptors {
		for _, f := range d.Fields {
			if f.Default == "" {
				continue
			}
			key := f.key()
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, Entry{Key: key, Value: f.Default})
		}
	}

	return entries
}

// DescribeStruct derives a Descriptor from struct tags, as a convenience
// over hand-built descriptors. It accepts a struct or a non-nil pointer
// to one and reads two tags per exported field:
//
//	config:"cache.enabled"       explicit key ("-" skips the field,
//	                             ",raw" keeps the field name verbatim)
//	default:"true"               default value (required to be emitted)
//
// Fields without an explicit key go through MapFieldName. Fields that
// cannot be described are skipped rather than failing the whole struct.
func DescribeStruct(name string, v any) (Descriptor, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Descriptor{}, fmt.Errorf("DescribeStruct requires a non-nil struct pointer or value")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Descriptor{}, fmt.Errorf("DescribeStruct requires a struct or struct pointer, got %T", v)
	}

	d := Descriptor{Name: name}
	t := rv.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("config")
		if tag == "-" {
			continue
		}

		field := Field{
			Name:    sf.Name,
			Default: sf.Tag.Get("default"),
		}

		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				field.Key = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "raw" {
					field.RawName = true
				}
			}
		}

		d.Fields = append(d.Fields, field)
	}

	return d, nil
}
