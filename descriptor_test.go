// File: descriptor_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKeyResolution(t *testing.T) {
	t.Run("ExplicitKeyWins", func(t *testing.T) {
		f := Field{Name: "cacheTtl", Key: "cache.ttl"}
		assert.Equal(t, "cache.ttl", f.key())
	})

	t.Run("MappedByDefault", func(t *testing.T) {
		f := Field{Name: "cacheTtl"}
		assert.Equal(t, "cache_ttl", f.key())
	})

	t.Run("RawNameSkipsMapping", func(t *testing.T) {
		f := Field{Name: "cacheTtl", RawName: true}
		assert.Equal(t, "cacheTtl", f.key())
	})
}

func TestScanDefaults(t *testing.T) {
	t.Run("EmitsInDeclarationOrder", func(t *testing.T) {
		d := Descriptor{Name: "cache", Fields: []Field{
			{Name: "cacheTtl", Default: "3600"},
			{Name: "cacheSize", Default: "1000"},
		}}

		entries := scanDefaults([]Descriptor{d}, nil)
		require.Len(t, entries, 2)
		assert.Equal(t, Entry{Key: "cache_ttl", Value: "3600"}, entries[0])
		assert.Equal(t, Entry{Key: "cache_size", Value: "1000"}, entries[1])
	})

	t.Run("FirstWriterWinsAcrossDescriptors", func(t *testing.T) {
		first := Descriptor{Fields: []Field{{Key: "x", Name: "a", Default: "first"}}}
		second := Descriptor{Fields: []Field{{Key: "x", Name: "b", Default: "second"}}}

		entries := scanDefaults([]Descriptor{first, second}, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, "first", entries[0].Value)
	})

	t.Run("ExistingMapBlocksDefaults", func(t *testing.T) {
		d := Descriptor{Fields: []Field{{Key: "x", Name: "a", Default: "scanned"}}}

		entries := scanDefaults([]Descriptor{d}, map[string]string{"x": "seeded"})
		assert.Empty(t, entries)
	})

	t.Run("EmptyDefaultSkipped", func(t *testing.T) {
		d := Descriptor{Fields: []Field{
			{Name: "noDefault"},
			{Name: "withDefault", Default: "v"},
		}}

		entries := scanDefaults([]Descriptor{d}, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, "with_default", entries[0].Key)
	})

	t.Run("MalformedFieldSkipped", func(t *testing.T) {
		d := Descriptor{Fields: []Field{
			{Default: "orphan"}, // no name, no key
			{Name: "ok", Default: "v"},
		}}

		entries := scanDefaults([]Descriptor{d}, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, "ok", entries[0].Key)
	})
}

func TestDescribeStruct(t *testing.T) {
	type cacheConfig struct {
		CacheTtl       string `default:"3600"`
		Enabled        string `config:"cache.enabled" default:"true"`
		EvictionPolicy string `config:",raw" default:"LRU"`
		Skipped        string `config:"-" default:"never"`
		NoDefault      string
		internal       string
	}

	t.Run("TagResolution", func(t *testing.T) {
		d, err := DescribeStruct("cache", cacheConfig{})
		require.NoError(t, err)
		assert.Equal(t, "cache", d.Name)
		require.Len(t, d.Fields, 4) // Skipped and internal excluded

		entries := scanDefaults([]Descriptor{d}, nil)
		got := make(map[string]string, len(entries))
		for _, e := range entries {
			got[e.Key] = e.Value
		}

		assert.Equal(t, map[string]string{
			"cache_ttl":      "3600",
			"cache.enabled":  "true",
			"EvictionPolicy": "LRU",
		}, got)
	})

	t.Run("PointerInput", func(t *testing.T) {
		d, err := DescribeStruct("cache", &cacheConfig{})
		require.NoError(t, err)
		assert.NotEmpty(t, d.Fields)
	})

	t.Run("NonStructRejected", func(t *testing.T) {
		_, err := DescribeStruct("bad", 42)
		assert.Error(t, err)
	})

	t.Run("NilPointerRejected", func(t *testing.T) {
		_, err := DescribeStruct("bad", (*cacheConfig)(nil))
		assert.Error(t, err)
	})
}
