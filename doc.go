// File: doc.go

// Package config provides thread-safe runtime configuration management
// for Go applications, merging descriptor-supplied defaults, process-wide
// properties, and environment variables into a single queryable mapping
// with asynchronous, listener-observable updates.
//
// Features:
//   - Fixed merge precedence: environment > properties > defaults
//   - Descriptor-based defaults with snake_case field-name mapping,
//     built by hand or derived from struct tags
//   - Staged batch alterations applied asynchronously with a Future
//     completion handle
//   - Ordered change listeners with per-listener failure isolation
//   - Typed getters that fall back to a supplied default on parse failure
//   - One-shot seeding from TOML, JSON, or YAML files
//   - Graceful shutdown with bounded draining of in-flight alterations
//
// Quick Start:
//
//	type CacheConfig struct {
//	    CacheTtl       string `default:"3600"`  // key "cache_ttl"
//	    CacheSize      string `default:"1000"`  // key "cache_size"
//	    Enabled        string `config:"cache.enabled" default:"true"`
//	    EvictionPolicy string `default:"LRU"`
//	}
//
//	mgr := config.New()
//	desc, _ := config.DescribeStruct("cache", CacheConfig{})
//	src, _ := mgr.CreateAnnotatedSource(desc)
//	mgr.SetConfiguration(src)
//
//	ttl := mgr.IntValue("cache_ttl", 3600)
//
//	mgr.AddChangeListener(func(changes map[string]string) {
//	    // react to applied alterations
//	})
//
//	alt, _ := mgr.AlterConfiguration()
//	future := alt.SetValue("cache.enabled", "false").Apply()
//	_ = future.Wait(context.Background())
//
// Thread Safety:
// All operations are safe for concurrent use. Reads never block on
// pending writes; concurrent alterations on disjoint keys interleave
// freely, while those touching the same key resolve last-write-wins by
// completion order.
package config
