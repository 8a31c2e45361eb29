// File: properties_test.go
package config

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProperties(t *testing.T) {
	t.Run("SetAndValue", func(t *testing.T) {
		p := NewProperties()
		p.Set("app.name", "demo")

		v, ok := p.Value("app.name")
		assert.True(t, ok)
		assert.Equal(t, "demo", v)

		_, ok = p.Value("missing")
		assert.False(t, ok)
	})

	t.Run("EmptyKeyIgnored", func(t *testing.T) {
		p := NewProperties()
		p.Set("", "value")
		assert.Equal(t, 0, p.Len())
	})

	t.Run("SnapshotIsolation", func(t *testing.T) {
		p := NewProperties()
		p.Set("k", "v")

		snap := p.Snapshot()
		snap["k"] = "mutated"
		snap["extra"] = "x"

		v, _ := p.Value("k")
		assert.Equal(t, "v", v)
		assert.Equal(t, 1, p.Len())
	})

	t.Run("DeleteAndClear", func(t *testing.T) {
		p := NewProperties()
		p.Set("a", "1")
		p.Set("b", "2")

		p.Delete("a")
		_, ok := p.Value("a")
		assert.False(t, ok)
		assert.Equal(t, 1, p.Len())

		p.Clear()
		assert.Equal(t, 0, p.Len())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		p := NewProperties()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				key := fmt.Sprintf("key%d", n)
				p.Set(key, "v")
				p.Value(key)
				p.Snapshot()
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 20, p.Len())
	})
}
