// File: io_test.go
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/jadams1313/configuration-manager"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileValues(t *testing.T) {
	// The same configuration in each format must flatten identically.
	want := map[string]string{
		"app.name":       "svc",
		"app.debug":      "true",
		"server.port":    "8080",
		"server.timeout": "2.5",
	}

	t.Run("TOML", func(t *testing.T) {
		path := writeTempConfig(t, "config.toml", `
[app]
name = "svc"
debug = true

[server]
port = 8080
timeout = 2.5
`)
		values, err := config.LoadFileValues(path)
		require.NoError(t, err)
		assert.Equal(t, want, values)
	})

	t.Run("JSON", func(t *testing.T) {
		path := writeTempConfig(t, "config.json", `{
  "app": {"name": "svc", "debug": true},
  "server": {"port": 8080, "timeout": 2.5}
}`)
		values, err := config.LoadFileValues(path)
		require.NoError(t, err)
		assert.Equal(t, want, values)
	})

	t.Run("YAML", func(t *testing.T) {
		path := writeTempConfig(t, "config.yaml", `
app:
  name: svc
  debug: true
server:
  port: 8080
  timeout: 2.5
`)
		values, err := config.LoadFileValues(path)
		require.NoError(t, err)
		assert.Equal(t, want, values)
	})

	t.Run("ContentDetectionWithoutExtension", func(t *testing.T) {
		path := writeTempConfig(t, "appconfig", `{"server": {"port": 9090}}`)
		values, err := config.LoadFileValues(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"server.port": "9090"}, values)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.LoadFileValues(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, config.ErrConfigNotFound)
	})

	t.Run("MalformedContent", func(t *testing.T) {
		path := writeTempConfig(t, "broken.json", `{"unterminated": `)
		_, err := config.LoadFileValues(path)
		assert.Error(t, err)
	})

	t.Run("IntegralFloatNormalized", func(t *testing.T) {
		// 3.0 renders as "3" regardless of the source format.
		fixtures := map[string]string{
			"floats.yaml": "ratio: 3.0\n",
			"floats.toml": "ratio = 3.0\n",
			"floats.json": `{"ratio": 3.0}`,
		}
		for name, content := range fixtures {
			path := writeTempConfig(t, name, content)
			values, err := config.LoadFileValues(path)
			require.NoError(t, err)
			assert.Equal(t, "3", values["ratio"], name)
		}
	})

	t.Run("LargeIntegerKeepsPrecision", func(t *testing.T) {
		path := writeTempConfig(t, "big.json", `{"max": 9223372036854775807}`)
		values, err := config.LoadFileValues(path)
		require.NoError(t, err)
		assert.Equal(t, "9223372036854775807", values["max"])
	})
}

func TestNewStaticSourceFromFile(t *testing.T) {
	path := writeTempConfig(t, "seed.toml", `
[db]
host = "localhost"
port = 5432
`)

	props := config.NewProperties()
	src, err := config.NewStaticSourceFromFile(path, props)
	require.NoError(t, err)

	merged := src.Merge()
	assert.Equal(t, "localhost", merged["db.host"])
	assert.Equal(t, "5432", merged["db.port"])

	t.Run("MissingFilePropagates", func(t *testing.T) {
		_, err := config.NewStaticSourceFromFile(filepath.Join(t.TempDir(), "absent.toml"), props)
		assert.ErrorIs(t, err, config.ErrConfigNotFound)
	})
}
