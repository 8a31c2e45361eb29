// File: namemap_test.go
package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	config "github.com/jadams1313/configuration-manager"
)

func TestMapFieldName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"CamelCase", "dbHost", "db_host"},
		{"AcronymRunGetsPerCharUnderscores", "HTTPClient", "h_t_t_p_client"},
		{"Empty", "", ""},
		{"SingleLower", "x", "x"},
		{"SingleUpper", "X", "x"},
		{"AlreadySnake", "db_host", "db_host"},
		{"LeadingUpper", "CacheSize", "cache_size"},
		{"Digits", "maxRetries3", "max_retries3"},
		{"TrailingUpper", "cacheTTL", "cache_t_t_l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.MapFieldName(tt.input))
		})
	}
}
