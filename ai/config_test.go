package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigWithOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://llm.internal:9100/v1"),
		WithModel("qwen2.5:3b"),
		WithTimeout(5*time.Second),
	)
	assert.Equal(t, "http://llm.internal:9100/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"missing suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		cfg := &Config{Model: "llama3.2"}
		require.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := &Config{Host: "http://localhost:11434"}
		require.Error(t, cfg.Validate())
	})

	t.Run("negative timeout", func(t *testing.T) {
		cfg := NewConfig(WithTimeout(-time.Second))
		require.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})
}
