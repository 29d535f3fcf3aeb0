package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleConfigsLoad(t *testing.T) {
	tests := []struct {
		file  string
		names []string
	}{
		{"reload.yml", []string{"api", "web"}},
		{"reload.toml", []string{"server"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			cfg, err := Load(filepath.Join("..", "examples", tt.file))
			require.NoError(t, err)

			rules, err := cfg.Rules()
			require.NoError(t, err)
			assert.Equal(t, tt.names, rules.Names())
		})
	}
}

func TestExampleYAMLDetails(t *testing.T) {
	t.Setenv("RUST_LOG", "")

	cfg, err := Load(filepath.Join("..", "examples", "reload.yml"))
	require.NoError(t, err)
	rules, err := cfg.Rules()
	require.NoError(t, err)

	api, web := rules[0], rules[1]
	assert.Equal(t, []string{"RUST_LOG=debug"}, api.ProcessSpec().Env)
	assert.True(t, web.Triggers(filepath.Join(web.Path(), "src", "app", "main.tsx")))
	assert.False(t, web.Triggers(filepath.Join(web.Path(), "src", "app", "main.css")))
	assert.False(t, web.Triggers(filepath.Join(web.Path(), "node_modules", "x", "src", "a.ts")))
	assert.Equal(t, 10*time.Second, web.KillTimeout())
	assert.Equal(t, 300*time.Millisecond, web.Debounce())
}
