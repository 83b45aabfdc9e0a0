package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessr/internal/game"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "GUESSR_NUMERIC_MIN", "GUESSR_NUMERIC_MAX", "GUESSR_WORDS_FILE", "GUESSR_AUDIT_DB", "GUESSR_INSPECT_ADDR", "GUESSR_SEED"} {
		t.Setenv(k, "")
	}

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, game.DefaultConfig(), c.Game())
	assert.Equal(t, zerolog.WarnLevel, c.Level())
	assert.Empty(t, c.WordsFile)
	assert.Empty(t, c.AuditDB)
	assert.Empty(t, c.InspectAddr)
	assert.Equal(t, "guessr", c.Seed)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GUESSR_NUMERIC_MIN", "-5")
	t.Setenv("GUESSR_NUMERIC_MAX", "5")
	t.Setenv("GUESSR_WORDS_FILE", "/tmp/words.yaml")
	t.Setenv("GUESSR_AUDIT_DB", "./data/audit.db")
	t.Setenv("GUESSR_INSPECT_ADDR", "127.0.0.1:9090")
	t.Setenv("GUESSR_SEED", "abc")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, game.Config{Min: -5, Max: 5}, c.Game())
	assert.Equal(t, zerolog.DebugLevel, c.Level())
	assert.Equal(t, "/tmp/words.yaml", c.WordsFile)
	assert.Equal(t, "./data/audit.db", c.AuditDB)
	assert.Equal(t, "127.0.0.1:9090", c.InspectAddr)
	assert.Equal(t, "abc", c.Seed)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		is      error
	}{
		{name: "not an int", env: map[string]string{"GUESSR_NUMERIC_MIN": "one"}, wantErr: "parse env:"},
		{name: "empty range", env: map[string]string{"GUESSR_NUMERIC_MIN": "9", "GUESSR_NUMERIC_MAX": "3"}, is: game.ErrInvalidConfig},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
