package cmd

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pokedex/config"
)

func TestGetFilterExpression(t *testing.T) {
	tests := []struct {
		name       string
		filterExpr string
		preset     string
		want       string
		wantPreset string
		wantErr    bool
	}{
		{name: "expression wins over preset", filterExpr: "type:fire", preset: "fast", want: "type:fire"},
		{name: "preset only", preset: "fast", wantPreset: "fast"},
		{name: "blank expression falls back to preset", filterExpr: "  ", preset: "fast", wantPreset: "fast"},
		{name: "nothing set", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filterExpr, preset = tt.filterExpr, tt.preset
			t.Cleanup(func() { filterExpr, preset = "", "" })

			got, err := getFilterExpression()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPreset, preset)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"}, os.Stderr)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestCommandTree(t *testing.T) {
	for _, name := range []string{"get", "details", "list", "random", "batch", "search", "evolution", "effectiveness", "status", "cache", "serve", "version", "update"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
