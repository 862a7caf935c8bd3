package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/service"
)

func TestFormatRecords(t *testing.T) {
	f := NewConsoleFormatter()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No resources matched the filter", f.FormatRecords("pokemon", nil))
	})

	t.Run("tree", func(t *testing.T) {
		out := f.FormatRecords("pokemon", []filter.Record{
			{
				"name":  "charizard",
				"id":    float64(6),
				"types": []any{"fire", "flying"},
				"stats": map[string]any{"speed": float64(100), "attack": float64(84)},
			},
			{"name": "magmar", "id": float64(126), "types": []any{"fire"}, "abilities": []any{}},
		})

		assert.Contains(t, out, "Matching pokemon resources (2):")
		assert.Contains(t, out, "├── charizard (#6)\n")
		assert.Contains(t, out, "│   Types: fire, flying\n")
		assert.Contains(t, out, "│   Stats: attack 84 | speed 100\n")
		assert.Contains(t, out, "╰── magmar (#126)\n")
		assert.Contains(t, out, "    Types: fire\n")
		assert.NotContains(t, out, "Abilities")
	})
}

func TestFormatEvolution(t *testing.T) {
	f := NewConsoleFormatter()
	level := 16

	out := f.FormatEvolution([]service.EvolutionStage{
		{Species: "bulbasaur", Stage: 1},
		{Species: "ivysaur", Stage: 2, From: "bulbasaur", Trigger: "level-up", MinLevel: &level},
	})

	assert.Contains(t, out, "Evolution chain (2 stages):")
	assert.Contains(t, out, "╰── bulbasaur\n")
	assert.Contains(t, out, "    ╰── ivysaur (level-up, level 16)\n")
	assert.Equal(t, "No evolution data", f.FormatEvolution(nil))
}

func TestFormatEffectiveness(t *testing.T) {
	f := NewConsoleFormatter()

	tests := []struct {
		name       string
		multiplier float64
		want       string
	}{
		{"immune", 0, "normal → ghost: ×0 (no effect)\n"},
		{"double", 2, "normal → ghost: ×2 (super effective)\n"},
		{"half", 0.5, "normal → ghost: ×0.5 (not very effective)\n"},
		{"neutral", 1, "normal → ghost: ×1 (normal damage)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatEffectiveness("normal", []string{"ghost"}, tt.multiplier))
		})
	}

	assert.Equal(t, "fire → grass/bug: ×4 (super effective)\n",
		f.FormatEffectiveness("fire", []string{"grass", "bug"}, 4))
}
