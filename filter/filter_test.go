package filter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPokemon() []Record {
	return []Record{
		{
			"id": float64(1), "name": "bulbasaur", "height": float64(7), "weight": float64(69),
			"types":     []any{"grass", "poison"},
			"abilities": []any{"overgrow", "chlorophyll"},
			"stats":     map[string]any{"hp": float64(45), "speed": float64(45)},
		},
		{
			"id": float64(4), "name": "charmander", "height": float64(6), "weight": float64(85),
			"types":     []any{"fire"},
			"abilities": []any{"blaze", "solar-power"},
			"stats":     map[string]any{"hp": float64(39), "speed": float64(65)},
		},
		{
			"id": float64(6), "name": "charizard", "height": float64(17), "weight": float64(905),
			"types":     []any{"fire", "flying"},
			"abilities": []any{"blaze", "solar-power"},
			"stats":     map[string]any{"hp": float64(78), "speed": float64(100)},
		},
	}
}

func names(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r["name"].(string)
	}
	return out
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid expression", expression: `hasType("fire")`},
		{name: "empty expression", expression: "  ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `hasType("unclosed`, wantErr: true},
		{name: "non boolean", expression: `1 + 2`, wantErr: true},
		{name: "complex expression", expression: `hasType("fire") and height > 10 and stat("speed") >= 100`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, filter.Expression())
			assert.True(t, filter.IsThreadSafe())
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	records := testPokemon()

	tests := []struct {
		expression string
		want       []string
	}{
		{`hasType("fire")`, []string{"charmander", "charizard"}},
		{`hasType("FIRE") and hasType("flying")`, []string{"charizard"}},
		{`hasAbility("overgrow")`, []string{"bulbasaur"}},
		{`height > 6`, []string{"bulbasaur", "charizard"}},
		{`stat("speed") >= 65`, []string{"charmander", "charizard"}},
		{`startsWith(name, "char")`, []string{"charmander", "charizard"}},
		{`contains(name, "ZARD")`, []string{"charizard"}},
		{`has(types, "poison")`, []string{"bulbasaur"}},
		{`Record.weight < 100`, []string{"bulbasaur", "charmander"}},
		{`field("id") == 6`, []string{"charizard"}},
		{`missing > 3`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			require.NoError(t, err)

			var got []string
			for _, rec := range records {
				if filter.Evaluate(rec) {
					got = append(got, rec["name"].(string))
				}
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunReportsEvaluationError(t *testing.T) {
	filter, err := CompileFilter(`missing > 3`)
	require.NoError(t, err)

	runner, ok := filter.(interface{ Run(Record) (bool, error) })
	require.True(t, ok)

	_, err = runner.Run(testPokemon()[0])
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "bulbasaur", evalErr.Subject)
}

func TestToRecord(t *testing.T) {
	type view struct {
		Name   string   `json:"name"`
		Types  []string `json:"types"`
		Height int      `json:"height"`
	}

	rec, err := ToRecord(view{Name: "pikachu", Types: []string{"electric"}, Height: 4})
	require.NoError(t, err)
	assert.Equal(t, "pikachu", rec["name"])
	assert.Equal(t, float64(4), rec["height"])

	filter, err := CompileFilter(`hasType("electric") and height == 4`)
	require.NoError(t, err)
	assert.True(t, filter.Evaluate(rec))

	_, err = ToRecord(make(chan int))
	assert.Error(t, err)
}

func TestConcurrentEvaluation(t *testing.T) {
	var records []Record
	for i := range 1000 {
		records = append(records, Record{"name": fmt.Sprintf("p%d", i), "id": float64(i)})
	}

	evaluator := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(50))
	defer evaluator.Stop(context.Background())

	filter, err := CompileFilter(`id >= 500`)
	require.NoError(t, err)

	matches, err := evaluator.Evaluate(context.Background(), filter, records)
	require.NoError(t, err)
	require.Len(t, matches, 500)
	for i, m := range matches {
		assert.Equal(t, float64(500+i), m["id"])
	}
}

func TestConcurrentEvaluationCancelled(t *testing.T) {
	var records []Record
	for i := range 400 {
		records = append(records, Record{"id": float64(i)})
	}

	evaluator := NewConcurrentEvaluator(WithWorkers(2), WithBatchSize(10))
	defer evaluator.Stop(context.Background())

	filter, err := CompileFilter(`id >= 0`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = evaluator.Evaluate(ctx, filter, records)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchEvaluation(t *testing.T) {
	evaluator := NewConcurrentEvaluator(WithWorkers(2))
	defer evaluator.Stop(context.Background())

	fire, err := CompileFilter(`hasType("fire")`)
	require.NoError(t, err)
	tall, err := CompileFilter(`height > 10`)
	require.NoError(t, err)

	results, err := evaluator.EvaluateBatch(context.Background(), map[string]CompiledFilter{
		"fire": fire,
		"tall": tall,
	}, testPokemon())
	require.NoError(t, err)

	assert.Equal(t, []string{"charmander", "charizard"}, names(results["fire"]))
	assert.Equal(t, []string{"charizard"}, names(results["tall"]))
}

func TestFilterManager(t *testing.T) {
	m := NewManager()
	defer m.Close(context.Background())

	require.NoError(t, m.RegisterFilters(map[string]string{
		"starters-fire": `type:fire and height:<10`,
		"speedy":        `stat:speed>=100`,
	}))
	assert.Equal(t, []string{"speedy", "starters-fire"}, m.ListFilters())

	matches, err := m.EvaluateFilter(context.Background(), "starters-fire", testPokemon())
	require.NoError(t, err)
	assert.Equal(t, []string{"charmander"}, names(matches))

	all, err := m.EvaluateAll(context.Background(), testPokemon())
	require.NoError(t, err)
	assert.Equal(t, []string{"charizard"}, names(all["speedy"]))

	_, err = m.EvaluateFilter(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrFilterNotFound)

	err = m.RegisterFilters(map[string]string{"ok": `type:grass`, "broken": `hasType(`})
	require.Error(t, err)
	_, exists := m.GetFilter("ok")
	assert.False(t, exists)

	m.UnregisterFilter("speedy")
	_, exists = m.GetFilter("speedy")
	assert.False(t, exists)

	t.Run("resolve", func(t *testing.T) {
		f, err := m.Resolve("starters-fire", "ignored")
		require.NoError(t, err)
		assert.Equal(t, `hasType("fire") and height < 10`, f.Expression())

		f, err = m.Resolve("", `name:bulba`)
		require.NoError(t, err)
		matches, err := m.Evaluate(context.Background(), f, testPokemon())
		require.NoError(t, err)
		assert.Equal(t, []string{"bulbasaur"}, names(matches))

		_, err = m.Resolve("nope", "")
		assert.ErrorIs(t, err, ErrFilterNotFound)
	})
}

func TestConvertShorthand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`type:fire`, `hasType("fire")`},
		{`type!:"water"`, `not hasType("water")`},
		{`ability:solar-power AND move:tackle`, `hasAbility("solar-power") and hasMove("tackle")`},
		{`name:char OR flavor:spicy`, `contains(name, "char") or hasFlavor("spicy")`},
		{`stat:speed>100`, `stat("speed") > 100`},
		{`height:>=10 and cost:<300`, `height >= 10 and cost < 300`},
		{`hasType("fire") and height > 3`, `hasType("fire") and height > 3`},
		{``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ConvertShorthand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in != tt.want, IsShorthand(tt.in))
		})
	}
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	f1, err := compiler.Compile(`hasType("fire")`)
	require.NoError(t, err)
	f2, err := compiler.Compile(`  hasType("fire")  `)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`height > 1`)
	require.NoError(t, err)
	_, err = compiler.Compile(`height > 2`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestWorkerPoolStop(t *testing.T) {
	pool := NewWorkerPool(2)

	done := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func() { close(done) }))
	<-done

	require.NoError(t, pool.Stop(context.Background()))
	assert.ErrorIs(t, pool.Submit(context.Background(), func() {}), ErrPoolStopped)
}
