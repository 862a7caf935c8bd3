package filter

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	env := createRuntimeEnvironment(Record{})
	maps.Copy(env, c.helperFuncs)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(), // record fields vary per family
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether rec matches. Evaluation errors, such as a field
// of the wrong type, count as no match.
func (f *exprFilter) Evaluate(rec Record) bool {
	ok, err := f.Run(rec)
	return err == nil && ok
}

// Run evaluates the filter and returns any runtime error.
func (f *exprFilter) Run(rec Record) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(rec))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Subject:    subjectOf(rec),
			Reason:     "runtime error",
			Err:        err,
		}
	}
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// IsThreadSafe indicates that expr filters are thread-safe
func (f *exprFilter) IsThreadSafe() bool {
	return true
}

// CompileFilter compiles an expression with a fresh uncached compiler.
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}

// ToRecord converts any JSON-serializable value into a Record.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds the record-independent helpers to env
func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["has"] = listContains
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation
func createRuntimeEnvironment(rec Record) map[string]any {
	env := make(map[string]any, len(rec)+16)

	maps.Copy(env, rec)
	env["Record"] = rec

	addHelperFunctions(env)

	env["hasType"] = createListFunc(rec["types"])
	env["hasAbility"] = createListFunc(rec["abilities"])
	env["hasMove"] = createListFunc(rec["moves"])
	env["hasFlavor"] = createListFunc(rec["flavors"])
	env["hasAttribute"] = createListFunc(rec["attributes"])
	env["stat"] = createStatFunc(rec["stats"])
	env["field"] = func(name string) any {
		return rec[name]
	}

	return env
}

func createListFunc(list any) func(string) bool {
	return func(value string) bool {
		return listContains(list, value)
	}
}

func createStatFunc(stats any) func(string) float64 {
	m, _ := stats.(map[string]any)
	return func(name string) float64 {
		switch v := m[strings.ToLower(name)].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
		return 0
	}
}

// listContains reports whether list holds value, case-insensitively.
func listContains(list any, value string) bool {
	items, ok := list.([]any)
	if !ok {
		if strs, ok := list.([]string); ok {
			for _, s := range strs {
				if strings.EqualFold(s, value) {
					return true
				}
			}
		}
		return false
	}
	for _, item := range items {
		if s, ok := item.(string); ok && strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}

func subjectOf(rec Record) string {
	if name, ok := rec["name"].(string); ok {
		return name
	}
	if id, ok := rec["id"]; ok {
		return fmt.Sprint(id)
	}
	return "unknown"
}
