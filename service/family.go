package service

import (
	"context"

	"github.com/s0up4200/pokedex/batch"
	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/pokeapi"
)

// Family is the type-erased view of one resource family used by the CLI and
// the HTTP server.
type Family interface {
	Endpoint() string
	Get(ctx context.Context, identifier string) (any, error)
	Details(ctx context.Context, identifier string) (any, error)
	List(ctx context.Context, offset, limit int) (*pokeapi.NamedAPIResourceList, error)
	Random(ctx context.Context) (any, error)
	GetMany(ctx context.Context, identifiers []string, opts batch.Options) (batch.Result[string, any], error)
	Search(ctx context.Context, f filter.CompiledFilter, sample int) ([]filter.Record, error)
}

type family[T any] struct {
	res     *Resource[T]
	details func(ctx context.Context, identifier string) (any, error)
	view    func(*T) any
}

func newFamily[T any](res *Resource[T], view func(*T) any) *family[T] {
	return &family[T]{res: res, view: view}
}

func (f *family[T]) withDetails(fn func(ctx context.Context, identifier string) (any, error)) *family[T] {
	f.details = fn
	return f
}

func (f *family[T]) Endpoint() string {
	return f.res.Endpoint()
}

func (f *family[T]) Get(ctx context.Context, identifier string) (any, error) {
	v, err := f.res.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (f *family[T]) Details(ctx context.Context, identifier string) (any, error) {
	if f.details != nil {
		return f.details(ctx, identifier)
	}
	v, err := f.res.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return f.project(v), nil
}

func (f *family[T]) List(ctx context.Context, offset, limit int) (*pokeapi.NamedAPIResourceList, error) {
	return f.res.List(ctx, offset, limit)
}

func (f *family[T]) Random(ctx context.Context) (any, error) {
	v, err := f.res.Random(ctx)
	if err != nil {
		return nil, err
	}
	return f.project(v), nil
}

func (f *family[T]) GetMany(ctx context.Context, identifiers []string, opts batch.Options) (batch.Result[string, any], error) {
	res, err := f.res.GetMany(ctx, identifiers, opts)
	out := batch.Result[string, any]{
		Values:   make([]any, len(res.Values)),
		Failures: res.Failures,
	}
	for i, v := range res.Values {
		out.Values[i] = f.project(v)
	}
	return out, err
}

func (f *family[T]) Search(ctx context.Context, flt filter.CompiledFilter, sample int) ([]filter.Record, error) {
	return f.res.Search(ctx, flt, sample, f.view)
}

func (f *family[T]) project(v *T) any {
	if f.view == nil {
		return v
	}
	return f.view(v)
}

// summarize adapts a SummarizeX function to a family view.
func summarize[T, V any](fn func(*T) V) func(*T) any {
	return func(v *T) any { return fn(v) }
}
