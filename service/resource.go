package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/jmgilman/go/errors"

	"github.com/s0up4200/pokedex/batch"
	"github.com/s0up4200/pokedex/classify"
	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/validate"
)

// Descriptor names one resource family.
type Descriptor struct {
	// Endpoint is the API path segment, e.g. "berry-flavor".
	Endpoint string
	// Label prefixes validation messages and log fields.
	Label string
	// MaxID bounds Random. Zero asks the API for the current count.
	MaxID int
}

// Resource is a typed accessor for one endpoint.
type Resource[T any] struct {
	base *Base
	desc Descriptor
}

// NewResource creates a Resource for desc.
func NewResource[T any](base *Base, desc Descriptor) *Resource[T] {
	if desc.Label == "" {
		desc.Label = desc.Endpoint
	}
	return &Resource[T]{base: base, desc: desc}
}

// Endpoint returns the family's endpoint name.
func (r *Resource[T]) Endpoint() string {
	return r.desc.Endpoint
}

// Get fetches one resource by name or numeric ID. Numeric strings are
// treated as IDs; names are trimmed and lower-cased.
func (r *Resource[T]) Get(ctx context.Context, identifier string) (*T, error) {
	id := normalizeIdentifier(identifier)
	if err := r.base.ValidateIdentifier(id, r.desc.Label); err != nil {
		return nil, err
	}
	return r.fetch(ctx, fmt.Sprint(id))
}

// GetByID fetches one resource by numeric ID.
func (r *Resource[T]) GetByID(ctx context.Context, id int) (*T, error) {
	if err := r.base.ValidateIdentifier(id, r.desc.Label); err != nil {
		return nil, err
	}
	return r.fetch(ctx, strconv.Itoa(id))
}

func (r *Resource[T]) fetch(ctx context.Context, identifier string) (*T, error) {
	label := fmt.Sprintf("get %s %s", r.desc.Label, identifier)
	return Fetch(ctx, r.base, label, func(ctx context.Context) (*T, error) {
		var v T
		if err := r.base.client.Get(ctx, r.desc.Endpoint, identifier, &v); err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// GetByURL fetches a resource from an absolute URL embedded in another
// resource.
func (r *Resource[T]) GetByURL(ctx context.Context, rawURL string) (*T, error) {
	if !r.base.IsValidURL(rawURL) {
		return nil, classify.Wrap(
			errors.Newf(errors.CodeInvalidInput, "%s URL is invalid: %q", r.desc.Label, rawURL),
			r.desc.Label,
		)
	}
	label := fmt.Sprintf("get %s by url", r.desc.Label)
	return Fetch(ctx, r.base, label, func(ctx context.Context) (*T, error) {
		var v T
		if err := r.base.client.GetByURL(ctx, rawURL, &v); err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// List fetches one page of the family's index.
func (r *Resource[T]) List(ctx context.Context, offset, limit int) (*pokeapi.NamedAPIResourceList, error) {
	if err := r.base.ValidatePagination(offset, limit); err != nil {
		return nil, err
	}
	label := fmt.Sprintf("list %s", r.desc.Label)
	return Fetch(ctx, r.base, label, func(ctx context.Context) (*pokeapi.NamedAPIResourceList, error) {
		return r.base.client.List(ctx, r.desc.Endpoint, offset, limit)
	})
}

// GetMany validates every identifier, then fetches them as a batch. Values
// keep input order; failed identifiers are reported in Failures.
func (r *Resource[T]) GetMany(ctx context.Context, identifiers []string, opts batch.Options) (batch.Result[string, *T], error) {
	if err := validate.Items(identifiers, r.desc.Label+" identifiers", validate.DefaultMinItems, validate.DefaultMaxItems); err != nil {
		return batch.Result[string, *T]{}, classify.Wrap(err, r.desc.Label)
	}
	for _, identifier := range identifiers {
		if err := r.base.ValidateIdentifier(normalizeIdentifier(identifier), r.desc.Label); err != nil {
			return batch.Result[string, *T]{}, err
		}
	}
	return BatchOperation(ctx, r.base, identifiers, r.Get, opts)
}

// Random fetches a uniformly chosen resource.
func (r *Resource[T]) Random(ctx context.Context) (*T, error) {
	if r.desc.MaxID > 0 {
		return r.GetByID(ctx, rand.IntN(r.desc.MaxID)+1)
	}

	first, err := r.List(ctx, 0, 1)
	if err != nil {
		return nil, err
	}
	if first.Count == 0 {
		return nil, classify.Wrap(errors.Newf(errors.CodeNotFound, "no %s resources found", r.desc.Label), r.desc.Label)
	}

	page, err := r.List(ctx, rand.IntN(first.Count), 1)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, classify.Wrap(errors.Newf(errors.CodeNotFound, "no %s resources found", r.desc.Label), r.desc.Label)
	}
	return r.GetByURL(ctx, page.Results[0].URL)
}

// FilterSample lists the first sample resources, fetches each in full and
// keeps those matching pred. Fetch failures are logged and skipped.
func (r *Resource[T]) FilterSample(ctx context.Context, sample int, pred func(*T) bool) ([]*T, error) {
	all, err := r.Sample(ctx, sample)
	if err != nil {
		return nil, err
	}

	matches := make([]*T, 0, len(all))
	for _, v := range all {
		if pred(v) {
			matches = append(matches, v)
		}
	}
	return matches, nil
}

// Sample lists the first sample resources and fetches each in full.
func (r *Resource[T]) Sample(ctx context.Context, sample int) ([]*T, error) {
	page, err := r.List(ctx, 0, r.base.cfg.sampleSize(sample))
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, nil
	}

	urls := make([]string, len(page.Results))
	for i, res := range page.Results {
		urls[i] = res.URL
	}

	// A batch holds at most validate.DefaultMaxItems items.
	values := make([]*T, 0, len(urls))
	failed := 0
	for start := 0; start < len(urls); start += validate.DefaultMaxItems {
		end := min(start+validate.DefaultMaxItems, len(urls))
		result, err := BatchOperation(ctx, r.base, urls[start:end], r.GetByURL, batch.Options{})
		if err != nil {
			return nil, err
		}
		values = append(values, result.Values...)
		failed += len(result.Failures)
	}
	if failed > 0 {
		r.base.logger.Warn().
			Str("family", r.desc.Endpoint).
			Int("failed", failed).
			Int("sampled", len(urls)).
			Msg("Some sampled resources could not be fetched")
	}
	return values, nil
}

// Search samples the family and returns the views matching f, in sample
// order.
func (r *Resource[T]) Search(ctx context.Context, f filter.CompiledFilter, sample int, view func(*T) any) ([]filter.Record, error) {
	all, err := r.Sample(ctx, sample)
	if err != nil {
		return nil, err
	}

	records := make([]filter.Record, 0, len(all))
	for _, v := range all {
		var subject any = v
		if view != nil {
			subject = view(v)
		}
		rec, err := filter.ToRecord(subject)
		if err != nil {
			return nil, classify.Wrap(err, "search "+r.desc.Label)
		}
		records = append(records, rec)
	}

	matches, err := r.base.filters.Evaluate(ctx, f, records)
	if err != nil {
		return nil, classify.Wrap(err, "search "+r.desc.Label)
	}
	return matches, nil
}
