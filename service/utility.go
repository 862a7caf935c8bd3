package service

import (
	"context"

	"github.com/jmgilman/go/errors"

	"github.com/s0up4200/pokedex/classify"
	"github.com/s0up4200/pokedex/pokeapi"
)

// UtilityService covers languages and raw resource lookups.
type UtilityService struct {
	base      *Base
	Languages *Resource[pokeapi.Language]
}

// NewUtilityService creates a UtilityService.
func NewUtilityService(base *Base) *UtilityService {
	return &UtilityService{
		base:      base,
		Languages: NewResource[pokeapi.Language](base, Descriptor{Endpoint: pokeapi.EndpointLanguage, Label: "language"}),
	}
}

// ResourceByURL fetches any API URL into a generic map.
func (s *UtilityService) ResourceByURL(ctx context.Context, rawURL string) (map[string]any, error) {
	if !s.base.IsValidURL(rawURL) {
		return nil, classify.Wrap(
			errors.Newf(errors.CodeInvalidInput, "url %q is not a resource URL", rawURL),
			"resource by url",
		)
	}
	return Fetch(ctx, s.base, "get resource "+rawURL, func(ctx context.Context) (map[string]any, error) {
		var v map[string]any
		if err := s.base.client.GetByURL(ctx, rawURL, &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}
