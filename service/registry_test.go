package service

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pokedex/batch"
)

func TestRegistryFamilies(t *testing.T) {
	f := newFixture(t)
	reg, _ := newTestRegistry(t, f, nil)

	names := reg.Families()
	assert.True(t, slices.IsSorted(names))
	for _, want := range []string{"pokemon", "ability", "berry-flavor", "evolution-chain", "super-contest-effect", "language"} {
		assert.Contains(t, names, want)
	}

	fam, err := reg.Family(" Pokemon ")
	require.NoError(t, err)
	assert.Equal(t, "pokemon", fam.Endpoint())

	_, err = reg.Family("digimon")
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestFamilyViews(t *testing.T) {
	f := newFixture(t)
	f.json("/api/v2/ability/overgrow/", map[string]any{
		"id":   65,
		"name": "overgrow",
		"names": []map[string]any{
			{"name": "Overgrow", "language": map[string]string{"name": "en"}},
		},
	})
	reg, _ := newTestRegistry(t, f, nil)
	ctx := context.Background()

	fam, err := reg.Family("ability")
	require.NoError(t, err)

	raw, err := fam.Get(ctx, "overgrow")
	require.NoError(t, err)
	assert.IsType(t, &AbilityDetails{}, mustDetails(t, fam, "overgrow"))
	assert.NotNil(t, raw)

	res, err := fam.GetMany(ctx, []string{"overgrow", "blaze"}, batch.Options{})
	require.NoError(t, err)
	require.Len(t, res.Values, 1)
	details, ok := res.Values[0].(*AbilityDetails)
	require.True(t, ok)
	assert.Equal(t, "Overgrow", details.DisplayName)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "blaze", res.Failures[0].Item)
}

func mustDetails(t *testing.T, fam Family, id string) any {
	t.Helper()
	v, err := fam.Details(context.Background(), id)
	require.NoError(t, err)
	return v
}
