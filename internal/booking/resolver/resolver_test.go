package resolver_test

import (
	"context"
	"errors"
	"testing"

	"bookmyspot/internal/booking/resolver"
	"bookmyspot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	byCanonical map[string]*models.Venue
	byLegacy    map[int64]*models.Venue
	byCategory  map[int64]*models.Venue
	samples     []models.VenueSummary
	failAll     bool

	canonicalCalls int
	legacyCalls    int
}

func (s *stubStore) FindByCanonicalID(_ context.Context, id string) (*models.Venue, error) {
	s.canonicalCalls++
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.byCanonical[id], nil
}

func (s *stubStore) FindByLegacyNumericID(_ context.Context, n int64) (*models.Venue, error) {
	s.legacyCalls++
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.byLegacy[n], nil
}

func (s *stubStore) FindByCategoryID(_ context.Context, categoryID int64) (*models.Venue, error) {
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.byCategory[categoryID], nil
}

func (s *stubStore) SampleAlternatives(_ context.Context, n int) ([]models.VenueSummary, error) {
	if s.failAll {
		return nil, errors.New("store down")
	}
	if len(s.samples) > n {
		return s.samples[:n], nil
	}
	return s.samples, nil
}

func TestResolveCanonicalID(t *testing.T) {
	venue := &models.Venue{ID: "64f1b2c3d4e5f60718293a4b", Name: "Grand Palace"}
	store := &stubStore{byCanonical: map[string]*models.Venue{venue.ID: venue}}

	res := resolver.New(store).Resolve(context.Background(), "64f1b2c3d4e5f60718293a4b")
	require.True(t, res.Found())
	assert.Equal(t, "Grand Palace", res.Venue.Name)
}

func TestResolveLegacyComposite(t *testing.T) {
	venue := &models.Venue{ID: "aaaabbbbccccddddeeeeffff", Name: "Lakeside Lawn", SuitableEventCategoryIDs: []int64{7}}
	store := &stubStore{byCategory: map[int64]*models.Venue{7: venue}}

	res := resolver.New(store).Resolve(context.Background(), "venue-fallback-x-7")
	require.True(t, res.Found())
	assert.Equal(t, "Lakeside Lawn", res.Venue.Name)
}

func TestResolveBareNumericPrefersLegacyID(t *testing.T) {
	legacy := &models.Venue{ID: "111122223333444455556666", Name: "Legacy Hall"}
	byCategory := &models.Venue{ID: "777788889999aaaabbbbcccc", Name: "Category Hall"}
	store := &stubStore{
		byLegacy:   map[int64]*models.Venue{42: legacy},
		byCategory: map[int64]*models.Venue{42: byCategory},
	}

	res := resolver.New(store).Resolve(context.Background(), "42")
	require.True(t, res.Found())
	assert.Equal(t, "Legacy Hall", res.Venue.Name)
}

func TestResolveBareNumericFallsBackToCategory(t *testing.T) {
	venue := &models.Venue{ID: "777788889999aaaabbbbcccc", Name: "Category Hall"}
	store := &stubStore{byCategory: map[int64]*models.Venue{9: venue}}

	res := resolver.New(store).Resolve(context.Background(), "9")
	require.True(t, res.Found())
	assert.Equal(t, "Category Hall", res.Venue.Name)
}

// A 24-char hex string made only of digits also satisfies the bare-numeric
// form; the canonical lookup must win.
func TestResolveCanonicalPrecedence(t *testing.T) {
	id := "111111111111111111111111"
	canonical := &models.Venue{ID: id, Name: "Canonical"}
	store := &stubStore{byCanonical: map[string]*models.Venue{id: canonical}}

	res := resolver.New(store).Resolve(context.Background(), id)
	require.True(t, res.Found())
	assert.Equal(t, "Canonical", res.Venue.Name)
	assert.Equal(t, 1, store.canonicalCalls)
	assert.Equal(t, 0, store.legacyCalls)
}

func TestResolveNotFoundCarriesAlternatives(t *testing.T) {
	store := &stubStore{samples: []models.VenueSummary{
		{ID: "a", Name: "Alt A"},
		{ID: "b", Name: "Alt B"},
		{ID: "c", Name: "Alt C"},
		{ID: "d", Name: "Alt D"},
	}}

	res := resolver.New(store).Resolve(context.Background(), "definitely-not-a-venue")
	assert.False(t, res.Found())
	assert.Len(t, res.Alternatives, 3)
}

func TestResolveTotalOverGarbageInput(t *testing.T) {
	store := &stubStore{}
	r := resolver.New(store)

	inputs := []string{"", "   ", "venue-", "venue-fallback", "venue-fallback-x-notanint", "-1-2-3-", "zzzzzzzzzzzzzzzzzzzzzzzz", "9999999999999999999999999999"}
	for _, raw := range inputs {
		res := r.Resolve(context.Background(), raw)
		assert.False(t, res.Found(), "input %q", raw)
		assert.NotNil(t, res, "input %q", raw)
	}
}

func TestResolveStoreErrorsFallThrough(t *testing.T) {
	store := &stubStore{failAll: true}

	res := resolver.New(store).Resolve(context.Background(), "64f1b2c3d4e5f60718293a4b")
	assert.False(t, res.Found())
	assert.Empty(t, res.Alternatives)
}

func TestResolveEmptyVenueSetGivesEmptyAlternatives(t *testing.T) {
	store := &stubStore{}

	res := resolver.New(store).Resolve(context.Background(), "no-such-venue")
	assert.False(t, res.Found())
	assert.Empty(t, res.Alternatives)
}
