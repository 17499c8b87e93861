// Package resolver turns the venue reference strings that accumulated
// across the platform's lifetime (canonical hex ids, legacy composite
// slugs, bare numeric ids) into a canonical venue record. Each identifier
// scheme is one strategy in an ordered chain; adding or retiring a scheme
// touches only its own strategy.
package resolver

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"bookmyspot/internal/models"
)

// VenueStore is the read-only lookup surface the resolver consumes. A nil
// venue with a nil error means "no match".
type VenueStore interface {
	FindByCanonicalID(ctx context.Context, id string) (*models.Venue, error)
	FindByLegacyNumericID(ctx context.Context, n int64) (*models.Venue, error)
	FindByCategoryID(ctx context.Context, categoryID int64) (*models.Venue, error)
	SampleAlternatives(ctx context.Context, n int) ([]models.VenueSummary, error)
}

// canonicalIDPattern matches the primary record-identifier shape: a
// 24-character hex string.
var canonicalIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

const (
	legacyPrefix    = "venue-"
	fallbackMarker  = "fallback"
	maxAlternatives = 3
)

// Result is the outcome of a resolution. Either Venue is set, or it is nil
// and Alternatives carries up to three suggestions. A miss is a value, not
// an error.
type Result struct {
	Venue        *models.Venue         `json:"venue,omitempty"`
	Alternatives []models.VenueSummary `json:"alternatives,omitempty"`
}

// Found reports whether resolution produced a venue.
func (r Result) Found() bool { return r.Venue != nil }

type Resolver struct {
	store VenueStore
}

func New(store VenueStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve tries each identifier scheme in order and returns the first
// match. Malformed input is never an error: it simply falls through every
// strategy to a not-found result carrying sampled alternatives. Store
// failures are treated as misses so resolution is total over its input.
func (r *Resolver) Resolve(ctx context.Context, rawID string) Result {
	rawID = strings.TrimSpace(rawID)

	if canonicalIDPattern.MatchString(rawID) {
		if v, err := r.store.FindByCanonicalID(ctx, strings.ToLower(rawID)); err == nil && v != nil {
			return Result{Venue: v}
		}
	}

	if categoryID, ok := parseLegacyComposite(rawID); ok {
		if v, err := r.store.FindByCategoryID(ctx, categoryID); err == nil && v != nil {
			return Result{Venue: v}
		}
	}

	if n, err := strconv.ParseInt(rawID, 10, 64); err == nil {
		if v, lookupErr := r.store.FindByLegacyNumericID(ctx, n); lookupErr == nil && v != nil {
			return Result{Venue: v}
		}
		if v, lookupErr := r.store.FindByCategoryID(ctx, n); lookupErr == nil && v != nil {
			return Result{Venue: v}
		}
	}

	return Result{Alternatives: r.alternatives(ctx)}
}

// parseLegacyComposite recognises the old "venue-...fallback..." slugs. The
// slug must carry at least four dash-separated segments; the fourth one is
// an event category id ("venue-fallback-x-7" -> 7).
func parseLegacyComposite(rawID string) (int64, bool) {
	if !strings.HasPrefix(rawID, legacyPrefix) || !strings.Contains(rawID, fallbackMarker) {
		return 0, false
	}
	segments := strings.Split(rawID, "-")
	if len(segments) < 4 {
		return 0, false
	}
	categoryID, err := strconv.ParseInt(segments[3], 10, 64)
	if err != nil {
		return 0, false
	}
	return categoryID, true
}

func (r *Resolver) alternatives(ctx context.Context) []models.VenueSummary {
	alts, err := r.store.SampleAlternatives(ctx, maxAlternatives)
	if err != nil {
		return nil
	}
	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}
	return alts
}
