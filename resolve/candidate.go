package resolve

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/provider/placafipe"
	"github.com/sig-0/fipeval/types"
)

const plateNamespace = "plate"

// candidateResolver looks up a plate with the registry
// and picks the best FIPE candidate
type candidateResolver struct {
	plates PlateSource
	loader *loader
	ttl    time.Duration // 0 disables caching of registry answers
}

// Resolve performs a single registry lookup for the plate, and selects the winning candidate
func (r *candidateResolver) Resolve(ctx context.Context, plate types.PlateQuery) (*types.PlateMatch, error) {
	fetch := func(ctx context.Context) (*types.PlateLookup, error) {
		lookup, err := r.plates.LookupPlate(ctx, plate)
		if err != nil {
			return nil, classifyPlateError(err)
		}

		return lookup, nil
	}

	var (
		lookup *types.PlateLookup
		err    error
	)

	if r.ttl > 0 {
		lookup, err = load(ctx, r.loader, cache.Key(plateNamespace, plate.String()), r.ttl, fetch)
	} else {
		lookup, err = fetch(ctx)
	}

	if err != nil {
		return nil, err
	}

	candidate, ok := SelectCandidate(lookup.Candidates)
	if !ok {
		return nil, ErrNotFound
	}

	return &types.PlateMatch{
		Vehicle:   lookup.Vehicle,
		Candidate: candidate,
	}, nil
}

// SelectCandidate picks the candidate with the highest correspondence,
// breaking ties by highest similarity and then by lowest fipe code.
// The outcome does not depend on the input order
func SelectCandidate(candidates []types.FipeCandidate) (types.FipeCandidate, bool) {
	if len(candidates) == 0 {
		return types.FipeCandidate{}, false
	}

	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, compareCandidates)

	return sorted[0], true
}

func compareCandidates(a, b types.FipeCandidate) int {
	if c := cmp.Compare(b.Correspondence, a.Correspondence); c != 0 {
		return c
	}

	if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
		return c
	}

	return strings.Compare(a.FipeCode.String(), b.FipeCode.String())
}

// classifyPlateError maps a registry failure to the resolver's error kinds
func classifyPlateError(err error) error {
	if errors.Is(err, placafipe.ErrMissingToken) {
		return fmt.Errorf("%w: %w", ErrProviderMisconfigured, err)
	}

	return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
}
