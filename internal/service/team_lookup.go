package service

import (
	"context"
	"fmt"

	"github.com/yourusername/betlab/internal/repository"
	"github.com/yourusername/betlab/internal/resolver"
)

// ResolveCanonicalTeam maps free-text input to a canonical team name drawn
// from the match store. An unresolvable name comes back with TierNone and is
// the caller's signal to report empty results, not an error.
func ResolveCanonicalTeam(ctx context.Context, matchRepo repository.MatchRepository, input string) (resolver.Resolution, error) {
	teams, err := matchRepo.ListTeams(ctx)
	if err != nil {
		return resolver.Resolution{}, fmt.Errorf("failed to list tracked teams: %w", err)
	}
	return resolver.Resolve(input, teams), nil
}
