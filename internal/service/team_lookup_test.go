package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/betlab/internal/resolver"
)

// TestResolveCanonicalTeam tests free-text lookup against stored team names
func TestResolveCanonicalTeam(t *testing.T) {
	repo := newMemoryMatchRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedMatch(6, "Arsenal", "Chelsea", 2, 0, 1.85)))
	require.NoError(t, repo.Create(ctx, storedMatch(13, "Aston Villa", "Arsenal", 1, 1, 2.40)))

	tests := []struct {
		name  string
		input string
		want  string
		tier  resolver.Tier
	}{
		{"exact", "Arsenal", "Arsenal", resolver.TierExact},
		{"case insensitive", "chelsea", "Chelsea", resolver.TierExact},
		{"provider suffix", "Arsenal FC", "Arsenal", resolver.TierSubstring},
		{"long form name", "Aston Villa Football Club", "Aston Villa", resolver.TierSubstring},
		{"unknown club", "Real Madrid", "", resolver.TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ResolveCanonicalTeam(ctx, repo, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.tier, res.Tier)
			assert.Equal(t, tt.want, res.Name)
			assert.Equal(t, tt.tier != resolver.TierNone, res.Found())
		})
	}
}

// TestResolveCanonicalTeamEmptyStore tests lookup before any ingestion ran
func TestResolveCanonicalTeamEmptyStore(t *testing.T) {
	res, err := ResolveCanonicalTeam(context.Background(), newMemoryMatchRepo(), "Arsenal")
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, "Arsenal", res.Input)
}
