package analysis

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/betlab/internal/metrics"
	"github.com/yourusername/betlab/internal/models"
)

// CachedAnalyzer memoizes synthesized reports per team and season for a
// bounded TTL. Useful when a dashboard re-requests the same team while the
// underlying dataset has not been re-ingested.
type CachedAnalyzer struct {
	analyzer *Analyzer
	cache    *cache.Cache
	ttl      time.Duration
}

// NewCachedAnalyzer wraps an analyzer with a TTL report cache
func NewCachedAnalyzer(analyzer *Analyzer, ttl time.Duration) *CachedAnalyzer {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedAnalyzer{
		analyzer: analyzer,
		cache:    cache.New(ttl, ttl*2),
		ttl:      ttl,
	}
}

// Report returns the cached report for a team/season pair or computes it
func (c *CachedAnalyzer) Report(team, season string, matches []*models.Match) *InsightReport {
	key := cacheKey(team, season)
	if cached, found := c.cache.Get(key); found {
		if report, ok := cached.(*InsightReport); ok {
			metrics.RecordCacheLookup("hit")
			return report
		}
	}

	metrics.RecordCacheLookup("miss")
	report := Synthesize(c.analyzer.AnalyzeTeam(team, season, matches))
	c.cache.Set(key, report, c.ttl)
	return report
}

// Invalidate drops the cached reports for a team across all seasons
func (c *CachedAnalyzer) Invalidate(team string) {
	for key := range c.cache.Items() {
		if len(key) >= len(team) && key[:len(team)] == team {
			c.cache.Delete(key)
		}
	}
}

func cacheKey(team, season string) string {
	return fmt.Sprintf("%s:%s", team, season)
}
