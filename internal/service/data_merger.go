package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/betlab/internal/datasource"
	"github.com/yourusername/betlab/internal/logger"
	"github.com/yourusername/betlab/internal/models"
	"github.com/yourusername/betlab/internal/resolver"
)

// DataMerger converts provider records to internal match records and folds
// odds-only records onto fixtures. Team names resolve against the canonical
// set so that all providers land on the same spelling.
type DataMerger struct {
	canonical []string
	log       *logger.IngestionLogger
}

// NewDataMerger creates a new data merger
func NewDataMerger(canonical []string, log *logger.IngestionLogger) *DataMerger {
	return &DataMerger{
		canonical: canonical,
		log:       log,
	}
}

// SetCanonical replaces the canonical team set, typically after the store
// has grown during a historical sync
func (m *DataMerger) SetCanonical(canonical []string) {
	m.canonical = canonical
}

// BuildMatchKey builds the provider match key, e.g. EPL_2024_01_20_Arsenal_Chelsea.
// Spaces inside team names become hyphens so underscores stay structural.
func BuildMatchKey(league string, date time.Time, home, away string) string {
	return fmt.Sprintf("%s_%s_%s_%s",
		league,
		date.Format("2006_01_02"),
		strings.ReplaceAll(home, " ", "-"),
		strings.ReplaceAll(away, " ", "-"),
	)
}

// Normalize converts a fixture record to an internal match record
func (m *DataMerger) Normalize(record *datasource.MatchData, source string) (*models.Match, error) {
	if record == nil {
		return nil, fmt.Errorf("source record is nil")
	}

	home := m.resolveTeam(record.HomeTeam, source)
	away := m.resolveTeam(record.AwayTeam, source)

	league := record.League
	if league == "" {
		league = "EPL"
	}

	match := &models.Match{
		ID:        uuid.New(),
		MatchKey:  BuildMatchKey(league, record.Date, home, away),
		Date:      record.Date,
		Season:    record.Season,
		League:    league,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: record.HomeScore,
		AwayScore: record.AwayScore,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if record.Odds != nil {
		m.applyOdds(match, record.Odds)
	}

	return match, nil
}

// Merge folds odds-only records onto fixtures matched by day and teams.
// Odds that match no fixture are dropped; fixtures always survive.
func (m *DataMerger) Merge(fixtures []*models.Match, oddsRecords []datasource.MatchData, source string) {
	index := make(map[string]*models.Match, len(fixtures))
	for _, fixture := range fixtures {
		index[mergeKey(fixture.Date, fixture.HomeTeam, fixture.AwayTeam)] = fixture
	}

	for i := range oddsRecords {
		record := &oddsRecords[i]
		if record.Odds == nil {
			continue
		}

		home := m.resolveTeam(record.HomeTeam, source)
		away := m.resolveTeam(record.AwayTeam, source)

		fixture, ok := index[mergeKey(record.Date, home, away)]
		if !ok {
			if m.log != nil {
				m.log.WithField("home", home).WithField("away", away).Debug("No fixture for odds record")
			}
			continue
		}

		m.applyOdds(fixture, record.Odds)
	}
}

// resolveTeam resolves a provider team name to its canonical spelling,
// falling back to the trimmed input when resolution fails
func (m *DataMerger) resolveTeam(input, source string) string {
	res := resolver.Resolve(input, m.canonical)
	if res.Found() {
		return res.Name
	}

	if m.log != nil {
		m.log.LogResolverMiss(input, source)
	}
	return strings.TrimSpace(input)
}

// applyOdds converts decimal provider odds onto the match record
func (m *DataMerger) applyOdds(match *models.Match, odds *datasource.OddsData) {
	converted := &models.MatchOdds{
		Home:    decimalToFloat(odds.Home),
		Draw:    decimalToFloat(odds.Draw),
		Away:    decimalToFloat(odds.Away),
		Over25:  decimalToFloat(odds.Over25),
		Under25: decimalToFloat(odds.Under25),
	}

	if odds.Closing {
		match.OddsClosing = converted
	} else {
		match.OddsOpening = converted
	}
}

func decimalToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// mergeKey keys fixtures by calendar day and teams for odds matching
func mergeKey(date time.Time, home, away string) string {
	return date.UTC().Format("2006-01-02") + "|" + home + "|" + away
}
