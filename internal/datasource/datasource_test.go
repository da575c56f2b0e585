package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func newTestHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	return NewRateLimitedHTTPClient(cfg, nil)
}

const footballDataPayload = `{
	"matches": [
		{
			"id": 441234,
			"utcDate": "2024-01-20T15:00:00Z",
			"status": "FINISHED",
			"homeTeam": {"name": "Arsenal FC"},
			"awayTeam": {"name": "Chelsea FC"},
			"score": {"fullTime": {"home": 2, "away": 1}}
		},
		{
			"id": 441235,
			"utcDate": "2024-05-19T15:00:00Z",
			"status": "SCHEDULED",
			"homeTeam": {"name": "Everton FC"},
			"awayTeam": {"name": "Arsenal FC"},
			"score": {"fullTime": {"home": null, "away": null}}
		}
	]
}`

// TestFootballDataFetchSeason tests fixture parsing from football-data.org
func TestFootballDataFetchSeason(t *testing.T) {
	var gotPath, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotToken = r.Header.Get("X-Auth-Token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(footballDataPayload))
	}))
	defer server.Close()

	client := NewFootballDataClient(newTestHTTPClient(), server.URL, "test-key", "PL", true, nil)

	matches, err := client.FetchSeason(context.Background(), "2023/24")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if gotToken != "test-key" {
		t.Errorf("expected auth token header, got %q", gotToken)
	}
	if gotPath != "/competitions/PL/matches?season=2023" {
		t.Errorf("unexpected request path: %s", gotPath)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	finished := matches[0]
	if finished.HomeTeam != "Arsenal FC" || finished.AwayTeam != "Chelsea FC" {
		t.Errorf("unexpected teams: %s vs %s", finished.HomeTeam, finished.AwayTeam)
	}
	if finished.HomeScore == nil || *finished.HomeScore != 2 {
		t.Errorf("expected home score 2, got %v", finished.HomeScore)
	}
	if finished.Season != "2023/24" {
		t.Errorf("expected season 2023/24, got %s", finished.Season)
	}

	scheduled := matches[1]
	if scheduled.HomeScore != nil || scheduled.AwayScore != nil {
		t.Error("expected nil scores for scheduled match")
	}
}

// TestFootballDataAuthFailure tests 403 handling
func TestFootballDataAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewFootballDataClient(newTestHTTPClient(), server.URL, "bad-key", "PL", true, nil)

	_, err := client.FetchSeason(context.Background(), "2023/24")
	if err == nil {
		t.Fatal("expected error for auth failure")
	}

	dsErr, ok := err.(DataSourceError)
	if !ok || dsErr.Code != ErrCodeAuthenticationFailed {
		t.Errorf("expected authentication error, got: %v", err)
	}
}

// TestFootballDataDisabled tests the disabled source guard
func TestFootballDataDisabled(t *testing.T) {
	client := NewFootballDataClient(newTestHTTPClient(), "http://unused", "key", "PL", false, nil)

	_, err := client.FetchSeason(context.Background(), "2023/24")
	if err == nil {
		t.Fatal("expected error for disabled source")
	}
}

const oddsAPIPayload = `[
	{
		"id": "evt1",
		"commence_time": "2024-01-20T15:00:00Z",
		"home_team": "Arsenal",
		"away_team": "Chelsea",
		"bookmakers": [
			{
				"key": "bookie_a",
				"markets": [
					{
						"key": "h2h",
						"outcomes": [
							{"name": "Arsenal", "price": 1.85},
							{"name": "Chelsea", "price": 4.2},
							{"name": "Draw", "price": 3.9}
						]
					},
					{
						"key": "totals",
						"outcomes": [
							{"name": "Over", "price": 1.95, "point": 2.5},
							{"name": "Under", "price": 1.9, "point": 2.5}
						]
					}
				]
			}
		]
	}
]`

// TestOddsAPIFetchSeason tests odds parsing from the-odds-api.com
func TestOddsAPIFetchSeason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(oddsAPIPayload))
	}))
	defer server.Close()

	client := NewOddsAPIClient(newTestHTTPClient(), server.URL, "key", "soccer_epl", "uk", true, nil)

	matches, err := client.FetchSeason(context.Background(), "2023/24")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	match := matches[0]
	if match.Odds == nil {
		t.Fatal("expected odds on match")
	}
	if match.Odds.Home == nil || !match.Odds.Home.Equal(decimalFromString(t, "1.85")) {
		t.Errorf("expected home odds 1.85, got %v", match.Odds.Home)
	}
	if match.Odds.Draw == nil || !match.Odds.Draw.Equal(decimalFromString(t, "3.9")) {
		t.Errorf("expected draw odds 3.9, got %v", match.Odds.Draw)
	}
	if match.Odds.Over25 == nil || !match.Odds.Over25.Equal(decimalFromString(t, "1.95")) {
		t.Errorf("expected over odds 1.95, got %v", match.Odds.Over25)
	}
	if match.HomeScore != nil {
		t.Error("odds source must not carry scores")
	}
}

// TestSeasonStartYear tests season notation parsing
func TestSeasonStartYear(t *testing.T) {
	tests := []struct {
		season  string
		want    string
		wantErr bool
	}{
		{"2023/24", "2023", false},
		{"1999/00", "1999", false},
		{"2023-24", "", true},
		{"23/24", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := seasonStartYear(tt.season)
		if (err != nil) != tt.wantErr {
			t.Errorf("seasonStartYear(%q) error = %v, wantErr %v", tt.season, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("seasonStartYear(%q) = %q, want %q", tt.season, got, tt.want)
		}
	}
}

// TestHTTPClientRetriesServerErrors tests the retry policy on 503
func TestHTTPClientRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 3
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	cfg.RateLimit = 1000
	client := NewRateLimitedHTTPClient(cfg, nil)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected success after retries, got: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}
