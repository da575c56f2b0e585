// Package main provides the entry point for the strategy backtest CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/betlab/internal/backtest"
	"github.com/yourusername/betlab/internal/config"
	"github.com/yourusername/betlab/internal/database"
	"github.com/yourusername/betlab/internal/logger"
	"github.com/yourusername/betlab/internal/metrics"
	"github.com/yourusername/betlab/internal/models"
	"github.com/yourusername/betlab/internal/repository"
	"github.com/yourusername/betlab/internal/service"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		team         = flag.String("team", "", "Canonical team name to evaluate (required)")
		market       = flag.String("market", "home_win", "Market: home_win, draw, away_win, over_2.5, under_2.5")
		side         = flag.String("side", "both", "Venue filter: home, away, both")
		minOdds      = flag.Float64("min-odds", 0, "Skip bets priced below this (0 disables)")
		maxOdds      = flag.Float64("max-odds", 0, "Skip bets priced above this (0 disables)")
		stake        = flag.Float64("stake", 0, "Flat stake per bet (defaults to config)")
		stakePercent = flag.Float64("stake-percent", 0, "Stake as percent of current bankroll (overrides flat stake)")
		season       = flag.String("season", "", "Restrict to one season, e.g. 2023/24")
		startDate    = flag.String("start-date", "", "Only bet on matches on or after this date (YYYY-MM-DD)")
		endDate      = flag.String("end-date", "", "Only bet on matches on or before this date (YYYY-MM-DD)")
		output       = flag.String("output", "", "Equity curve output path, .csv or .json (defaults to config)")
		bootstrap    = flag.Bool("bootstrap", false, "Run the resampling robustness check after the backtest")
	)
	flag.Parse()

	log := newLogger()
	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath, log)
	log.SetLevel(parseLevel(cfg.App.LogLevel))

	if *team == "" {
		log.Fatal("-team is required")
	}

	rule := buildRule(cfg, *team, *market, *side, *minOdds, *maxOdds, *stake, *stakePercent, *season, *startDate, *endDate, log)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Free-text team input resolves to the canonical name before the lookup;
	// an unknown club runs against zero matches and reports an all-zero summary.
	resolution, err := service.ResolveCanonicalTeam(ctx, repos.Match, rule.Team)
	if err != nil {
		log.Fatalf("Failed to resolve team: %v", err)
	}
	if resolution.Found() {
		rule.Team = resolution.Name
	} else {
		log.Warnf("Team %q does not match any tracked team", rule.Team)
	}

	matches, err := repos.Match.GetByTeam(ctx, rule.Team)
	if err != nil {
		log.Fatalf("Failed to load matches for %s: %v", rule.Team, err)
	}
	if len(matches) == 0 {
		log.Warnf("No stored matches for %s; has ingestion run?", rule.Team)
	}

	evaluator := backtest.NewEvaluator(cfg.Backtest.InitialBankroll, log)
	btLog := logger.NewBacktestLogger(log)

	start := time.Now()
	result, err := evaluator.Evaluate(matches, rule)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}
	elapsed := time.Since(start)

	metrics.RecordBacktestRun(elapsed.Seconds(), result.Summary.TotalBets)
	btLog.LogRuleEvaluation(rule.Team, string(rule.Market), len(matches), result.Summary.TotalBets, result.Summary.NetProfit, result.Summary.ROI, float64(elapsed.Milliseconds()))

	printSummary(result.Summary)

	outputPath := *output
	if outputPath == "" {
		outputPath = cfg.Backtest.OutputPath
	}
	if outputPath != "" && len(result.Equity) > 0 {
		format, err := writeEquity(result.Equity, outputPath)
		if err != nil {
			log.Fatalf("Failed to write equity curve: %v", err)
		}
		btLog.LogEquityExport(outputPath, format, len(result.Equity))
	}

	if *bootstrap {
		runBootstrap(result, cfg, btLog)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}

func parseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

func loadConfigWithSecrets(path string, log *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildRule(cfg *config.Config, team, market, side string, minOdds, maxOdds, stake, stakePercent float64, season, startDate, endDate string, log *logrus.Logger) *models.BettingRule {
	rule := &models.BettingRule{
		Team:   team,
		Market: models.Market(market),
		Side:   models.RuleSide(side),
		Stake:  cfg.Backtest.DefaultStake,
		Season: season,
	}
	if stake > 0 {
		rule.Stake = stake
	}
	if stakePercent > 0 {
		rule.StakePercent = &stakePercent
	}
	if minOdds > 0 {
		rule.MinOdds = &minOdds
	}
	if maxOdds > 0 {
		rule.MaxOdds = &maxOdds
	}
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
		rule.DateFrom = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
		rule.DateTo = &parsed
	}
	if err := rule.Validate(); err != nil {
		log.Fatalf("Invalid rule: %v", err)
	}
	return rule
}

func printSummary(s backtest.Summary) {
	fmt.Println("\nBacktest Summary")
	fmt.Println("----------------")
	fmt.Printf("  Bets:           %d (%d won, %d lost, %d void)\n", s.TotalBets, s.Wins, s.Losses, s.Voids)
	fmt.Printf("  Staked:         %.2f\n", s.TotalStaked)
	fmt.Printf("  Returned:       %.2f\n", s.TotalReturned)
	fmt.Printf("  Net profit:     %+.2f\n", s.NetProfit)
	fmt.Printf("  ROI:            %.2f%%\n", s.ROI)
	fmt.Printf("  Win rate:       %.2f%%\n", s.WinRate)
	fmt.Printf("  Average odds:   %.2f\n", s.AverageOdds)
	if s.ProfitFactorDefined {
		fmt.Printf("  Profit factor:  %.2f\n", s.ProfitFactor)
	} else {
		fmt.Printf("  Profit factor:  n/a (no losing bets)\n")
	}
	fmt.Printf("  Max drawdown:   %.2f%%\n", s.MaxDrawdown)
	fmt.Printf("  Confidence:     %.0f/100\n", s.Confidence)
}

func writeEquity(equity backtest.EquityCurve, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	format := "csv"
	payload := equity.ToCSV()
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
		payload = equity.ToJSON()
	}
	return format, os.WriteFile(path, []byte(payload), 0o644)
}

func runBootstrap(result *backtest.Result, cfg *config.Config, btLog *logger.BacktestLogger) {
	bt := backtest.RunBootstrap(result.Bets, backtest.BootstrapConfig{
		Iterations:      cfg.Backtest.BootstrapIterations,
		InitialBankroll: cfg.Backtest.InitialBankroll,
	})
	btLog.LogBootstrapRun(bt.Iterations, len(result.Bets), bt.MeanReturn, bt.ProbabilityOfProfit, bt.ProbabilityOfRuin)

	fmt.Println("\nBootstrap Robustness")
	fmt.Println("--------------------")
	fmt.Printf("  Iterations:     %d\n", bt.Iterations)
	fmt.Printf("  Mean return:    %+.2f\n", bt.MeanReturn)
	fmt.Printf("  Std return:     %.2f\n", bt.StdReturn)
	fmt.Printf("  VaR (95%%):      %+.2f\n", bt.VaR95)
	fmt.Printf("  P(profit):      %.2f%%\n", bt.ProbabilityOfProfit*100)
	fmt.Printf("  P(ruin):        %.2f%%\n", bt.ProbabilityOfRuin*100)
}
