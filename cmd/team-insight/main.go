package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourusername/betlab/internal/analysis"
	"github.com/yourusername/betlab/internal/config"
	"github.com/yourusername/betlab/internal/database"
	"github.com/yourusername/betlab/internal/models"
	"github.com/yourusername/betlab/internal/repository"
	"github.com/yourusername/betlab/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	season     string
	asJSON     bool
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&season, "season", "s", "", "Restrict to one season, e.g. 2023/24")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Emit raw JSON instead of formatted output")
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "team-insight <team>",
	Short: "Analyze a team's historical betting performance",
	Long:  `Builds a home/away performance split, betting ROI breakdown and a ranked set of insights and recommendations for one team from stored match data.`,
	Args:  cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayInsight(cmd.Context(), args[0])
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank all tracked teams by best venue ROI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayLeaderboard(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("team-insight %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
	if db != nil {
		db.Close()
	}
}

func loadConfig() error {
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("BETLAB")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return nil
}

func setupDependencies(ctx context.Context) error {
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func displayInsight(ctx context.Context, team string) error {
	// Free-text input resolves to the canonical name before any lookup. An
	// unknown club still gets a (zero-valued) report rather than an error.
	resolution, err := service.ResolveCanonicalTeam(ctx, repos.Match, team)
	if err != nil {
		return err
	}

	canonical := team
	var matches []*models.Match
	if resolution.Found() {
		canonical = resolution.Name
		matches, err = repos.Match.GetByTeam(ctx, canonical)
		if err != nil {
			return fmt.Errorf("failed to load matches for %s: %w", canonical, err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %q does not match any tracked team\n", team)
	}

	analyzer := analysis.NewAnalyzer(logger)
	cached := analysis.NewCachedAnalyzer(analyzer, time.Duration(cfg.Analysis.CacheTTLSeconds)*time.Second)
	report := cached.Report(canonical, season, matches)

	if asJSON {
		return printJSON(report)
	}

	a := report.Analysis
	fmt.Printf("\n%s", a.Team)
	if a.Season != "" {
		fmt.Printf("  (%s)", a.Season)
	}
	fmt.Printf("\n  Matches analyzed: %d\n", a.MatchesPlayed)

	fmt.Println("\nVenue Record")
	fmt.Printf("  Home: %d-%d-%d, %d:%d goals\n", a.Home.Wins, a.Home.Draws, a.Home.Losses, a.Home.GoalsFor, a.Home.GoalsAgainst)
	fmt.Printf("  Away: %d-%d-%d, %d:%d goals\n", a.Away.Wins, a.Away.Draws, a.Away.Losses, a.Away.GoalsFor, a.Away.GoalsAgainst)

	fmt.Println("\nBetting Performance")
	fmt.Printf("  ROI backing at home:   %+.2f%%\n", a.Betting.ROIHome)
	fmt.Printf("  ROI backing away:      %+.2f%%\n", a.Betting.ROIAway)
	fmt.Printf("  Over 2.5 rate:         %.1f%%\n", a.Betting.Over25Rate)
	fmt.Printf("  Under 2.5 rate:        %.1f%%\n", a.Betting.Under25Rate)

	fmt.Println("\nKey Findings")
	for _, finding := range report.KeyFindings {
		fmt.Printf("  - %s\n", finding)
	}

	fmt.Printf("\nPrimary Recommendation\n  %s\n", report.PrimaryRecommendation)

	if len(report.Recommendations) > 0 {
		fmt.Println("\nActionable Recommendations")
		for _, rec := range report.Recommendations {
			fmt.Printf("  - [%s risk, %.0f%% confident] %s\n", rec.Risk, rec.Confidence, rec.Action)
		}
	}

	if len(report.RiskFactors) > 0 {
		fmt.Println("\nRisk Factors")
		for _, risk := range report.RiskFactors {
			fmt.Printf("  - %s\n", risk)
		}
	}

	fmt.Printf("\nVolatility: %.1f  Est. max drawdown: %.1f%%  Overall confidence: %.0f/100\n\n",
		report.Volatility, report.EstimatedMaxDrawdown, report.OverallConfidence)
	return nil
}

func displayLeaderboard(ctx context.Context) error {
	analyzer := analysis.NewAnalyzer(logger)
	leaderboard := service.NewLeaderboardService(repos.Match, analyzer, logger, cfg.Analysis.LeaderboardWorkers)

	entries, err := leaderboard.Build(ctx, season)
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	if asJSON {
		return printJSON(entries)
	}

	fmt.Printf("\n%-4s %-24s %8s %10s %10s %10s %6s\n", "#", "Team", "Matches", "ROI Home", "ROI Away", "Over 2.5", "Conf")
	for i, entry := range entries {
		if entry.Failed {
			fmt.Printf("%-4d %-24s %8s\n", i+1, entry.Team, "error")
			continue
		}
		fmt.Printf("%-4d %-24s %8d %+9.2f%% %+9.2f%% %9.1f%% %6.0f\n",
			i+1, entry.Team, entry.MatchesPlayed, entry.ROIHome, entry.ROIAway, entry.Over25Rate, entry.Confidence)
	}
	fmt.Println()
	return nil
}

func printJSON(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}
