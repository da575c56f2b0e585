package backtest

import (
	"testing"

	"github.com/yourusername/betlab/internal/models"
)

func TestRunBootstrapEmpty(t *testing.T) {
	result := RunBootstrap(nil, BootstrapConfig{})
	if result.Iterations != 0 {
		t.Fatalf("expected zero result for empty bet log")
	}
}

func TestRunBootstrapAllWinners(t *testing.T) {
	bets := []*models.BetOutcome{
		{Odds: 2.0, Stake: 100, Result: models.BetWin, ProfitLoss: 100},
		{Odds: 1.8, Stake: 100, Result: models.BetWin, ProfitLoss: 80},
	}

	result := RunBootstrap(bets, BootstrapConfig{Iterations: 200, Seed: 42, InitialBankroll: 1000})
	if result.Iterations != 200 {
		t.Fatalf("expected 200 iterations, got %d", result.Iterations)
	}
	if result.MeanReturn <= 0 {
		t.Fatalf("all-winner log must yield positive mean return, got %v", result.MeanReturn)
	}
	if result.ProbabilityOfProfit != 1.0 {
		t.Fatalf("expected certain profit, got %v", result.ProbabilityOfProfit)
	}
	if result.ProbabilityOfRuin != 0.0 {
		t.Fatalf("expected zero ruin probability, got %v", result.ProbabilityOfRuin)
	}
}

func TestRunBootstrapDeterministicWithSeed(t *testing.T) {
	bets := []*models.BetOutcome{
		{Odds: 2.0, Stake: 100, Result: models.BetWin, ProfitLoss: 100},
		{Odds: 2.0, Stake: 100, Result: models.BetLoss, ProfitLoss: -100},
	}

	a := RunBootstrap(bets, BootstrapConfig{Iterations: 100, Seed: 7})
	b := RunBootstrap(bets, BootstrapConfig{Iterations: 100, Seed: 7})
	if a != b {
		t.Fatalf("expected identical results for identical seeds")
	}
}
