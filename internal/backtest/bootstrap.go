package backtest

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/yourusername/betlab/internal/models"
)

// BootstrapConfig configures the resampling robustness check
type BootstrapConfig struct {
	Iterations      int
	Seed            int64
	InitialBankroll float64
}

// BootstrapResult summarizes the distribution of resampled runs
type BootstrapResult struct {
	Iterations          int     `json:"iterations"`
	MeanReturn          float64 `json:"mean_return"`
	StdReturn           float64 `json:"std_return"`
	VaR95               float64 `json:"var_95"`
	ProbabilityOfProfit float64 `json:"probability_of_profit"`
	ProbabilityOfRuin   float64 `json:"probability_of_ruin"`
}

// RunBootstrap resamples the realized bet outcomes with replacement to show
// how sensitive the headline return is to bet ordering and selection. An
// empty bet log yields a zero result.
func RunBootstrap(bets []*models.BetOutcome, cfg BootstrapConfig) BootstrapResult {
	if len(bets) == 0 {
		return BootstrapResult{}
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.InitialBankroll <= 0 {
		cfg.InitialBankroll = DefaultBankroll
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	finals := make([]float64, cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		bankroll := cfg.InitialBankroll
		for range bets {
			pick := bets[rng.Intn(len(bets))]
			bankroll += pick.ProfitLoss
			if bankroll <= 0 {
				bankroll = 0
				break
			}
		}
		finals[i] = bankroll
	}

	mean, std := meanStd(finals)
	return BootstrapResult{
		Iterations:          cfg.Iterations,
		MeanReturn:          (mean - cfg.InitialBankroll) / cfg.InitialBankroll,
		StdReturn:           std / cfg.InitialBankroll,
		VaR95:               (percentile(finals, 0.05) - cfg.InitialBankroll) / cfg.InitialBankroll,
		ProbabilityOfProfit: probabilityAbove(finals, cfg.InitialBankroll),
		ProbabilityOfRuin:   probabilityAtOrBelow(finals, 0),
	}
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	index := int(math.Floor(p * float64(len(sorted))))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func probabilityAtOrBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
