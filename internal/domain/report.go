package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig se devuelve cuando bankroll o la fracción de Kelly no son válidos.
var ErrInvalidConfig = errors.New("invalid engine config")

// EngineConfig son los parámetros numéricos de una ejecución. Solo lectura:
// el motor nunca los modifica ni los acumula entre ejecuciones.
type EngineConfig struct {
	Bankroll      float64 `json:"bankroll"`
	KellyFraction float64 `json:"kelly_fraction"` // en (0, 1]
}

// Validate comprueba bankroll > 0 y kellyFraction en (0, 1].
func (c EngineConfig) Validate() error {
	if c.Bankroll <= 0 {
		return fmt.Errorf("%w: bankroll must be positive, got %.2f", ErrInvalidConfig, c.Bankroll)
	}
	if c.KellyFraction <= 0 || c.KellyFraction > 1 {
		return fmt.Errorf("%w: kelly_fraction must be in (0, 1], got %.3f", ErrInvalidConfig, c.KellyFraction)
	}
	return nil
}

// AnalysisReport es el resultado agregado de una ejecución del motor.
type AnalysisReport struct {
	RunID  string       `json:"run_id,omitempty"`
	Mode   MarketMode   `json:"mode"`
	Signal SignalResult `json:"signal"`

	// --- Referencia ---
	OpenOdds        float64 `json:"open_odds"`
	CurrentOdds     float64 `json:"current_odds"`
	TrendPercent    float64 `json:"trend_percent"` // movimiento de la salida 0 desde la apertura
	CurrentRisk     float64 `json:"current_risk"`  // R[0] del último snapshot
	FairProbability float64 `json:"fair_probability"`
	FairPrice       float64 `json:"fair_price"`

	// --- Comparación ---
	AsianCount      int      `json:"asian_count"`
	SoftCount       int      `json:"soft_count"`
	AsianBooks      []string `json:"asian_books"`
	AsianGapPercent float64  `json:"asian_gap_percent"`

	Targets []Target       `json:"targets"` // ROI descendente
	History []OddsSnapshot `json:"history"`
	Config  EngineConfig   `json:"config"`
}

// BestTarget devuelve el target con mayor ROI, si existe.
func (r AnalysisReport) BestTarget() (Target, bool) {
	if len(r.Targets) == 0 {
		return Target{}, false
	}
	return r.Targets[0], true
}

// TotalStake suma las apuestas recomendadas de todos los targets.
func (r AnalysisReport) TotalStake() float64 {
	total := 0.0
	for _, t := range r.Targets {
		total += t.Stake
	}
	return total
}
