package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Target es una recomendación accionable sobre un libro de comparación.
type Target struct {
	Bookmaker  string        `json:"bookmaker"`
	Category   QuoteCategory `json:"category"`
	Odds       float64       `json:"odds"`
	ROIPercent float64       `json:"roi_percent"`
	Stake      float64       `json:"stake"`
}

// FairProbability quita el margen del libro a la salida 0 normalizando
// las probabilidades implícitas para que sumen 1.
//
//	fairProb[0] = (1/odds[0]) / Σ(1/odds[i])
func FairProbability(odds []float64) float64 {
	if len(odds) == 0 || odds[0] <= 0 {
		return 0
	}
	sum := ImpliedSum(odds)
	if sum == 0 {
		return 0
	}
	return (1 / odds[0]) / sum
}

// FairPrice devuelve la cuota justa (sin margen) de la salida 0. 0 si no se puede calcular.
func FairPrice(odds []float64) float64 {
	p := FairProbability(odds)
	if p <= 0 {
		return 0
	}
	return 1 / p
}

// ROI devuelve la ventaja fraccional de una cuota sobre el precio justo: odds/fair - 1.
func ROI(odds, fairPrice float64) float64 {
	if fairPrice <= 0 {
		return 0
	}
	return odds/fairPrice - 1
}

// KellyFraction devuelve f* = (b·p - q) / b con b = odds - 1, q = 1 - p.
// Devuelve 0 si la cuota no paga nada (b <= 0).
func KellyFraction(odds, winProb float64) float64 {
	b := odds - 1
	if b <= 0 {
		return 0
	}
	q := 1 - winProb
	return (b*winProb - q) / b
}

// KellyStake calcula la apuesta con Kelly fraccional, redondeada a céntimos.
// Una ventaja no positiva da 0, nunca un valor negativo.
func KellyStake(odds, winProb, bankroll, fraction float64) float64 {
	f := KellyFraction(odds, winProb)
	if f <= 0 {
		return 0
	}
	stake := decimal.NewFromFloat(f * fraction * bankroll).Round(2)
	if stake.IsNegative() {
		return 0
	}
	return stake.InexactFloat64()
}

// FindTargets compara cada cuota de los libros de comparación contra el precio justo
// del snapshot actual de referencia. Solo se conservan las que superan ValueROI;
// el resultado se ordena por ROI descendente.
func FindTargets(current OddsSnapshot, quotes []ComparisonQuote, cfg EngineConfig) []Target {
	fairProb := FairProbability(current.Odds)
	fairPrice := FairPrice(current.Odds)
	if fairPrice <= 0 {
		return nil
	}

	targets := make([]Target, 0, len(quotes))
	for _, q := range quotes {
		roi := ROI(q.CurrentOdds, fairPrice)
		if roi <= ValueROI {
			continue
		}
		targets = append(targets, Target{
			Bookmaker:  q.Bookmaker,
			Category:   q.Category,
			Odds:       q.CurrentOdds,
			ROIPercent: roi * 100,
			Stake:      KellyStake(q.CurrentOdds, fairProb, cfg.Bankroll, cfg.KellyFraction),
		})
	}

	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].ROIPercent > targets[j].ROIPercent
	})
	return targets
}
