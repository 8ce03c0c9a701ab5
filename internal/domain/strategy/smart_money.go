package strategy

import (
	"fmt"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// SmartMoney implementa la estrategia "sharp vs soft": sigue la salida 0 del libro
// de referencia, clasifica el movimiento con la tabla de reglas y busca valor en
// los libros de comparación contra el precio justo actual.
type SmartMoney struct{}

var _ Strategy = (*SmartMoney)(nil)

// NewSmartMoney crea la estrategia. No tiene estado: es segura para uso concurrente.
func NewSmartMoney() *SmartMoney {
	return &SmartMoney{}
}

// Evaluate implementa Strategy.
//
// Orden: tendencia y R[0] → clasificación direccional → precio justo → targets →
// override GAP_VALUE (solo sobre SCANNING).
func (s *SmartMoney) Evaluate(
	history []domain.OddsSnapshot,
	mode domain.MarketMode,
	quotes []domain.ComparisonQuote,
	cfg domain.EngineConfig,
) (domain.AnalysisReport, error) {
	if len(history) == 0 {
		return domain.AnalysisReport{}, fmt.Errorf("smart_money: empty reference history")
	}
	if err := cfg.Validate(); err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("smart_money: %w", err)
	}

	open := history[0]
	current := history[len(history)-1]

	trend := domain.TrendPercent(history)
	risk := current.Risk()
	signal := domain.Classify(trend, risk)

	fairPrice := domain.FairPrice(current.Odds)
	targets := domain.FindTargets(current, quotes, cfg)
	signal = domain.ApplyValueOverride(signal, targets)

	asian, soft := domain.CountByCategory(quotes)
	asianBooks := make([]string, 0, asian)
	for _, q := range quotes {
		if q.Category == domain.CategoryAsian {
			asianBooks = append(asianBooks, q.Bookmaker)
		}
	}
	if targets == nil {
		targets = []domain.Target{}
	}

	return domain.AnalysisReport{
		Mode:            mode,
		Signal:          signal,
		OpenOdds:        open.Home(),
		CurrentOdds:     current.Home(),
		TrendPercent:    trend,
		CurrentRisk:     risk,
		FairProbability: domain.FairProbability(current.Odds),
		FairPrice:       fairPrice,
		AsianCount:      asian,
		SoftCount:       soft,
		AsianBooks:      asianBooks,
		AsianGapPercent: domain.AsianGapPercent(quotes, fairPrice),
		Targets:         targets,
		History:         history,
		Config:          cfg,
	}, nil
}
