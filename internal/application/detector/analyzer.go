package detector

import (
	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// StrategyEvaluator es el subconjunto de strategy.Strategy que usa el Analyzer.
type StrategyEvaluator interface {
	Evaluate(history []domain.OddsSnapshot, mode domain.MarketMode, quotes []domain.ComparisonQuote, cfg domain.EngineConfig) (domain.AnalysisReport, error)
}

// Analyzer delega el cálculo de señales y targets a una Strategy inyectada.
type Analyzer struct {
	strategy StrategyEvaluator
}

// NewAnalyzer crea un Analyzer que delega en la strategy dada.
func NewAnalyzer(s StrategyEvaluator) *Analyzer {
	return &Analyzer{strategy: s}
}

// Analyze clasifica la historia y dimensiona los targets.
func (a *Analyzer) Analyze(history []domain.OddsSnapshot, mode domain.MarketMode, quotes []domain.ComparisonQuote, cfg domain.EngineConfig) (domain.AnalysisReport, error) {
	return a.strategy.Evaluate(history, mode, quotes, cfg)
}
