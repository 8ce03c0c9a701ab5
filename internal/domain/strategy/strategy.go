package strategy

import (
	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// Strategy define el contrato para convertir una historia de referencia y las
// cuotas de comparación en un AnalysisReport. Cada estrategia encapsula una
// lógica de señales diferente.
type Strategy interface {
	// Evaluate recibe la historia ya ordenada y enriquecida con margen/riesgo.
	// Devuelve error si la historia está vacía o la configuración no es válida.
	Evaluate(history []domain.OddsSnapshot, mode domain.MarketMode, quotes []domain.ComparisonQuote, cfg domain.EngineConfig) (domain.AnalysisReport, error)
}
