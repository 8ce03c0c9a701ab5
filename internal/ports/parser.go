package ports

import (
	"github.com/alejandrodnm/smartmoney/internal/domain"
	"github.com/alejandrodnm/smartmoney/internal/parser"
)

// ReferenceParser reconstruye la historia del libro de referencia desde texto libre.
type ReferenceParser interface {
	// Parse devuelve false si ninguna línea fue reconocida.
	Parse(raw string) (parser.ReferenceResult, bool)
}

// ComparisonParser extrae las cuotas actuales de los libros de comparación.
type ComparisonParser interface {
	// Parse nunca falla: sin líneas reconocibles devuelve una lista vacía.
	Parse(raw string) []domain.ComparisonQuote
}
