package domain

// QuoteCategory separa los libros de comparación en asiáticos (se mueven con la
// referencia) y soft (los que suelen quedarse atrás).
type QuoteCategory string

const (
	CategoryAsian QuoteCategory = "asian"
	CategorySoft  QuoteCategory = "soft"
)

// DefaultAsianBooks son los operadores reconocidos como mercado asiático.
var DefaultAsianBooks = []string{"sbobet", "188bet", "12bet", "mansion88", "singbet", "ibcbet", "crown"}

// DefaultReferenceBook es el libro sharp de referencia. Nunca entra en la comparación.
const DefaultReferenceBook = "pinnacle"

// ComparisonQuote es la cuota actual de un libro de comparación para la salida 0.
type ComparisonQuote struct {
	Bookmaker   string        `json:"bookmaker"`
	Category    QuoteCategory `json:"category"`
	CurrentOdds float64       `json:"current_odds"`
}

// CountByCategory devuelve cuántas cuotas hay de cada categoría.
func CountByCategory(quotes []ComparisonQuote) (asian, soft int) {
	for _, q := range quotes {
		if q.Category == CategoryAsian {
			asian++
		} else {
			soft++
		}
	}
	return asian, soft
}

// AsianGapPercent devuelve la media de (odds/fairPrice - 1)·100 sobre los libros asiáticos.
// Indica si los asiáticos ya siguieron a la referencia. 0 si no hay asiáticos.
func AsianGapPercent(quotes []ComparisonQuote, fairPrice float64) float64 {
	if fairPrice <= 0 {
		return 0
	}
	var sum float64
	n := 0
	for _, q := range quotes {
		if q.Category != CategoryAsian {
			continue
		}
		sum += ROI(q.CurrentOdds, fairPrice) * 100
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
