package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// ComparisonParser parsea bloques "nombre de libro / cuota actual".
type ComparisonParser struct {
	reference  string
	asianBooks []string
}

// NewComparisonParser crea un parser que excluye el libro de referencia y marca
// como asiáticos los nombres que contienen alguno de asianBooks.
// Listas vacías usan los valores por defecto del dominio.
func NewComparisonParser(reference string, asianBooks []string) *ComparisonParser {
	if reference == "" {
		reference = domain.DefaultReferenceBook
	}
	if len(asianBooks) == 0 {
		asianBooks = domain.DefaultAsianBooks
	}
	return &ComparisonParser{reference: reference, asianBooks: asianBooks}
}

// Parse recorre las líneas con una ventana de dos: [nombre, cuota].
// Si el par encaja avanza dos líneas; si no, avanza una y vuelve a sincronizar.
// Nunca falla: sin pares reconocibles devuelve una lista vacía.
func (p *ComparisonParser) Parse(raw string) []domain.ComparisonQuote {
	// cases.Caser tiene estado: uno por llamada.
	fold := cases.Fold()
	reference := fold.String(p.reference)
	asian := make([]string, len(p.asianBooks))
	for i, name := range p.asianBooks {
		asian[i] = fold.String(name)
	}

	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	quotes := []domain.ComparisonQuote{}
	for i := 0; i < len(lines); {
		if i+1 >= len(lines) || !isNameLine(lines[i]) {
			i++
			continue
		}
		odds, ok := firstOdds(lines[i+1])
		if !ok {
			i++
			continue
		}

		name := lines[i]
		folded := fold.String(name)
		i += 2

		if strings.Contains(folded, reference) {
			continue
		}
		quotes = append(quotes, domain.ComparisonQuote{
			Bookmaker:   name,
			Category:    categorize(folded, asian),
			CurrentOdds: odds,
		})
	}
	return quotes
}

// isNameLine: una línea no vacía que no empieza por dígito es un nombre de libro.
func isNameLine(line string) bool {
	if line == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	return !unicode.IsDigit(r)
}

// firstOdds toma el primer token de la línea como cuota actual.
func firstOdds(line string) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || !domain.IsValidOdds(v) {
		return 0, false
	}
	return v, true
}

func categorize(foldedName string, asian []string) domain.QuoteCategory {
	for _, a := range asian {
		if strings.Contains(foldedName, a) {
			return domain.CategoryAsian
		}
	}
	return domain.CategorySoft
}
