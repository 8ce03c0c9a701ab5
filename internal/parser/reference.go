// Package parser convierte texto pegado a mano (historia del libro de referencia y
// cuotas de los libros de comparación) en estructuras del dominio.
//
// Ninguna línea mal formada es fatal: se descarta y se sigue con la siguiente.
package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// goalLineImpliedSum: si tres números suman más que esto en probabilidad implícita,
// el del medio no es una cuota sino la línea de goles (p. ej. "1.95 2.5 1.90").
const goalLineImpliedSum = 1.25

var (
	closedMarkers = []string{"closed", "suspended", "🔒"}

	statusRe = regexp.MustCompile(`(?i)\b(?:live|ht|ft|half[- ]?time|in[- ]?play)\b`)
	minuteRe = regexp.MustCompile(`\b\d{1,3}(?:\+\d{1,2})?['’]`)
	scoreRe  = regexp.MustCompile(`(?:^|\s)\d{1,2}\s?[-–]\s?\d{1,2}(?:\s|$)`)

	timeRe = regexp.MustCompile(`(?:^|[^\d.:/])(\d{1,2}):(\d{2})(?:$|[^\d:])`)
	dateRe = regexp.MustCompile(`(?:^|[^\d./])(\d{1,2})/(\d{1,2})(?:$|[^\d./])`)
)

// ReferenceResult es la historia reconstruida del libro de referencia.
type ReferenceResult struct {
	History         []domain.OddsSnapshot
	Mode            domain.MarketMode
	OpenMovePercent float64

	Lines   int // líneas no vacías leídas
	Skipped int // líneas sin snapshot
}

// ReferenceParser parsea la historia del libro sharp.
type ReferenceParser struct {
	now func() time.Time
}

// Option configura un ReferenceParser.
type Option func(*ReferenceParser)

// WithClock fija el reloj usado para los valores por defecto de fecha/hora.
func WithClock(now func() time.Time) Option {
	return func(p *ReferenceParser) { p.now = now }
}

// NewReferenceParser crea un parser con el reloj del sistema.
func NewReferenceParser(opts ...Option) *ReferenceParser {
	p := &ReferenceParser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reconstruye la historia de cuotas a partir del texto pegado.
// Devuelve false si ninguna línea produjo un snapshot.
//
// Por línea: descartar mercado cerrado → quitar anotaciones → tokenizar →
// filtrar rango de cuotas → inferir forma → timestamp.
// Después: orden estable por timestamp y cálculo de margen/riesgo.
func (p *ReferenceParser) Parse(raw string) (ReferenceResult, bool) {
	now := p.now()

	var (
		res      ReferenceResult
		outcomes int
	)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res.Lines++

		if isClosedLine(line) {
			res.Skipped++
			continue
		}

		odds, mode, ok := inferShape(extractOdds(stripAnnotations(line)))
		if !ok {
			res.Skipped++
			continue
		}
		// El modo global lo decide la última línea clasificada, aunque su forma
		// no coincida con la de la historia.
		res.Mode = mode

		if outcomes == 0 {
			outcomes = len(odds)
		}
		if len(odds) != outcomes {
			res.Skipped++
			continue
		}

		res.History = append(res.History, domain.OddsSnapshot{
			Timestamp: parseTimestamp(line, now),
			Odds:      odds,
		})
	}

	if len(res.History) == 0 {
		return res, false
	}

	sort.SliceStable(res.History, func(i, j int) bool {
		return res.History[i].Timestamp.Before(res.History[j].Timestamp)
	})
	domain.ComputeMarginRisk(res.History)
	res.OpenMovePercent = domain.TrendPercent(res.History)

	return res, true
}

// isClosedLine indica si la línea marca el mercado como cerrado.
func isClosedLine(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range closedMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// stripAnnotations quita marcadores de estado (live, HT...), marcadores de minuto
// (67', 45+2') y marcadores en juego del tipo "2-1".
func stripAnnotations(line string) string {
	line = statusRe.ReplaceAllString(line, " ")
	line = minuteRe.ReplaceAllString(line, " ")
	line = scoreRe.ReplaceAllString(line, " ")
	return line
}

// extractOdds tokeniza por espacios y devuelve los tokens que son cuotas válidas.
// Quita una letra u/o (under/over) al principio o al final y descarta tokens con "/"
// (líneas de goles asiáticas como "2.5/3").
func extractOdds(line string) []float64 {
	var out []float64
	for _, tok := range strings.Fields(line) {
		tok = stripOverUnder(tok)
		if tok == "" || strings.Contains(tok, "/") {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || !domain.IsValidOdds(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func stripOverUnder(tok string) string {
	if tok == "" {
		return tok
	}
	if isOverUnderLetter(tok[0]) {
		tok = tok[1:]
	}
	if n := len(tok); n > 0 && isOverUnderLetter(tok[n-1]) {
		tok = tok[:n-1]
	}
	return tok
}

func isOverUnderLetter(c byte) bool {
	return c == 'o' || c == 'O' || c == 'u' || c == 'U'
}

// inferShape decide si la línea es un mercado de 2 o 3 salidas.
//
//	3 números, Σ1/x > 1.25 → el del medio es línea de goles: [primero, último], 2-way
//	3 números, resto      → 1X2
//	2 números             → 2-way
//	> 3 números           → [primero, último], 2-way
//	< 2 números           → sin snapshot
func inferShape(tokens []float64) ([]float64, domain.MarketMode, bool) {
	switch n := len(tokens); {
	case n == 3:
		if domain.ImpliedSum(tokens) > goalLineImpliedSum {
			return []float64{tokens[0], tokens[2]}, domain.TwoWay, true
		}
		return tokens, domain.ThreeWay, true
	case n == 2:
		return tokens, domain.TwoWay, true
	case n > 3:
		return []float64{tokens[0], tokens[n-1]}, domain.TwoWay, true
	default:
		return nil, domain.TwoWay, false
	}
}

// parseTimestamp busca "H:MM"/"HH:MM" (por defecto 00:00) y "D/M"/"DD/MM"
// (por defecto la fecha de hoy) en la línea original y los combina con el año actual.
// Si la fecha compuesta no existe (31/02, 25:00) devuelve now.
func parseTimestamp(line string, now time.Time) time.Time {
	hour, minute := 0, 0
	if m := timeRe.FindStringSubmatch(line); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
	}

	day, month := now.Day(), int(now.Month())
	if m := dateRe.FindStringSubmatch(line); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
	}

	if hour > 23 || minute > 59 || month < 1 || month > 12 || day < 1 {
		return now
	}
	t := time.Date(now.Year(), time.Month(month), day, hour, minute, 0, 0, now.Location())
	if t.Day() != day || int(t.Month()) != month {
		return now // time.Date normaliza 31/02 → 03/03; lo tratamos como inválido
	}
	return t
}
