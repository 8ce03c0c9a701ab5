package domain

import "time"

// Rango válido de una cuota decimal. Cualquier número fuera de este rango
// en el texto pegado no se considera una cuota.
const (
	MinOdds = 1.01
	MaxOdds = 100.0
)

// MarketMode es la forma del mercado: dos salidas (Over/Under, hándicap)
// o tres salidas (1X2).
type MarketMode int

const (
	TwoWay MarketMode = iota
	ThreeWay
)

func (m MarketMode) String() string {
	if m == ThreeWay {
		return "1X2"
	}
	return "2-WAY"
}

// Outcomes devuelve el número de salidas del mercado.
func (m MarketMode) Outcomes() int {
	if m == ThreeWay {
		return 3
	}
	return 2
}

// MarshalText permite serializar el modo como "1X2" | "2-WAY".
func (m MarketMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// OddsSnapshot es un punto observado del libro de referencia.
// Lo crea el parser y lo enriquece ComputeMarginRisk; después es de solo lectura.
type OddsSnapshot struct {
	Timestamp     time.Time `json:"timestamp"`
	Odds          []float64 `json:"odds"`
	PrivateMargin []float64 `json:"private_margin"` // PM[i]: parte del margen total asignada a la salida i
	RiskMigration []float64 `json:"risk_migration"` // R[i]: % de cambio de PM[i] respecto a la apertura
}

// Home devuelve la cuota de la salida 0 (Home / Over / primer lado), la que sigue el motor.
func (s OddsSnapshot) Home() float64 {
	if len(s.Odds) == 0 {
		return 0
	}
	return s.Odds[0]
}

// Risk devuelve R[0], la migración de riesgo de la salida seguida.
func (s OddsSnapshot) Risk() float64 {
	if len(s.RiskMigration) == 0 {
		return 0
	}
	return s.RiskMigration[0]
}

// IsValidOdds indica si v cae dentro del rango de cuotas aceptado [1.01, 100].
func IsValidOdds(v float64) bool {
	return v >= MinOdds && v <= MaxOdds
}

// ImpliedSum devuelve Σ 1/odds[i]: la suma de probabilidades implícitas.
// Un valor > 1 indica el overround del libro.
func ImpliedSum(odds []float64) float64 {
	sum := 0.0
	for _, o := range odds {
		if o > 0 {
			sum += 1 / o
		}
	}
	return sum
}

// MovePercent devuelve el cambio porcentual de from a to.
func MovePercent(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
