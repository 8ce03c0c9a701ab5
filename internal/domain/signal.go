package domain

import (
	"fmt"
	"math"
)

// SignalStatus es el estado de mercado que devuelve el clasificador.
type SignalStatus string

const (
	SignalSmartMoney SignalStatus = "SMART_MONEY"
	SignalDefensive  SignalStatus = "DEFENSIVE"
	SignalAnomaly    SignalStatus = "ANOMALY"
	SignalScanning   SignalStatus = "SCANNING"
	SignalNeutral    SignalStatus = "NEUTRAL"
	SignalGapValue   SignalStatus = "GAP_VALUE"
)

// ColorTag es la pista de color para la capa de presentación.
type ColorTag string

const (
	ColorGreen  ColorTag = "green"
	ColorOrange ColorTag = "orange"
	ColorRed    ColorTag = "red"
	ColorGray   ColorTag = "gray"
	ColorBlue   ColorTag = "blue"
)

// SignalResult es la salida del clasificador.
type SignalResult struct {
	Status  SignalStatus `json:"status"`
	Message string       `json:"message"`
	Color   ColorTag     `json:"color"`
}

// Umbrales del clasificador. Son constantes de dominio fijas, no aprendidas.
//
//	SmartMoneyTrend:  el precio cae más de 1.5% desde la apertura
//	DefensiveRisk:    el libro recorta su parte de margen más de 2%
//	StaticTrend:      |tendencia| < 1% → precio prácticamente quieto
//	AnomalyRisk:      |R| > 10% con precio quieto → ruido o manipulación
//	ValueROI:         ROI mínimo para considerar una cuota como target (2.5%)
//	GapValueROI:      ROI (%) que convierte SCANNING en GAP_VALUE
const (
	SmartMoneyTrend = -1.5
	DefensiveRisk   = -2.0
	StaticTrend     = 1.0
	AnomalyRisk     = 10.0
	ValueROI        = 0.025
	GapValueROI     = 5.0
)

// signalRule es una fila de la tabla de decisión: la primera que cumple gana.
type signalRule struct {
	status  SignalStatus
	color   ColorTag
	matches func(trend, risk float64) bool
	message string // formato con (trend, risk)
}

var signalRules = []signalRule{
	{
		status:  SignalSmartMoney,
		color:   ColorGreen,
		matches: func(trend, risk float64) bool { return trend < SmartMoneyTrend && risk > 0 },
		message: "price dropped %+.2f%% while the reference book raised its risk share (R %+.2f%%): confident sharp move",
	},
	{
		status:  SignalDefensive,
		color:   ColorOrange,
		matches: func(trend, risk float64) bool { return trend < SmartMoneyTrend && risk < DefensiveRisk },
		message: "price dropped %+.2f%% but the book cut its risk share (R %+.2f%%): protecting itself, not confident",
	},
	{
		status:  SignalAnomaly,
		color:   ColorRed,
		matches: func(trend, risk float64) bool { return math.Abs(trend) < StaticTrend && math.Abs(risk) > AnomalyRisk },
		message: "price is static (%+.2f%%) but risk is erratic (R %+.2f%%): possible noise or manipulation",
	},
	{
		status:  SignalScanning,
		color:   ColorGray,
		matches: func(trend, _ float64) bool { return math.Abs(trend) < StaticTrend },
		message: "no directional move (%+.2f%%, R %+.2f%%): scanning comparison books for value",
	},
}

var neutralRule = signalRule{
	status:  SignalNeutral,
	color:   ColorGray,
	message: "no clear signal (trend %+.2f%%, R %+.2f%%)",
}

// Classify aplica la tabla de reglas en orden sobre la tendencia del precio (%)
// y la migración de riesgo actual R[0] (%). Si ninguna regla cumple devuelve NEUTRAL.
func Classify(trendPercent, currentRisk float64) SignalResult {
	rule := neutralRule
	for _, r := range signalRules {
		if r.matches(trendPercent, currentRisk) {
			rule = r
			break
		}
	}
	return SignalResult{
		Status:  rule.status,
		Color:   rule.color,
		Message: fmt.Sprintf(rule.message, trendPercent, currentRisk),
	}
}

// ApplyValueOverride es la segunda pasada del clasificador: solo un SCANNING
// se convierte en GAP_VALUE, y solo si algún target supera GapValueROI.
func ApplyValueOverride(signal SignalResult, targets []Target) SignalResult {
	if signal.Status != SignalScanning {
		return signal
	}
	best := 0.0
	for _, t := range targets {
		if t.ROIPercent > best {
			best = t.ROIPercent
		}
	}
	if best <= GapValueROI {
		return signal
	}
	return SignalResult{
		Status:  SignalGapValue,
		Color:   ColorBlue,
		Message: fmt.Sprintf("reference price is static but a comparison book offers %+.1f%% over fair price", best),
	}
}
