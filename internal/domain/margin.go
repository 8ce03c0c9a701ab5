package domain

// PrivateMargins reparte el margen total del libro entre las salidas,
// proporcionalmente a la probabilidad implícita de cada una.
//
// Fórmula:
//
//	implied[i] = 1 / odds[i]
//	margin     = Σ implied - 1
//	PM[i]      = margin × implied[i] / Σ implied
//
// Los PM suman exactamente Σ implied - 1. Devuelve ceros si las cuotas no son positivas.
func PrivateMargins(odds []float64) []float64 {
	pm := make([]float64, len(odds))
	sum := ImpliedSum(odds)
	if sum == 0 {
		return pm
	}
	margin := sum - 1
	for i, o := range odds {
		if o <= 0 {
			continue
		}
		pm[i] = margin * ((1 / o) / sum)
	}
	return pm
}

// ComputeMarginRisk enriquece la historia (ya ordenada) con PrivateMargin y RiskMigration.
// El primer snapshot fija la base: su R es 0 en todas las salidas.
// Para los siguientes: R[i] = (PM[i] - base[i]) / base[i] × 100, o 0 si base[i] == 0.
func ComputeMarginRisk(history []OddsSnapshot) {
	if len(history) == 0 {
		return
	}

	var baseline []float64
	for i := range history {
		s := &history[i]
		s.PrivateMargin = PrivateMargins(s.Odds)
		s.RiskMigration = make([]float64, len(s.Odds))

		if i == 0 {
			baseline = s.PrivateMargin
			continue
		}
		for j, pm := range s.PrivateMargin {
			if j >= len(baseline) || baseline[j] == 0 {
				continue // sin base comparable → 0
			}
			s.RiskMigration[j] = (pm - baseline[j]) / baseline[j] * 100
		}
	}
}

// TrendPercent devuelve el movimiento de la salida 0 desde la apertura hasta el último snapshot.
func TrendPercent(history []OddsSnapshot) float64 {
	if len(history) == 0 {
		return 0
	}
	return MovePercent(history[0].Home(), history[len(history)-1].Home())
}
