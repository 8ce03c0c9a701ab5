package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SmartMoney(t *testing.T) {
	res := Classify(-2.0, 1.0)
	assert.Equal(t, SignalSmartMoney, res.Status)
	assert.Equal(t, ColorGreen, res.Color)
	assert.NotEmpty(t, res.Message)
}

func TestClassify_Defensive(t *testing.T) {
	res := Classify(-2.0, -3.0)
	assert.Equal(t, SignalDefensive, res.Status)
	assert.Equal(t, ColorOrange, res.Color)
}

func TestClassify_FallingPriceSmallRiskCut_IsNeutral(t *testing.T) {
	// -2 < R <= 0: ni SMART_MONEY ni DEFENSIVE, y el precio no está quieto
	assert.Equal(t, SignalNeutral, Classify(-2.0, -1.0).Status)
	assert.Equal(t, SignalNeutral, Classify(-2.0, 0).Status)
}

func TestClassify_Anomaly(t *testing.T) {
	assert.Equal(t, SignalAnomaly, Classify(0.5, 15).Status)
	assert.Equal(t, SignalAnomaly, Classify(-0.5, -12).Status)
}

func TestClassify_Scanning(t *testing.T) {
	res := Classify(0.5, 2.0)
	assert.Equal(t, SignalScanning, res.Status)
	assert.Equal(t, ColorGray, res.Color)
}

func TestClassify_Neutral(t *testing.T) {
	assert.Equal(t, SignalNeutral, Classify(3.0, 0).Status)
	assert.Equal(t, SignalNeutral, Classify(5.0, 20).Status)
}

func TestClassify_ThresholdsAreStrict(t *testing.T) {
	// -1.5 exacto no es caída suficiente
	assert.Equal(t, SignalNeutral, Classify(SmartMoneyTrend, 5).Status)
	// |trend| == 1.0 ya no es precio quieto
	assert.Equal(t, SignalNeutral, Classify(StaticTrend, 0).Status)
	// |R| == 10 no es anomalía
	assert.Equal(t, SignalScanning, Classify(0, AnomalyRisk).Status)
	// R == -2 no es defensivo
	assert.Equal(t, SignalNeutral, Classify(-3, DefensiveRisk).Status)
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// (0.5, 15) cumple ANOMALY y SCANNING: gana la regla que va antes
	matching := 0
	for _, r := range signalRules {
		if r.matches(0.5, 15) {
			matching++
		}
	}
	assert.Equal(t, 2, matching)
	assert.Equal(t, SignalAnomaly, Classify(0.5, 15).Status)
}

func TestClassify_RuleOrder(t *testing.T) {
	order := make([]SignalStatus, len(signalRules))
	for i, r := range signalRules {
		order[i] = r.status
	}
	assert.Equal(t, []SignalStatus{SignalSmartMoney, SignalDefensive, SignalAnomaly, SignalScanning}, order)
}

// --- ApplyValueOverride ---

func TestApplyValueOverride_ScanningWithValue_IsGapValue(t *testing.T) {
	res := ApplyValueOverride(Classify(0.2, 1), []Target{{ROIPercent: 3}, {ROIPercent: 6.5}})
	assert.Equal(t, SignalGapValue, res.Status)
	assert.Equal(t, ColorBlue, res.Color)
	assert.Contains(t, res.Message, "+6.5%")
}

func TestApplyValueOverride_ScanningBelowThreshold(t *testing.T) {
	res := ApplyValueOverride(Classify(0.2, 1), []Target{{ROIPercent: 4.9}, {ROIPercent: GapValueROI}})
	assert.Equal(t, SignalScanning, res.Status)
}

func TestApplyValueOverride_OnlyScanningIsUpgraded(t *testing.T) {
	targets := []Target{{ROIPercent: 12}}
	assert.Equal(t, SignalNeutral, ApplyValueOverride(Classify(3, 0), targets).Status)
	assert.Equal(t, SignalSmartMoney, ApplyValueOverride(Classify(-2, 1), targets).Status)
	assert.Equal(t, SignalAnomaly, ApplyValueOverride(Classify(0, 20), targets).Status)
}

func TestApplyValueOverride_NoTargets(t *testing.T) {
	assert.Equal(t, SignalScanning, ApplyValueOverride(Classify(0, 0), nil).Status)
}
