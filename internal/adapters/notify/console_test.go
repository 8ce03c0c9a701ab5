package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alejandrodnm/smartmoney/internal/adapters/notify"
	"github.com/alejandrodnm/smartmoney/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReport(targets ...domain.Target) domain.AnalysisReport {
	ts := time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC)
	return domain.AnalysisReport{
		RunID: "run-1",
		Mode:  domain.ThreeWay,
		Signal: domain.SignalResult{
			Status:  domain.SignalSmartMoney,
			Message: "confident sharp move",
			Color:   domain.ColorGreen,
		},
		OpenOdds:        1.83,
		CurrentOdds:     1.70,
		TrendPercent:    -7.1,
		CurrentRisk:     86.0,
		FairProbability: 0.5539,
		FairPrice:       1.805,
		AsianCount:      1,
		SoftCount:       1,
		AsianBooks:      []string{"SBOBET"},
		Targets:         targets,
		History: []domain.OddsSnapshot{
			{Timestamp: ts.Add(-10 * time.Hour), Odds: []float64{1.83, 3.82, 4.41}, PrivateMargin: []float64{0.0185, 0.0088, 0.0077}, RiskMigration: []float64{0, 0, 0}},
			{Timestamp: ts, Odds: []float64{1.70, 3.90, 4.60}, PrivateMargin: []float64{0.0344, 0.0150, 0.0127}, RiskMigration: []float64{86, 70, 65}},
		},
		Config: domain.EngineConfig{Bankroll: 1000, KellyFraction: 0.3},
	}
}

func TestConsole_Notify_WithTargets(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	err := n.Notify(context.Background(), makeReport(
		domain.Target{Bookmaker: "Bet365", Category: domain.CategorySoft, Odds: 1.95, ROIPercent: 8.0, Stake: 28.15},
		domain.Target{Bookmaker: "Unibet", Category: domain.CategorySoft, Odds: 1.88, ROIPercent: 4.1, Stake: 14.10},
	))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[ SMART_MONEY ]")
	assert.Contains(t, out, "1X2")
	assert.Contains(t, out, "confident sharp move")
	assert.Contains(t, out, "-7.10%")
	assert.Contains(t, out, "bankroll $1000, 30% Kelly")
	assert.Contains(t, out, "Bet365")
	assert.Contains(t, out, "+8.0%")
	assert.Contains(t, out, "$28.15")
	assert.Contains(t, out, "Total stake: $42.25")
	assert.NotContains(t, out, "\033[")
	assert.NotContains(t, out, "REFERENCE HISTORY")
}

func TestConsole_Notify_NoTargets(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	require.NoError(t, n.Notify(context.Background(), makeReport()))
	assert.Contains(t, buf.String(), "no value targets found")
	assert.NotContains(t, buf.String(), "Total stake")
}

func TestConsole_Notify_HistoryAndDetails(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true, true)

	require.NoError(t, n.Notify(context.Background(), makeReport()))

	out := buf.String()
	assert.Contains(t, out, "REFERENCE HISTORY")
	assert.Contains(t, out, "27/11 00:00")
	assert.Contains(t, out, "27/11 10:00")
	assert.Contains(t, out, "+86.0%")
	assert.Contains(t, out, "DETAILS")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Asians detected: SBOBET")
}

func TestJSON_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewJSONWriter(&buf)

	report := makeReport(domain.Target{Bookmaker: "Bet365", Category: domain.CategorySoft, Odds: 1.95, ROIPercent: 8.0, Stake: 28.15})
	require.NoError(t, n.Notify(context.Background(), report))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, "1X2", decoded["mode"])

	signal, ok := decoded["signal"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "SMART_MONEY", signal["status"])
	assert.Equal(t, "green", signal["color"])

	targets, ok := decoded["targets"].([]any)
	require.True(t, ok)
	assert.Len(t, targets, 1)
}
