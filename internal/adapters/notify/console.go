package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// Console implementa ports.Notifier.
type Console struct {
	out     io.Writer
	history bool
	details bool
	color   bool
}

// NewConsole crea un notificador que escribe a stdout con colores ANSI.
func NewConsole(history, details bool) *Console {
	return &Console{out: os.Stdout, history: history, details: details, color: true}
}

// NewConsoleWriter crea un notificador para tests (sin colores).
func NewConsoleWriter(w io.Writer, history, details bool) *Console {
	return &Console{out: w, history: history, details: details}
}

// Notify imprime la señal, los KPIs, los targets y opcionalmente la historia.
func (c *Console) Notify(_ context.Context, report domain.AnalysisReport) error {
	c.printBanner(report)
	c.printKPIs(report)
	c.printTargets(report)

	if c.history {
		c.printHistory(report)
	}
	if c.details {
		c.printDetails(report)
	}
	return nil
}

// printBanner imprime el estado de la señal con su color.
func (c *Console) printBanner(r domain.AnalysisReport) {
	now := time.Now().Format("15:04:05")
	status := fmt.Sprintf("[ %s ]", r.Signal.Status)
	if c.color {
		status = ansi(r.Signal.Color) + status + ansiReset
	}
	fmt.Fprintf(c.out, "\n[%s] %s  market %s\n", now, status, r.Mode)
	fmt.Fprintf(c.out, "  Verdict: %s\n\n", r.Signal.Message)
}

// printKPIs imprime las métricas principales en una línea por grupo.
func (c *Console) printKPIs(r domain.AnalysisReport) {
	fmt.Fprintf(c.out, "  Reference move: %+.2f%%  (%.2f → %.2f)   Risk R: %+.2f%%\n",
		r.TrendPercent, r.OpenOdds, r.CurrentOdds, r.CurrentRisk)
	fmt.Fprintf(c.out, "  Fair price:     %.3f  (p=%.2f%%)\n", r.FairPrice, r.FairProbability*100)
	fmt.Fprintf(c.out, "  Asians: %d (gap %+.2f%%)   Softs: %d\n\n", r.AsianCount, r.AsianGapPercent, r.SoftCount)
}

// printTargets imprime la tabla de libros donde apostar.
func (c *Console) printTargets(r domain.AnalysisReport) {
	if len(r.Targets) == 0 {
		fmt.Fprintln(c.out, "  no value targets found")
		return
	}

	fmt.Fprintf(c.out, "=== TARGETS (bankroll $%.0f, %.0f%% Kelly) ===\n",
		r.Config.Bankroll, r.Config.KellyFraction*100)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Bookmaker", "Cat", "Odds", "ROI", "Stake")
	for i, t := range r.Targets {
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(t.Bookmaker, 24),
			string(t.Category),
			fmt.Sprintf("%.2f", t.Odds),
			fmt.Sprintf("%+.1f%%", t.ROIPercent),
			fmt.Sprintf("$%.2f", t.Stake),
		)
	}
	table.Render()

	fmt.Fprintf(c.out, "  Total stake: $%.2f\n", r.TotalStake())
}

// printHistory imprime la serie de precio y riesgo para graficar.
func (c *Console) printHistory(r domain.AnalysisReport) {
	fmt.Fprintln(c.out, "\n=== REFERENCE HISTORY ===")

	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Odds", "PM", "R")
	for _, s := range r.History {
		table.Append(
			s.Timestamp.Format("02/01 15:04"),
			joinFloats(s.Odds, "%.2f"),
			joinFloats(s.PrivateMargin, "%.4f"),
			joinFloats(s.RiskMigration, "%+.1f%%"),
		)
	}
	table.Render()
}

// printDetails imprime los datos técnicos del análisis.
func (c *Console) printDetails(r domain.AnalysisReport) {
	fmt.Fprintln(c.out, "\n=== DETAILS ===")
	fmt.Fprintf(c.out, "  Run:       %s\n", r.RunID)
	fmt.Fprintf(c.out, "  Reference: open %.2f → current %.2f (%d snapshots)\n",
		r.OpenOdds, r.CurrentOdds, len(r.History))
	asians := "none"
	if len(r.AsianBooks) > 0 {
		asians = strings.Join(r.AsianBooks, ", ")
	}
	fmt.Fprintf(c.out, "  Asians detected: %s\n", asians)
	fmt.Fprintln(c.out)
}

const ansiReset = "\033[0m"

func ansi(tag domain.ColorTag) string {
	switch tag {
	case domain.ColorGreen:
		return "\033[32m"
	case domain.ColorOrange:
		return "\033[33m"
	case domain.ColorRed:
		return "\033[31m"
	case domain.ColorBlue:
		return "\033[34m"
	default:
		return "\033[90m"
	}
}

func joinFloats(vals []float64, format string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf(format, v)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
