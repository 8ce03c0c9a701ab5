package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/smartmoney/internal/domain"
	"github.com/alejandrodnm/smartmoney/internal/ports"
)

// ErrNoReferenceData se devuelve cuando el texto del libro de referencia no tiene
// ninguna línea reconocible. Es un fallo de cara al usuario, no un crash.
var ErrNoReferenceData = errors.New("cannot recognize reference data")

// Input es una petición de análisis completa: los dos bloques de texto y la configuración.
type Input struct {
	ReferenceText string              `json:"reference_text"`
	MarketText    string              `json:"market_text"`
	Config        domain.EngineConfig `json:"config"`
}

// Config contiene la configuración del detector.
type Config struct {
	BatchWorkers int // goroutines para análisis en lote (0 = NumCPU)
}

// Detector es el orquestador: parse → margen/riesgo → clasificación → targets.
type Detector struct {
	cfg        Config
	reference  ports.ReferenceParser
	comparison ports.ComparisonParser
	notifier   ports.Notifier
	analyzer   *Analyzer
	newID      func() string
}

// New crea un Detector con todas las dependencias inyectadas.
// La strategy se inyecta desde fuera (cmd/) para respetar la inversión de dependencias.
// notifier puede ser nil (p. ej. en la API HTTP).
func New(
	cfg Config,
	reference ports.ReferenceParser,
	comparison ports.ComparisonParser,
	notifier ports.Notifier,
	strategy StrategyEvaluator,
) *Detector {
	return &Detector{
		cfg:        cfg,
		reference:  reference,
		comparison: comparison,
		notifier:   notifier,
		analyzer:   NewAnalyzer(strategy),
		newID:      func() string { return uuid.New().String() },
	}
}

// Analyze ejecuta un análisis completo y devuelve el reporte.
// Cada llamada reserva su propia historia y sus cuotas: no comparte estado mutable.
func (d *Detector) Analyze(_ context.Context, in Input) (domain.AnalysisReport, error) {
	if err := in.Config.Validate(); err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("detector.Analyze: %w", err)
	}

	ref, ok := d.reference.Parse(in.ReferenceText)
	if !ok {
		return domain.AnalysisReport{}, fmt.Errorf("detector.Analyze: %w", ErrNoReferenceData)
	}
	quotes := d.comparison.Parse(in.MarketText)

	slog.Debug("inputs parsed",
		"reference_lines", ref.Lines,
		"reference_skipped", ref.Skipped,
		"snapshots", len(ref.History),
		"mode", ref.Mode,
		"quotes", len(quotes),
	)

	report, err := d.analyzer.Analyze(ref.History, ref.Mode, quotes, in.Config)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("detector.Analyze: %w", err)
	}
	report.RunID = d.newID()
	return report, nil
}

// Run ejecuta un análisis, lo notifica y registra el resumen.
func (d *Detector) Run(ctx context.Context, in Input) (domain.AnalysisReport, error) {
	start := time.Now()

	report, err := d.Analyze(ctx, in)
	if err != nil {
		return report, err
	}

	if d.notifier != nil {
		if err := d.notifier.Notify(ctx, report); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("analysis complete",
		"run_id", report.RunID,
		"mode", report.Mode,
		"signal", report.Signal.Status,
		"trend_pct", fmt.Sprintf("%+.2f", report.TrendPercent),
		"risk_pct", fmt.Sprintf("%+.2f", report.CurrentRisk),
		"fair_price", fmt.Sprintf("%.3f", report.FairPrice),
		"targets", len(report.Targets),
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return report, nil
}
