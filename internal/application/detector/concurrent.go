package detector

// concurrent.go: worker pool para análisis en lote.
//
// Cada análisis es independiente: los workers no comparten historias ni cuotas,
// solo el Detector (parsers y strategy sin estado).

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// BatchResult es el resultado de un elemento del lote, en el mismo orden que la entrada.
type BatchResult struct {
	Report domain.AnalysisReport
	Err    error
}

// AnalyzeBatch analiza todas las entradas en paralelo usando un worker pool.
// Si el contexto se cancela, las entradas pendientes devuelven ctx.Err().
func (d *Detector) AnalyzeBatch(ctx context.Context, inputs []Input) []BatchResult {
	return analyzeInputsConcurrent(ctx, d, inputs, d.cfg.BatchWorkers)
}

// analyzeInputsConcurrent reparte las entradas entre workers.
// Si workers <= 0 usa runtime.NumCPU(); nunca arranca más workers que entradas.
func analyzeInputsConcurrent(ctx context.Context, d *Detector, inputs []Input, workers int) []BatchResult {
	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	workCh := make(chan int, len(inputs))

	// Cada worker escribe solo en results[i] de los índices que recibe.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				if err := ctx.Err(); err != nil {
					results[i] = BatchResult{Err: err}
					continue
				}
				report, err := d.Analyze(ctx, inputs[i])
				if err != nil {
					slog.Debug("batch item failed", "index", i, "err", err)
				}
				results[i] = BatchResult{Report: report, Err: err}
			}
		}()
	}

	for i := range inputs {
		workCh <- i
	}
	close(workCh)
	wg.Wait()

	slog.Debug("batch analysis complete",
		"inputs", len(inputs),
		"workers", workers,
	)
	return results
}
