package ports

import (
	"context"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// Notifier presenta el resultado de un análisis al usuario.
type Notifier interface {
	// Notify muestra la señal, los KPIs y los targets ordenados por ROI.
	// En la implementación de consola, imprime tablas formateadas.
	Notify(ctx context.Context, report domain.AnalysisReport) error
}
