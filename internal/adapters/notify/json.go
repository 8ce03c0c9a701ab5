package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// JSON implementa ports.Notifier escribiendo el reporte completo como JSON indentado.
type JSON struct {
	out io.Writer
}

// NewJSON crea un notificador JSON sobre stdout.
func NewJSON() *JSON {
	return &JSON{out: os.Stdout}
}

// NewJSONWriter crea un notificador JSON sobre w.
func NewJSONWriter(w io.Writer) *JSON {
	return &JSON{out: w}
}

// Notify serializa el reporte.
func (j *JSON) Notify(_ context.Context, report domain.AnalysisReport) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("notify.JSON: encode report: %w", err)
	}
	return nil
}
