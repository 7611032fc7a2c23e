// Package gradebook loads, recalculates and exports gradebook workbooks.
package gradebook

import (
	"log/slog"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/output"
)

// Options configures a Session.
type Options struct {
	// Logger receives parse and formula diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
	// Export configures the written workbook.
	Export output.Options
	// RecalculateOnLoad evaluates computed columns right after loading.
	RecalculateOnLoad bool
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{
		Export:            output.DefaultOptions(),
		RecalculateOnLoad: true,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
