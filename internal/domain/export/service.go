package export

import (
	"context"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"
)

type ExportService interface {
	// ExportCSV renders the caller's shifts for the given period as CSV,
	// newest first, with a trailing totals row.
	ExportCSV(ctx context.Context, period stats.Period) (ExportResult, error)
}
