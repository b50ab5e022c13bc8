package export

import "github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"

// ExportResult is a rendered CSV file ready to be sent as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte

	Period stats.Period
	Rows   int
}
