package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/export"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	statsdomain "github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"
	statssvc "github.com/shiftlog-app/shiftlog-backend-go/internal/service/stats"
)

var csvHeader = []string{"Date", "Day", "From", "To", "Hours", "Advance", "Earnings", "Notes"}

type ExportServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	settingsRepo settings.SettingsRepository

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewExportService(shiftRepo shift.ShiftRepository, settingsRepo settings.SettingsRepository) export.ExportService {
	return &ExportServiceImpl{
		shiftRepo:    shiftRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// Helper to get user_id from JWT context
func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// ExportCSV implements export.ExportService.
func (s *ExportServiceImpl) ExportCSV(ctx context.Context, period statsdomain.Period) (export.ExportResult, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return export.ExportResult{}, err
	}

	userSettings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			userSettings = settings.Defaults(userID)
		} else {
			return export.ExportResult{}, err
		}
	}

	shifts, err := s.shiftRepo.ListByUser(ctx, userID)
	if err != nil {
		return export.ExportResult{}, err
	}

	now := s.now()
	filtered := statssvc.FilterByPeriod(shifts, period, userSettings.PaymentDay, userSettings.WeekStartDay, now)

	content, err := renderCSV(filtered, userSettings.HourlyRate)
	if err != nil {
		return export.ExportResult{}, err
	}

	return export.ExportResult{
		Filename:    fmt.Sprintf("shifts-%s-%s.csv", period, now.Format("2006-01-02")),
		ContentType: "text/csv",
		Content:     content,
		Period:      period,
		Rows:        len(filtered),
	}, nil
}

// renderCSV writes one row per shift plus a totals row. Per-row earnings are
// rate times hours minus that row's advance; a pure advance shows up as a
// negative earnings line with empty clock columns.
func renderCSV(shifts []shift.Shift, hourlyRate decimal.Decimal) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range shifts {
		sh := &shifts[i]

		earnings := hourlyRate.Mul(decimal.NewFromFloat(sh.Hours)).Sub(sh.Advance)

		start, end := sh.StartTime, sh.EndTime
		if sh.IsAdvance {
			start, end = "", ""
		}

		notes := ""
		if sh.Notes != nil {
			notes = *sh.Notes
		}

		row := []string{
			sh.Date.Format("2006-01-02"),
			sh.Date.Weekday().String(),
			start,
			end,
			formatHours(sh.Hours),
			sh.Advance.StringFixed(2),
			earnings.StringFixed(2),
			notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	totals := statssvc.Aggregate(shifts, hourlyRate, decimal.Zero)
	totalsRow := []string{
		"Total",
		"",
		"",
		"",
		formatHours(totals.TotalHours),
		totals.TotalAdvance.StringFixed(2),
		totals.TotalWage.StringFixed(2),
		fmt.Sprintf("%d shifts", totals.TotalShifts),
	}
	if err := w.Write(totalsRow); err != nil {
		return nil, fmt.Errorf("failed to write csv totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64)
}
