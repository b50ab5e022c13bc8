package http

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http/response"
)

type StatsHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type StatsHandlerImpl struct {
	statsService stats.StatsService
}

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &StatsHandlerImpl{statsService: statsService}
}

// GetStats implements StatsHandler. Query parameters: period (defaults to
// "all") and an optional signed adjustment amount folded into the wage.
func (h *StatsHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	period := stats.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = stats.PeriodAll
	}

	adjustment := decimal.Zero
	if raw := r.URL.Query().Get("adjustment"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(w, "adjustment must be a decimal number", nil)
			return
		}
		adjustment = parsed
	}

	result, err := h.statsService.GetStats(r.Context(), period, adjustment)
	if err != nil {
		slog.Error("Get stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
