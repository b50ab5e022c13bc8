package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/export"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService  shift.ShiftService
	exportService export.ExportService
}

func NewShiftHandler(shiftService shift.ShiftService, exportService export.ExportService) ShiftHandler {
	return &ShiftHandlerImpl{
		shiftService:  shiftService,
		exportService: exportService,
	}
}

// Create implements ShiftHandler.
func (h *ShiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq shift.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", created)
}

// Get implements ShiftHandler.
func (h *ShiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.shiftService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements ShiftHandler.
func (h *ShiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.shiftService.List(r.Context())
	if err != nil {
		slog.Error("List shifts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Update implements ShiftHandler.
func (h *ShiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var updateReq shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.shiftService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("Update shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", updated)
}

// Delete implements ShiftHandler.
func (h *ShiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shiftService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// Clear implements ShiftHandler.
func (h *ShiftHandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Clear(r.Context()); err != nil {
		slog.Error("Clear shifts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All shifts deleted successfully", nil)
}

// Export implements ShiftHandler. Streams a CSV download of the caller's
// shifts for the requested period.
func (h *ShiftHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	period := stats.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = stats.PeriodAll
	}

	result, err := h.exportService.ExportCSV(r.Context(), period)
	if err != nil {
		slog.Error("Export shifts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		slog.Error("Export shifts write error", "error", err)
	}
}
