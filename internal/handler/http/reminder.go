package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/reminder"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http/response"
)

type ReminderHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ReminderHandlerImpl struct {
	reminderService reminder.ReminderService
}

func NewReminderHandler(reminderService reminder.ReminderService) ReminderHandler {
	return &ReminderHandlerImpl{reminderService: reminderService}
}

// Create implements ReminderHandler.
func (h *ReminderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq reminder.CreateReminderRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create reminder decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.reminderService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create reminder service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reminder created successfully", created)
}

// List implements ReminderHandler.
func (h *ReminderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.reminderService.List(r.Context())
	if err != nil {
		slog.Error("List reminders service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Update implements ReminderHandler.
func (h *ReminderHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var updateReq reminder.UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update reminder decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.reminderService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("Update reminder service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reminder updated successfully", updated)
}

// Delete implements ReminderHandler.
func (h *ReminderHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.reminderService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reminder deleted successfully", nil)
}
