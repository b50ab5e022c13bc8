package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &SettingsHandlerImpl{settingsService: settingsService}
}

// Get implements SettingsHandler.
func (h *SettingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.Get(r.Context())
	if err != nil {
		slog.Error("Get settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements SettingsHandler.
func (h *SettingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq settings.UpdateSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.settingsService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", updated)
}
