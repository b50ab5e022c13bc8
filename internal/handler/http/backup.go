package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/backup"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http/response"
)

type BackupHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type BackupHandlerImpl struct {
	backupService backup.BackupService
}

func NewBackupHandler(backupService backup.BackupService) BackupHandler {
	return &BackupHandlerImpl{backupService: backupService}
}

// Create implements BackupHandler. An empty body creates a backup with the
// default name.
func (h *BackupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq backup.CreateBackupRequest

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
			slog.Error("Create backup decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	created, err := h.backupService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create backup service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Backup created successfully", created)
}

// List implements BackupHandler.
func (h *BackupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.backupService.List(r.Context())
	if err != nil {
		slog.Error("List backups service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Get implements BackupHandler.
func (h *BackupHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.backupService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Restore implements BackupHandler.
func (h *BackupHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.backupService.Restore(r.Context(), id); err != nil {
		slog.Error("Restore backup service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backup restored successfully", nil)
}

// Delete implements BackupHandler.
func (h *BackupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.backupService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backup deleted successfully", nil)
}
