package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	AddValues(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

// Get handles GET /settings
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /settings
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", result)
}

// AddValues handles POST /settings/values
func (h *settingsHandlerImpl) AddValues(w http.ResponseWriter, r *http.Request) {
	var req settings.AddValuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add settings values decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.AddValues(r.Context(), req)
	if err != nil {
		slog.Error("Add settings values service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings values added successfully", result)
}

// Delete handles DELETE /settings. The next read recreates the defaults.
func (h *settingsHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.Delete(r.Context()); err != nil {
		slog.Error("Delete settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings reset to defaults", nil)
}
