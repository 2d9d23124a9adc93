package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InternHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Promote(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Mentees(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateProgress(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Cleanup(w http.ResponseWriter, r *http.Request)
}

type internHandlerImpl struct {
	internService intern.InternService
}

func NewInternHandler(internService intern.InternService) InternHandler {
	return &internHandlerImpl{internService: internService}
}

// Create implements InternHandler.
func (h *internHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req intern.CreateInternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create intern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.internService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create intern service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Intern created successfully", result)
}

// Promote implements InternHandler.
func (h *internHandlerImpl) Promote(w http.ResponseWriter, r *http.Request) {
	var req intern.PromoteInternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Promote intern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.internService.Promote(r.Context(), req)
	if err != nil {
		slog.Error("Promote intern service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User promoted to intern successfully", result)
}

// List implements InternHandler.
func (h *internHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := intern.InternFilter{
		Department: queryString(r, "department"),
		Status:     queryString(r, "status"),
		MentorID:   queryString(r, "mentor_id"),
		Search:     queryString(r, "search"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	result, err := h.internService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Mentees implements InternHandler.
func (h *internHandlerImpl) Mentees(w http.ResponseWriter, r *http.Request) {
	result, err := h.internService.Mentees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements InternHandler.
func (h *internHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.internService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements InternHandler.
func (h *internHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req intern.UpdateInternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update intern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.internService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update intern service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Intern updated successfully", result)
}

// UpdateProgress implements InternHandler.
func (h *internHandlerImpl) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req intern.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update intern progress decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.internService.UpdateProgress(r.Context(), req)
	if err != nil {
		slog.Error("Update intern progress service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Intern progress updated successfully", result)
}

// Delete implements InternHandler.
func (h *internHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.internService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete intern service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Intern deleted successfully", nil)
}

// Cleanup implements InternHandler.
func (h *internHandlerImpl) Cleanup(w http.ResponseWriter, r *http.Request) {
	result, err := h.internService.Cleanup(r.Context())
	if err != nil {
		slog.Error("Cleanup interns service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inactive and terminated interns removed", result)
}
