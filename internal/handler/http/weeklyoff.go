package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type WeeklyOffHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type weeklyOffHandlerImpl struct {
	weeklyOffService weeklyoff.WeeklyOffService
}

func NewWeeklyOffHandler(weeklyOffService weeklyoff.WeeklyOffService) WeeklyOffHandler {
	return &weeklyOffHandlerImpl{weeklyOffService: weeklyOffService}
}

// List implements WeeklyOffHandler.
func (h *weeklyOffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.weeklyOffService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployee implements WeeklyOffHandler.
func (h *weeklyOffHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.weeklyOffService.ListByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements WeeklyOffHandler.
func (h *weeklyOffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req weeklyoff.CreateWeeklyOffRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create weekly off decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.weeklyOffService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Weekly off created successfully", result)
}

// Delete implements WeeklyOffHandler.
func (h *weeklyOffHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.weeklyOffService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly off deleted successfully", nil)
}
