package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calllog"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type CallLogHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	TodaySummary(w http.ResponseWriter, r *http.Request)
}

type callLogHandlerImpl struct {
	callLogService calllog.CallLogService
}

func NewCallLogHandler(callLogService calllog.CallLogService) CallLogHandler {
	return &callLogHandlerImpl{callLogService: callLogService}
}

// Create implements CallLogHandler.
func (h *callLogHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req calllog.CreateCallLogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create call log decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.callLogService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Call log created successfully", result)
}

// List implements CallLogHandler.
func (h *callLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.callLogService.List(r.Context(), calllog.ListFilter{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployee implements CallLogHandler.
func (h *callLogHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.callLogService.ListByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements CallLogHandler.
func (h *callLogHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.callLogService.Summary(r.Context(), calllog.SummaryFilter{
		FilterType: r.URL.Query().Get("filterType"),
		StartDate:  queryString(r, "startDate"),
		EndDate:    queryString(r, "endDate"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TodaySummary implements CallLogHandler.
func (h *callLogHandlerImpl) TodaySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.callLogService.TodaySummary(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
