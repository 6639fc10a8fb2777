package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

type LoginHourHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	TodayStats(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type loginHourHandlerImpl struct {
	loginHourService loginhour.LoginHourService
}

func NewLoginHourHandler(loginHourService loginhour.LoginHourService) LoginHourHandler {
	return &loginHourHandlerImpl{loginHourService: loginHourService}
}

// sessionRequest decodes the body. An empty body or employeeId falls back to the caller's employee.
func sessionRequest(r *http.Request) (loginhour.SessionRequest, error) {
	var req loginhour.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	if req.EmployeeID == "" {
		if claims, err := jwt.ClaimsFromContext(r.Context()); err == nil {
			req.EmployeeID = claims.EmployeeID
		}
	}
	return req, nil
}

func (h *loginHourHandlerImpl) session(w http.ResponseWriter, r *http.Request, message string,
	fn func(ctx context.Context, req loginhour.SessionRequest) (interface{}, error)) {
	req, err := sessionRequest(r)
	if err != nil {
		slog.Error("Session request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := fn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// Login implements LoginHourHandler.
func (h *loginHourHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, "Login recorded", func(ctx context.Context, req loginhour.SessionRequest) (interface{}, error) {
		return h.loginHourService.Login(ctx, req)
	})
}

// Logout implements LoginHourHandler.
func (h *loginHourHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, "Logout recorded", func(ctx context.Context, req loginhour.SessionRequest) (interface{}, error) {
		return h.loginHourService.Logout(ctx, req)
	})
}

// StartBreak implements LoginHourHandler.
func (h *loginHourHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, "Break started", func(ctx context.Context, req loginhour.SessionRequest) (interface{}, error) {
		return h.loginHourService.StartBreak(ctx, req)
	})
}

// EndBreak implements LoginHourHandler.
func (h *loginHourHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, "Break ended", func(ctx context.Context, req loginhour.SessionRequest) (interface{}, error) {
		return h.loginHourService.EndBreak(ctx, req)
	})
}

// TodayStats implements LoginHourHandler.
func (h *loginHourHandlerImpl) TodayStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.loginHourService.TodayStats(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAll implements LoginHourHandler.
func (h *loginHourHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.loginHourService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
