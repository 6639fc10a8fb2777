package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	LoginHour  LoginHourHandler
	Leave      LeaveHandler
	Employee   EmployeeHandler
	WeeklyOff  WeeklyOffHandler
	CallLog    CallLogHandler
	Report     ReportHandler
}

func NewRouter(logger *slog.Logger, app config.AppConfig, uploads config.StorageConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", metrics.Handler())

	if strings.HasPrefix(uploads.BaseURL, "/") {
		prefix := strings.TrimRight(uploads.BaseURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(uploads.BasePath))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/admin-count", h.Auth.AdminCount)
			r.Get("/login/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
				r.Use(middleware.AdminOnly)
				r.Put("/admin/change-password", h.Auth.AdminChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/", h.Attendance.Create)
				r.Get("/summary", h.Attendance.Summary)
				r.Get("/export", h.Attendance.Export)
				r.With(middleware.UUIDParams("employeeId")).Get("/employee/{employeeId}", h.Attendance.ListByEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployeeProfile)
					r.Post("/mark", h.Attendance.MarkSelf)
					r.Get("/today", h.Attendance.Today)
				})

				// Admin only. The id may be a virtual one.
				r.With(middleware.AdminOnly).Patch("/{id}", h.Attendance.UpdateStatus)
			})

			r.Route("/login-hours", func(r chi.Router) {
				r.Get("/", h.LoginHour.ListAll)
				r.Post("/login", h.LoginHour.Login)
				r.Post("/logout", h.LoginHour.Logout)
				r.Post("/break/start", h.LoginHour.StartBreak)
				r.Post("/break/end", h.LoginHour.EndBreak)
				r.With(middleware.UUIDParams("employeeId")).Get("/{employeeId}/today", h.LoginHour.TodayStats)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.UUIDParams("id"))
					r.Get("/", h.Leave.Get)

					// Admin only
					r.With(middleware.AdminOnly).Patch("/status", h.Leave.UpdateStatus)
					r.With(middleware.AdminOnly).Put("/status", h.Leave.UpdateStatus)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/me", h.Employee.Me)
				r.With(middleware.UUIDParams("userId")).Get("/by-user/{userId}", h.Employee.GetByUserID)

				// Admin only
				r.With(middleware.AdminOnly).Post("/", h.Employee.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.UUIDParams("id"))
					r.Get("/", h.Employee.GetEmployee)
					r.Patch("/photo", h.Employee.UploadPhoto)
					r.Get("/salary/{month}", h.Employee.Salary)
					r.Get("/salary/{month}/slip", h.Employee.SalarySlip)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", h.Employee.UpdateEmployee)
						r.Patch("/", h.Employee.UpdateEmployee)
						r.Delete("/", h.Employee.DeleteEmployee)
						r.Patch("/leave-quota", h.Employee.UpdateLeaveQuota)
						r.Patch("/used-days", h.Employee.UpdateUsedDays)
					})
				})
			})

			r.Route("/weekly-offs", func(r chi.Router) {
				r.Get("/", h.WeeklyOff.List)
				r.With(middleware.UUIDParams("employeeId")).Get("/employee/{employeeId}", h.WeeklyOff.ListByEmployee)

				// Admin only
				r.With(middleware.AdminOnly).Post("/", h.WeeklyOff.Create)
				r.With(middleware.AdminOnly, middleware.UUIDParams("id")).Delete("/{id}", h.WeeklyOff.Delete)
			})

			r.Route("/call-logs", func(r chi.Router) {
				r.Get("/", h.CallLog.List)
				r.Post("/", h.CallLog.Create)
				r.Get("/summary", h.CallLog.Summary)
				r.With(middleware.UUIDParams("employeeId")).Get("/summary/today/{employeeId}", h.CallLog.TodaySummary)
				r.With(middleware.UUIDParams("employeeId")).Get("/{employeeId}", h.CallLog.ListByEmployee)
			})

			r.Post("/reports/daily-email", h.Report.SendDailyReport)
		})
	})
	return r
}
