package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/notify"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	calllogService "github.com/cmlabs-hris/attendance-backend-go/internal/service/calllog"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	loginhourService "github.com/cmlabs-hris/attendance-backend-go/internal/service/loginhour"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	weeklyoffService "github.com/cmlabs-hris/attendance-backend-go/internal/service/weeklyoff"
)

const (
	appName    = "attendance-cmlabs"
	appVersion = "v1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	mongo, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal("Error connecting to mongodb: ", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(closeCtx); err != nil {
			slog.Error("failed to close mongodb", "error", err)
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, mongo); err != nil {
		log.Fatal("Failed to create call log indexes: ", err)
	}

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		client, err := database.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Error connecting to redis: ", err)
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client)
	} else {
		slog.Warn("REDIS_ADDR not set, using in-process locks")
		locker = lock.NewLocalLocker()
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}
	notifier := notify.New(cfg.Slack)
	calendar := shiftday.New(cfg.Policy.ShiftOffsetMinutes, cfg.Policy.ShiftStartHour)
	tx := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	loginHourRepo := postgresql.NewLoginHourRepository(db)
	weeklyOffRepo := postgresql.NewWeeklyOffRepository(db)
	callLogRepo := mongodb.NewCallLogRepository(mongo)

	authSvc := authService.NewAuthService(userRepo, employeeRepo, JWTService, tx, emailService, cfg.App, cfg.Policy)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, weeklyOffRepo, leaveRequestRepo, calendar, cfg.Policy, notifier)
	loginHourSvc := loginhourService.NewLoginHourService(loginHourRepo, employeeRepo, attendanceSvc, tx, locker, calendar, cfg.Policy)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, tx, locker, fileStorage, notifier, cfg.Policy, calendar.Location())
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, userRepo, attendanceRepo, leaveRequestRepo, tx, fileStorage, cfg.Policy)
	weeklyOffSvc := weeklyoffService.NewWeeklyOffService(weeklyOffRepo, employeeRepo)
	callLogSvc := calllogService.NewCallLogService(callLogRepo, employeeRepo, calendar)
	reportSvc := reportService.NewReportService(employeeRepo, callLogSvc, loginHourSvc, emailService, calendar)

	router := appHTTP.NewRouter(logger, cfg.App, cfg.Storage, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, googleService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		LoginHour:  appHTTP.NewLoginHourHandler(loginHourSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		WeeklyOff:  appHTTP.NewWeeklyOffHandler(weeklyOffSvc),
		CallLog:    appHTTP.NewCallLogHandler(callLogSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler()
	scheduler.AddJob("break-sweep", cfg.Cron.BreakSweepInterval, loginHourSvc.SweepOpenBreaks)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
