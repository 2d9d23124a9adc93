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
	"syscall"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/config"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	appHTTP "github.com/cmlabs-hris/interntrack-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/interntrack-backend-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/interntrack-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/interntrack-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/interntrack-backend-go/internal/service/dashboard"
	internService "github.com/cmlabs-hris/interntrack-backend-go/internal/service/intern"
	settingsService "github.com/cmlabs-hris/interntrack-backend-go/internal/service/settings"
	userService "github.com/cmlabs-hris/interntrack-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	appMetrics := metrics.New()

	// The settings cache is optional; without Redis every read goes to Postgres.
	var settingsCache settings.SettingsCache
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("Redis unavailable, settings cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer redisClient.Close()
			settingsCache = redisRepo.NewSettingsCache(redisClient, cfg.Redis.SettingsCacheTTL)
		}
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	internRepo := postgresql.NewInternRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	userSvc := userService.NewUserService(userRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, settingsCache, appMetrics)
	internSvc := internService.NewInternService(db, internRepo, userRepo, settingsSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, internRepo, appMetrics)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Metrics:        appMetrics.Handler(),
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authService),
			User:       appHTTP.NewUserHandler(userSvc),
			Settings:   appHTTP.NewSettingsHandler(settingsSvc),
			Intern:     appHTTP.NewInternHandler(internSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(JWTRepository, JWTService, cfg.Cron.TokenRetention).RegisterJobs(scheduler, cfg.Cron.TokenPurgeInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
