package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"smartbooking/internal/api"
	"smartbooking/internal/auth"
	"smartbooking/internal/config"
	"smartbooking/internal/db"
	"smartbooking/internal/logger"
	"smartbooking/internal/repository"
	"smartbooking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the logger depends on the config, so this one goes to stderr
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	conn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := conn.Ping(); err != nil {
		return err
	}
	if err := db.Migrate(conn); err != nil {
		return err
	}

	reservationRepo := repository.NewReservationRepository(conn)
	adminRepo := repository.NewAdminRepository(conn)
	adminAuthRepo := repository.NewAdminAuthRepository(conn)
	jobRepo := repository.NewJobRepository(conn)

	if err := seedAdmin(cfg, adminAuthRepo, log); err != nil {
		return err
	}

	sender := service.NewSenderService(
		service.NewSendGridMailer(cfg, log.Named("sendgrid")),
		service.NewTwilioSMS(cfg, log.Named("twilio")),
		cfg.OwnerEmail,
		log.Named("sender"),
	)
	defer sender.Wait()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTLifetime)
	reservationSvc := service.NewReservationService(reservationRepo, sender, log.Named("reservations"))
	adminSvc := service.NewAdminService(adminRepo, reservationRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, tokens)
	jobSvc := service.NewJobService(jobRepo, sender, log.Named("jobs"))

	limiter := api.NewRateLimiter(cfg.AvailabilityRatePerSecond, cfg.AvailabilityBurst, log.Named("ratelimit"))
	limiter.TrustProxy = cfg.TrustProxy

	c := cron.New()
	if err := jobSvc.Schedule(c, cfg.ReminderSchedule); err != nil {
		return err
	}
	if err := limiter.Schedule(c, time.Minute, 10*time.Minute); err != nil {
		return err
	}
	c.Start()
	defer func() { <-c.Stop().Done() }()

	session := api.NewSessionManager(cfg.SessionLifetime, cfg.IsProduction())
	router := api.Router{
		Users:     api.NewUserReservationHandler(reservationSvc, session, log.Named("api")),
		Admins:    api.NewAdminHandler(adminSvc, log.Named("admin")),
		AdminAuth: api.NewAdminAuthHandler(adminAuthSvc, log.Named("admin")),
		Tokens:    tokens,
		Session:   session,
		Limiter:   limiter,
		Log:       log,
		Secure:    cfg.IsProduction(),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seedAdmin(cfg *config.Config, repo repository.AdminAuthRepository, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	ctx := context.Background()
	existing, err := repo.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if err := repo.CreateNewUser(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	log.Info("admin account created", zap.String("email", cfg.AdminEmail))
	return nil
}
