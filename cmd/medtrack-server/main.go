package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/domain/appointment"
	"github.com/medtrack/medtrack/internal/domain/backup"
	"github.com/medtrack/medtrack/internal/domain/dashboard"
	"github.com/medtrack/medtrack/internal/domain/medication"
	"github.com/medtrack/medtrack/internal/domain/reminder"
	"github.com/medtrack/medtrack/internal/domain/vital"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medtrack-server",
		Short: "Personal health tracking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL(), cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL(), cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database. The server does not give up if the database is down at
	// boot: it keeps retrying so the two can start in any order.
	ctx := context.Background()
	var pool *pgxpool.Pool
	for {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL(), cfg.DBMaxConns, cfg.DBMinConns)
		if err == nil {
			break
		}
		logger.Error().Err(err).
			Dur("retry_in", cfg.DBRetryDelay).
			Msg("failed to connect to database, retrying")
		time.Sleep(cfg.DBRetryDelay)
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Connection supervisor
	sup := db.NewSupervisor(pool, logger, cfg.DBRetryDelay, cfg.DBLivenessPeriod)
	sup.Start()
	defer sup.Stop()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// API group with rate limiting
	api := e.Group("/api")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// -- Register Domain Handlers --

	medSvc := medication.NewService(medication.NewRepoPG(pool))
	medication.NewHandler(medSvc).RegisterRoutes(api)

	remSvc := reminder.NewService(reminder.NewRepoPG(pool))
	reminder.NewHandler(remSvc).RegisterRoutes(api)

	vitSvc := vital.NewService(vital.NewRepoPG(pool))
	vital.NewHandler(vitSvc).RegisterRoutes(api)

	apptSvc := appointment.NewService(appointment.NewRepoPG(pool))
	appointment.NewHandler(apptSvc).RegisterRoutes(api)

	// Dashboard aggregation
	agg := dashboard.NewAggregator(dashboard.Sources{
		Medications:  medSvc,
		Reminders:    remSvc,
		Vitals:       vitSvc,
		Appointments: apptSvc,
	}, logger)
	dashboard.NewHandler(agg).RegisterRoutes(api)

	// Backup export/import
	stores := backup.Stores{
		Medications:  medSvc,
		Reminders:    remSvc,
		Vitals:       vitSvc,
		Appointments: apptSvc,
	}
	backup.NewHandler(
		backup.NewExporter(stores, logger),
		backup.NewImporter(stores, logger),
	).RegisterRoutes(api)

	// Health check
	start := time.Now()
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":   "server is running",
			"uptime":    time.Since(start).Seconds(),
			"timestamp": time.Now().UTC(),
			"database":  sup.State().String(),
		})
	})

	// DB status endpoint
	api.GET("/db-status", db.StatusHandler(pool, sup))

	// Graceful shutdown
	go func() {
		addr := cfg.Host + ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
