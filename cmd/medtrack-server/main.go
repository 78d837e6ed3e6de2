package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/domain/activity"
	"github.com/medtrack/medtrack/internal/domain/analytics"
	"github.com/medtrack/medtrack/internal/domain/metric"
	"github.com/medtrack/medtrack/internal/domain/patient"
	"github.com/medtrack/medtrack/internal/domain/record"
	"github.com/medtrack/medtrack/internal/export"
	"github.com/medtrack/medtrack/internal/llmcompare"
	"github.com/medtrack/medtrack/internal/platform/auth"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/filestore"
	"github.com/medtrack/medtrack/internal/platform/middleware"
	"github.com/medtrack/medtrack/internal/platform/seed"
	"github.com/medtrack/medtrack/internal/testdata"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medtrack-server",
		Short: "Clinical record-keeping API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(testdataCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
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

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	files, err := filestore.New(cfg.StorageDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open file store")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() && cfg.JWTSecret == "" {
		logger.Warn().Msg("running with development auth, every request is admin")
		e.Use(auth.DevAuthMiddleware(auth.AuthSkipper))
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.JWTSecret),
			Skipper:    auth.AuthSkipper,
		}))
	}

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	api.Use(middleware.RequestTimeout(30 * time.Second))

	// Repositories
	activityRepo := activity.NewRepoPG(pool)
	patientRepo := patient.NewRepoPG(pool)
	metricRepo := metric.NewRepoPG(pool)
	recordRepo := record.NewRepoPG(pool)
	analyticsRepo := analytics.NewRepoPG(pool)
	exportRepo := export.NewRepoPG(pool)

	txm := db.NewTxManager(pool)

	// Services
	patientSvc := patient.NewService(patientRepo, activityRepo, txm, logger)
	metricSvc := metric.NewService(metricRepo, patientRepo, activityRepo, txm, logger)
	recordSvc := record.NewService(recordRepo, patientRepo, activityRepo, files, txm, logger)
	analyticsSvc := analytics.NewService(patientRepo, metricRepo, recordRepo, activityRepo, analyticsRepo, logger)
	exportSvc := export.NewService(patientRepo, exportRepo, activityRepo, logger)
	llmSvc := llmcompare.NewService(llmProviders(cfg, logger), logger)

	// Handlers
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	metric.NewHandler(metricSvc).RegisterRoutes(api)
	record.NewHandler(recordSvc).RegisterRoutes(api)
	analytics.NewHandler(analyticsSvc).RegisterRoutes(api)
	export.NewHandler(exportSvc).RegisterRoutes(api)
	llmcompare.NewHandler(llmSvc).RegisterRoutes(api)
	api.GET("/storage/stats", filestore.StatsHandler(files), auth.RequireRole("admin"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	go func() {
		addr := ":" + cfg.Port
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

// llmProviders builds one provider per configured API key. No keys means an
// empty comparison service, not a startup failure.
func llmProviders(cfg *config.Config, logger zerolog.Logger) []llmcompare.Provider {
	var providers []llmcompare.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, llmcompare.NewOpenAI(cfg.OpenAIAPIKey, ""))
	}
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, llmcompare.NewAnthropic(cfg.AnthropicAPIKey, ""))
	}
	if cfg.GoogleAPIKey != "" {
		providers = append(providers, llmcompare.NewGoogle(cfg.GoogleAPIKey, ""))
	}
	if len(providers) == 0 {
		logger.Warn().Msg("no llm provider keys configured, comparison endpoints disabled")
	}
	return providers
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
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
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
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				applied := "-"
				if s.AppliedAt != nil {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, state, applied)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with synthetic demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("patients")
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			files, err := filestore.New(cfg.StorageDir, logger)
			if err != nil {
				return err
			}

			activityRepo := activity.NewRepoPG(pool)
			patientRepo := patient.NewRepoPG(pool)
			txm := db.NewTxManager(pool)

			patientSvc := patient.NewService(patientRepo, activityRepo, txm, logger)
			metricSvc := metric.NewService(metric.NewRepoPG(pool), patientRepo, activityRepo, txm, logger)
			recordSvc := record.NewService(record.NewRepoPG(pool), patientRepo, activityRepo, files, txm, logger)

			return seed.New(patientSvc, metricSvc, recordSvc, logger).Run(ctx, count)
		},
	}
	cmd.Flags().Int("patients", 20, "Number of patients to create")
	return cmd
}

func testdataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testdata",
		Short: "Manage the JSON fixture store",
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Populate the fixture store with sample users and addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := testdata.Open(cfg.TestDataPath, logger)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}

			users := []struct {
				name   string
				email  string
				active bool
			}{
				{"alice", "alice@example.com", true},
				{"bob", "bob@example.com", true},
				{"carol", "carol@example.com", false},
			}
			for _, u := range users {
				if _, err := store.AddUser(u.name, u.email, u.active); err != nil {
					return err
				}
			}

			ips := []struct {
				addr     string
				location string
				active   bool
			}{
				{"192.168.1.10", "office", true},
				{"10.0.0.5", "datacenter", true},
				{"172.16.0.9", "lab", false},
			}
			for _, ip := range ips {
				if _, err := store.AddIP(ip.addr, ip.location, ip.active); err != nil {
					return err
				}
			}

			fmt.Printf("Wrote %d users and %d IP addresses to %s\n",
				len(store.Users()), len(store.IPs()), cfg.TestDataPath)
			return nil
		},
	}
	cmd.AddCommand(setupCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the fixture store contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := testdata.Open(cfg.TestDataPath, logger)
			if err != nil {
				return err
			}

			fmt.Println("Users:")
			for _, u := range store.Users() {
				fmt.Printf("  %d  %-12s %-24s active=%t\n", u.ID, u.Username, u.Email, u.Active)
			}
			fmt.Println("IP addresses:")
			for _, ip := range store.IPs() {
				fmt.Printf("  %d  %-16s %-12s active=%t\n", ip.ID, ip.Address, ip.Location, ip.Active)
			}
			return nil
		},
	}
	cmd.AddCommand(showCmd)

	return cmd
}
