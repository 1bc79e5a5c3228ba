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

	"github.com/providerlookup/providerlookup/internal/config"
	"github.com/providerlookup/providerlookup/internal/domain/provider"
	"github.com/providerlookup/providerlookup/internal/domain/taxonomy"
	"github.com/providerlookup/providerlookup/internal/platform/db"
	"github.com/providerlookup/providerlookup/internal/platform/middleware"
	"github.com/providerlookup/providerlookup/internal/platform/web"
)

const apiVersion = "2.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lookup-server",
		Short: "Individual healthcare provider lookup API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkDBCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the provider lookup API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	taxonomySvc := taxonomy.NewService(taxonomy.NewRepoPG(pool))
	taxonomy.NewHandler(taxonomySvc).RegisterRoutes(e)

	providerSvc := provider.NewService(provider.NewRepoPG(pool), taxonomySvc, cfg.MaxGroupedResults)
	provider.NewHandler(providerSvc).RegisterRoutes(e)

	web.NewHandler(apiVersion).RegisterRoutes(e)

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

func checkDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Check database setup and display sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckDB()
		},
	}
}

func runCheckDB() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	fmt.Println("=== CHECKING DATABASE SETUP ===")

	var version string
	if err := pool.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return fmt.Errorf("version query failed: %w", err)
	}
	fmt.Printf("database connected: %s\n", version)

	fmt.Println("\n=== PROVIDERS TABLE ===")
	var providerCount int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM providers").Scan(&providerCount); err != nil {
		return fmt.Errorf("providers table: %w", err)
	}
	fmt.Printf("providers table accessible: %d records\n", providerCount)

	providers := provider.NewRepoPG(pool)
	sample, err := providers.SearchPage(ctx, provider.Filter{}, 1, 0)
	if err != nil {
		return fmt.Errorf("sample provider: %w", err)
	}
	if len(sample) > 0 {
		p := sample[0]
		fmt.Println("sample individual provider:")
		fmt.Printf("  NPI:      %s\n", p.NPI)
		fmt.Printf("  Name:     %s\n", p.FullName())
		fmt.Printf("  Type:     %s\n", p.EntityTypeDisplay())
		fmt.Printf("  Location: %s\n", p.FullAddress())
		if p.PrimaryTaxonomyCode != nil {
			fmt.Printf("  Taxonomy: %s\n", *p.PrimaryTaxonomyCode)
		}
	}

	fmt.Println("\n=== TAXONOMY TABLE ===")
	var taxonomyCount int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM nucc_taxonomy").Scan(&taxonomyCount); err != nil {
		return fmt.Errorf("taxonomy table: %w", err)
	}
	fmt.Printf("taxonomy table accessible: %d records\n", taxonomyCount)

	fmt.Println("\n=== DATA RELATIONSHIPS ===")
	taxonomies := taxonomy.NewRepoPG(pool)
	if len(sample) > 0 && sample[0].PrimaryTaxonomyCode != nil {
		code := *sample[0].PrimaryTaxonomyCode
		tx, err := taxonomies.GetByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("taxonomy lookup: %w", err)
		}
		if tx != nil {
			fmt.Printf("provider %s -> %s\n", sample[0].NPI, tx.ComposedDisplay())
		} else {
			fmt.Printf("warning: taxonomy code %s not found in taxonomy table\n", code)
		}
	}

	fmt.Println("\n=== ENTITY TYPE BREAKDOWN ===")
	rows, err := pool.Query(ctx,
		"SELECT COALESCE(entity_type_code, ''), COUNT(*) FROM providers GROUP BY entity_type_code ORDER BY COUNT(*) DESC")
	if err != nil {
		return fmt.Errorf("entity breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var count int
		if err := rows.Scan(&code, &count); err != nil {
			return err
		}
		if code == "" {
			code = "unset"
		}
		fmt.Printf("  entity_type_code %s: %d\n", code, count)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	fmt.Println("\n=== GEOGRAPHIC DISTRIBUTION ===")
	stateRows, err := pool.Query(ctx, `
		SELECT practice_state, COUNT(*) AS count
		FROM providers
		WHERE practice_state IS NOT NULL AND entity_type_code = '1'
		GROUP BY practice_state
		ORDER BY count DESC
		LIMIT 5`)
	if err != nil {
		return fmt.Errorf("geographic distribution: %w", err)
	}
	defer stateRows.Close()
	fmt.Println("top 5 states by individual provider count:")
	for stateRows.Next() {
		var state string
		var count int
		if err := stateRows.Scan(&state, &count); err != nil {
			return err
		}
		fmt.Printf("  %s: %d\n", state, count)
	}
	if err := stateRows.Err(); err != nil {
		return err
	}

	fmt.Println("\n=== SPECIALTY DISTRIBUTION ===")
	specRows, err := pool.Query(ctx, `
		SELECT nt.classification, COUNT(*) AS count
		FROM providers p
		JOIN nucc_taxonomy nt ON p.primary_taxonomy_code = nt.code
		WHERE p.entity_type_code = '1'
		GROUP BY nt.classification
		ORDER BY count DESC
		LIMIT 5`)
	if err != nil {
		return fmt.Errorf("specialty distribution: %w", err)
	}
	defer specRows.Close()
	fmt.Println("top 5 specialties:")
	for specRows.Next() {
		var classification string
		var count int
		if err := specRows.Scan(&classification, &count); err != nil {
			return err
		}
		fmt.Printf("  %s: %d\n", classification, count)
	}
	if err := specRows.Err(); err != nil {
		return err
	}

	fmt.Println("\n=== CONNECTION POOL ===")
	stats := db.GetPoolStats(pool)
	fmt.Printf("  total=%d idle=%d acquired=%d max=%d\n",
		stats.TotalConns, stats.IdleConns, stats.AcquiredConns, stats.MaxConns)

	fmt.Println("\n=== DATABASE CHECK COMPLETE ===")
	return nil
}
