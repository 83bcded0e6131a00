package main

import (
	"fmt"
	"log"

	"paymax/internal/abbrev"
	"paymax/internal/config"
	"paymax/internal/extraction"
	"paymax/internal/handler"
	"paymax/internal/parser"
	"paymax/internal/pipeline"
	"paymax/internal/repository/postgres"
	"paymax/internal/router"
	"paymax/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	payslipRepo := postgres.NewPayslipRepo(db)

	// Abbreviation catalog. A broken or missing catalog degrades to the empty
	// one so parsing still works, just without normalization.
	loader := abbrev.NewLoader(cfg.Catalog.Path, cfg.Catalog.Freshness)
	catalog, err := loader.Load()
	if err != nil {
		log.Printf("main: abbreviation catalog unavailable, continuing without it: %v", err)
		catalog = abbrev.EmptyCatalog()
	}
	resolver := abbrev.NewResolver(catalog)
	tracker := abbrev.NewTracker()

	// Parsers. Registration order is the tie-break order for equal scores.
	// Vision parsing needs an OCR engine; the PDF adapter exposes no page
	// imagery, so image-only documents fall through to recovery extraction.
	registry := parser.NewRegistry()
	military, err := parser.NewMilitaryParser(resolver, tracker)
	if err != nil {
		return fmt.Errorf("failed to build military parser: %w", err)
	}
	corporate, err := parser.NewCorporateParser(resolver, tracker)
	if err != nil {
		return fmt.Errorf("failed to build corporate parser: %w", err)
	}
	generic, err := parser.NewGenericParser(resolver, tracker)
	if err != nil {
		return fmt.Errorf("failed to build generic parser: %w", err)
	}
	registry.Register(military)
	registry.Register(corporate)
	registry.Register(generic)

	// Pipeline
	analyzer := extraction.NewAnalyzer(cfg.Analyzer)
	selector := extraction.NewStrategySelector(cfg.Strategy, analyzer)
	extractor := extraction.NewTextExtractor()
	cache := pipeline.NewCache(cfg.Pipeline.CacheCapacity)
	telemetry := pipeline.NewTelemetry(cfg.Pipeline.TelemetryCapacity)
	coordinator := pipeline.NewCoordinator(
		analyzer,
		selector,
		extractor,
		registry,
		parser.NewRecoveryExtractor(),
		cache,
		payslipRepo,
		telemetry,
		cfg.Pipeline.Timeout,
	)

	// Services
	payslipSvc := service.NewPayslipService(coordinator, payslipRepo, tracker, cfg.Upload.MaxFileSizeMB)

	// Handlers
	payslipH := handler.NewPayslipHandler(payslipSvc)
	diagH := handler.NewDiagnosticsHandler(payslipSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(payslipH, diagH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
