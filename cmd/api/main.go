package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/hornoazul/panaderia-backend/internal/modules/catalog"
	"github.com/hornoazul/panaderia-backend/internal/modules/order"
	"github.com/hornoazul/panaderia-backend/internal/modules/production"
	"github.com/hornoazul/panaderia-backend/internal/modules/report"
	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	logger.Info().Msg("connected to database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Catalog, routes & clients ───────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	routeRepo := route.NewPostgresRepository(db)
	routeService := route.NewService(routeRepo)
	route.NewHandler(routeService).RegisterRoutes(router)

	// ── Order management ────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Reporting engine ────────────────────────────────────
	columnOrderPath := os.Getenv("COLUMN_ORDER_PATH")
	if columnOrderPath == "" {
		columnOrderPath = "column_order.json"
	}
	columnStore := report.NewColumnOrderStore(columnOrderPath, logger)
	overrides := report.NewOverrideLayer()
	loader := report.NewLoader(orderRepo, catalogRepo, routeRepo)
	report.NewHandler(loader, overrides, columnStore, report.DefaultPacking, logger).RegisterRoutes(router)

	// ── Production sheet ────────────────────────────────────
	productionService := production.NewService(loader, overrides, columnStore, report.DefaultPacking, logger)
	production.NewHandler(productionService).RegisterRoutes(router)

	// ── Start server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("panaderia API server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
