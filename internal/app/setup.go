// Package app contains the application setup for the customer service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/customerhub/internal/config"
	"github.com/abgdnv/customerhub/internal/customer/service"
	"github.com/abgdnv/customerhub/internal/customer/store"
	"github.com/abgdnv/customerhub/internal/customer/transport/rest"
	pkgconfig "github.com/abgdnv/customerhub/pkg/config"
	"github.com/abgdnv/customerhub/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	CustomerService service.CustomerService
	Logger          *slog.Logger
}

// SetupDependencies builds the service against the configured storage
// backend. The pool may be nil for the in-memory backend.
func SetupDependencies(backend pkgconfig.StoreBackend, dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	var customerStore store.CustomerStore
	switch backend {
	case pkgconfig.BackendPostgres:
		customerStore = store.NewPgStore(dbPool)
	default:
		customerStore = store.NewInMemoryStore()
	}

	return &Dependencies{
		CustomerService: service.NewService(customerStore),
		Logger:          logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the customer service.
// Used by E2E tests to exercise the full stack without a listening socket.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the customer service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	customerHandler := rest.NewHandler(deps.CustomerService, deps.Logger)
	customerHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the customer service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
