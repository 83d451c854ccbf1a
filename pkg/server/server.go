package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/tag-atlas/pkg/handlers/inventory"
	"github.com/de-tools/tag-atlas/pkg/services/remediation"

	tagatlasmiddleware "github.com/de-tools/tag-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Workbench *remediation.Workbench
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	invHandler := handlers.NewHandler(config.Dependencies.Workbench)

	router := chi.NewRouter()

	router.Use(tagatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/inventory/summary", invHandler.GetSummary)
		r.Get("/inventory/compliance", invHandler.GetCompliance)
		r.Get("/inventory/cost", invHandler.GetCostBreakdown)
		r.Post("/inventory/filter", invHandler.FilterInventory)
		r.Get("/inventory/filter/options", invHandler.GetFilterOptions)
		r.Get("/remediation/untagged", invHandler.GetUntaggedSubset)
		r.Put("/remediation/edited", invHandler.PutEditedSubset)
		r.Get("/remediation/comparison", invHandler.GetComparison)
		r.Get("/export/{name}", invHandler.ExportCSV)
	})

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
