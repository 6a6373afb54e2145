package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/config"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/runtime"
	smartHTTP "github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/http"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app/commands"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app/queries"
)

type Service struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

func NewSmartExportService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg)

	// init commands
	exportHandler := commands.NewExportRecordHandler(cfg.BaseURI, rdf.Format(cfg.DefaultFormat), logger)
	cmdBus := app.NewCommandBus(exportHandler)

	// init queries
	listFormatsHandler := queries.NewListFormatsQueryHandler(rdf.Format(cfg.DefaultFormat))
	queryBus := app.NewQueryBus(listFormatsHandler)

	// init http handler
	smartHTTPServer := smartHTTP.NewServer(cmdBus, queryBus)

	httpServer, err := runtime.NewHTTPServer(cfg, smartHTTPServer, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

// NewLogger builds the service logger: console output in development, JSON
// elsewhere.
func NewLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func (s *Service) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(timeoutCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("server stopped")
	return nil
}
