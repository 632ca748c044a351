package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/awesome-blog/internal/database"
	"github.com/deppfellow/awesome-blog/internal/handler"
	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/repository"
	"github.com/deppfellow/awesome-blog/internal/router"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	migrateTimeout  = time.Minute
	shutdownTimeout = 30 * time.Second
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.loggerService.Shutdown()

	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	if err := database.Migrate(ctx, a.logger, a.cfg); err != nil {
		a.logger.Error().Err(err).Msg("migration failed")
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	log := a.logger

	migrateCtx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	err = database.Migrate(migrateCtx, log, a.cfg)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("migration failed")
		a.loggerService.Shutdown()
		return err
	}

	srv, err := server.New(a.cfg, log, a.loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		a.loggerService.Shutdown()
		return err
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		return abort(srv, log, "could not create services", err)
	}

	r, err := router.NewRouter(srv, handler.NewHandlers(srv, services), middleware.NewMiddlewares(srv, services))
	if err != nil {
		return abort(srv, log, "could not create router", err)
	}
	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			_ = srv.Shutdown(context.Background())
			return err
		}
	case <-cmd.Context().Done():
		log.Info().Msg("shutting down")
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// abort logs err, releases everything srv holds and returns err.
func abort(srv shutdowner, log *zerolog.Logger, msg string, err error) error {
	log.Error().Err(err).Msg(msg)
	if shutdownErr := srv.Shutdown(context.Background()); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("failed to release server resources")
	}
	return err
}
