// Package server wires the HTTP surface over the interaction store.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/internal/profile"
	apiv1 "github.com/bionetlab/stringviz/server/router/api/v1"
	"github.com/bionetlab/stringviz/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	logger     *slog.Logger
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store, logger *slog.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.TimeoutWithConfig(echomiddleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
		logger:     logger,
	}

	ok, err := store.IsInitialized(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check store schema")
	}
	if !ok {
		return nil, errors.New("store schema is missing the proteins table; point the DSN at a prepared database")
	}

	apiV1Service := apiv1.NewAPIV1Service(profile, store, logger)
	apiV1Service.RegisterRoutes(e)

	return s, nil
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	s.logger.Info("server started",
		slog.String("address", address),
		slog.String("mode", s.Profile.Mode),
		slog.String("driver", s.Profile.Driver),
	)
	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shut down server gracefully", slog.Any("error", err))
	}
	if err := s.Store.Close(); err != nil {
		s.logger.Error("failed to close store", slog.Any("error", err))
	}
	s.logger.Info("server stopped")
}
