// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package web serves the subsidy listing page, the JSON API and the
// pipeline trigger over gin.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/dispatch"
	"github.com/poiesic/subnav/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ErrSubsidyRepositoryRequired is returned when no subsidy repository is provided.
var ErrSubsidyRepositoryRequired = errors.New("subsidy repository required")

// ErrRunnerRequired is returned when no run submitter is provided.
var ErrRunnerRequired = errors.New("run submitter required")

// Runner submits and tracks background pipeline runs.
// *dispatch.Dispatcher implements it.
type Runner interface {
	Submit(ctx context.Context) (*core.Run, error)
	Status(ctx context.Context, id string) (*core.Run, error)
	List(ctx context.Context, limit int) ([]*core.Run, error)
}

var _ Runner = (*dispatch.Dispatcher)(nil)

// Server is the HTTP front end.
type Server struct {
	subsidies       storage.SubsidyRepository
	runner          Runner
	engine          *gin.Engine
	addr            string
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAddr sets the listen address. Default is ":8080".
func WithAddr(addr string) Option {
	return func(s *Server) error {
		if addr == "" {
			return errors.New("listen address cannot be empty")
		}
		s.addr = addr
		return nil
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default is 10s.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) error {
		if timeout <= 0 {
			return errors.New("shutdown timeout must be positive")
		}
		s.shutdownTimeout = timeout
		return nil
	}
}

// New builds the server and its routes.
func New(subsidies storage.SubsidyRepository, runner Runner, opts ...Option) (*Server, error) {
	if subsidies == nil {
		return nil, ErrSubsidyRepositoryRequired
	}
	if runner == nil {
		return nil, ErrRunnerRequired
	}

	s := &Server{
		subsidies:       subsidies,
		runner:          runner,
		addr:            ":8080",
		shutdownTimeout: 10 * time.Second,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "web")

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(requestLogger(s.logger), gin.Recovery())
	engine.SetHTMLTemplate(tmpl)
	s.engine = engine
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/", s.index)
	s.engine.GET("/healthz", s.healthz)

	api := s.engine.Group("/api")
	{
		api.GET("/subsidies", s.listSubsidies)
		api.GET("/subsidies/:id", s.getSubsidy)
		api.POST("/run-flow", s.runFlow)
		api.GET("/runs", s.listRuns)
		api.GET("/runs/:id", s.getRun)
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
