// Package api exposes the task service over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskapi/internal/config"
	"taskapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Parse(token string) (uint, error)
}

// Server aggregates the echo router with services.
type Server struct {
	echo       *echo.Echo
	auth       *service.AuthService
	tasks      *service.TaskService
	categories *service.CategoryService
	tokens     TokenVerifier
	config     *config.Config
}

func New(authSvc *service.AuthService, taskSvc *service.TaskService, categorySvc *service.CategoryService, tokens TokenVerifier, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:       e,
		auth:       authSvc,
		tasks:      taskSvc,
		categories: categorySvc,
		tokens:     tokens,
		config:     cfg,
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[info] %s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency.Round(time.Microsecond), v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	s.routes()
	return s
}

func (s *Server) routes() {
	g := s.echo.Group("/api")

	g.POST("/register", s.register)
	g.POST("/login", s.login)

	g.GET("/tasks", s.listTasks, s.requireAuth)
	g.POST("/tasks", s.createTask, s.requireAuth)
	g.PUT("/tasks/:id", s.updateTask, s.requireAuth)
	g.DELETE("/tasks/:id", s.deleteTask, s.requireAuth)

	g.GET("/categories", s.listCategories, s.requireAuth)
	g.POST("/categories", s.createCategory, s.requireAuth)
	g.DELETE("/categories/:id", s.deleteCategory, s.requireAuth)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the configured address until ctx is cancelled, then
// drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	s.echo.Server.ReadTimeout = s.config.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.WriteTimeout

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.config.ListenAddr)
	}()
	log.Printf("[info] listening on %s", s.config.ListenAddr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Println("[info] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
