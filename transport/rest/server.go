package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP surface of the referee.
type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// New - builds the server with all game routes mounted.
func New(logger *slog.Logger, port string, referee refereeService) *Server {
	h := newHandlers(logger, referee)

	router := chi.NewRouter()
	router.Get("/ping", h.Ping)

	router.Route("/games", func(r chi.Router) {
		r.Get("/", h.ListGames)
		r.Post("/", h.CreateGame)
		r.Get("/{id}", h.GetGame)
		r.Put("/{id}", h.MakeMove)
		r.Delete("/{id}", h.DeleteGame)
	})

	return &Server{
		logger: logger.With("component", "rest"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// Start - serves until the context is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	that.logger.Info("server stopped")

	return nil
}
