package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/common"
)

const httpServerReadHeaderTimeout = 5 * time.Second

// Server exposes the global registry over HTTP
type Server struct {
	listenAddress string
	path          string
}

// NewServer creates a metrics server; an empty path serves /metrics
func NewServer(listenAddress, path string) Server {
	if path == "" {
		path = "/metrics"
	}
	return Server{listenAddress: listenAddress, path: path}
}

// Handler returns the HTTP handler for the registry, or a 404 handler when metrics are disabled
func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if Registry != nil {
		mux.Handle(s.path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))
	}
	return mux
}

// Run serves until ctx is cancelled
func (s Server) Run(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)

	httpServer := &http.Server{
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("metrics server shutdown failed", slog.Any("error", err))
		}
	}()

	logger.Info("metrics server started", slog.String("address", s.listenAddress), slog.String("path", s.path))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}

	logger.Info("metrics server stopped")

	return nil
}
