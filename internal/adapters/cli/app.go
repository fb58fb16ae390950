package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lee-Tyrer/grandexchange-go/internal/adapters/api"
	"github.com/Lee-Tyrer/grandexchange-go/internal/adapters/metrics"
	"github.com/Lee-Tyrer/grandexchange-go/internal/application/common"
	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/application/prices"
	"github.com/Lee-Tyrer/grandexchange-go/internal/application/setup"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/ports"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/shared"
	"github.com/Lee-Tyrer/grandexchange-go/internal/infrastructure/config"
	"github.com/Lee-Tyrer/grandexchange-go/internal/infrastructure/logging"
)

// App holds everything a command needs to run a query
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Mediator     mediator.Mediator
	Prices       *prices.Service
	PriceMetrics *metrics.PriceMetricsCollector
	Clock        shared.Clock

	closeLog func() error
}

// NewApp wires the price feed, the price service and the query handlers.
// A nil feed builds the HTTP client described by cfg.API.
func NewApp(cfg *config.Config, feed ports.PriceFeedClient, clock shared.Clock) (*App, error) {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	logger, closeLog, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}
	apiMetrics := metrics.NewAPIMetricsCollector()
	queryMetrics := metrics.NewCommandMetricsCollector()
	priceMetrics := metrics.NewPriceMetricsCollector()
	if err := metrics.RegisterAll(apiMetrics, queryMetrics, priceMetrics); err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	if feed == nil {
		client, err := newPriceClient(cfg, clock, logger)
		if err != nil {
			_ = closeLog()
			return nil, err
		}
		if cfg.Metrics.Enabled {
			client.WithRecorder(apiMetrics)
			client.Breaker().OnStateChange(func(_, to api.CircuitState) {
				apiMetrics.RecordCircuitState(int(to))
			})
		}
		feed = client
	}

	service := prices.NewService(feed, cfg.Catalog.CacheTTL, cfg.Catalog.LatestTTL)

	m := mediator.NewMediator()
	m.RegisterMiddleware(loggingMiddleware())
	if cfg.Metrics.Enabled {
		m.RegisterMiddleware(metrics.PrometheusMiddleware(queryMetrics))
	}
	if err := setup.NewHandlerRegistry(service).RegisterAll(m); err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		Mediator:     m,
		Prices:       service,
		PriceMetrics: priceMetrics,
		Clock:        clock,
		closeLog:     closeLog,
	}, nil
}

func newPriceClient(cfg *config.Config, clock shared.Clock, logger *slog.Logger) (*api.WikiPricesClient, error) {
	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		url, err := api.ServerURL(api.Server(cfg.API.Server))
		if err != nil {
			return nil, err
		}
		baseURL = url
	}

	client := api.NewWikiPricesClientWithConfig(api.ClientConfig{
		BaseURL:            baseURL,
		UserAgent:          cfg.API.UserAgent,
		Timeout:            cfg.API.Timeout,
		RateLimit:          cfg.API.RateLimit.Requests,
		Burst:              cfg.API.RateLimit.Burst,
		MaxRetries:         cfg.API.Retry.MaxAttempts,
		BackoffBase:        cfg.API.Retry.BackoffBase,
		BreakerMaxFailures: cfg.API.CircuitBreaker.MaxFailures,
		BreakerTimeout:     cfg.API.CircuitBreaker.Timeout,
	}, clock)

	client.Breaker().OnStateChange(func(from, to api.CircuitState) {
		logger.Warn("price feed circuit breaker changed state",
			slog.String("from", from.String()),
			slog.String("to", to.String()))
	})

	return client, nil
}

// Context attaches the app logger to ctx
func (a *App) Context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.Logger)
}

// Send dispatches a query through the mediator using the app logger
func (a *App) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return a.Mediator.Send(a.Context(ctx), request)
}

// Close releases the log output
func (a *App) Close() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

func loggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := common.LoggerFromContext(ctx)
		name := fmt.Sprintf("%T", request)

		logger.Debug("handling query", slog.String("query", name))
		response, err := next(ctx, request)
		if err != nil {
			logger.Debug("query failed", slog.String("query", name), logging.Error(err))
		}
		return response, err
	}
}
