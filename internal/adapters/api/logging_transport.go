package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/common"
	"github.com/Lee-Tyrer/grandexchange-go/pkg/utils"
)

// LoggingTransport implements http.RoundTripper and logs every request with a correlation id
type LoggingTransport struct {
	next http.RoundTripper
}

// NewLoggingTransport wraps next; a nil next uses http.DefaultTransport
func NewLoggingTransport(next http.RoundTripper) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{next: next}
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	logger := common.LoggerFromContext(ctx).With(
		slog.String("request_id", utils.GenerateRequestID(req.URL.Path)),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
	)

	logger.Debug("price feed request")
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.Warn("price feed request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err),
		)
		return nil, err
	}

	logger.Debug("price feed response",
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}
