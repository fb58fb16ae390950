package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records the duration and outcome of every query.
// Query names are extracted via reflection without their package prefix,
// e.g. "*queries.FlipQuery" becomes "FlipQuery".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		queryName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(queryName, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

// extractCommandName extracts a clean query name from the request
//   - "*queries.FlipQuery" → "FlipQuery"
//   - "*queries.GetTimeseriesQuery" → "GetTimeseriesQuery"
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownQuery"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
