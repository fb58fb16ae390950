package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/test/helpers"
)

type flipQuery struct{}

func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
}

func gather(t *testing.T) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := Registry.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}
	return byName
}

func TestRegister_NoopWhenDisabled(t *testing.T) {
	Registry = nil

	assert.NoError(t, RegisterAll(NewAPIMetricsCollector(), NewCommandMetricsCollector(), NewPriceMetricsCollector()))
	assert.False(t, IsEnabled())
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	withRegistry(t)
	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())

	mw := PrometheusMiddleware(collector)
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "ok", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	_, err := mw(context.Background(), &flipQuery{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &flipQuery{}, fail)
	require.Error(t, err)

	total := gather(t)["grandexchange_client_queries_total"]
	require.NotNil(t, total)
	require.Len(t, total.GetMetric(), 2)
	for _, m := range total.GetMetric() {
		assert.Equal(t, "flipQuery", m.GetLabel()[0].GetValue())
		assert.Equal(t, 1.0, m.GetCounter().GetValue())
	}
}

func TestPriceMetricsCollector_RecordOffer(t *testing.T) {
	withRegistry(t)
	collector := NewPriceMetricsCollector()
	require.NoError(t, collector.Register())

	collector.RecordOffer(helpers.NewOffer("Abyssal whip", 100, 1000), helpers.FixtureTimestamp+60)

	families := gather(t)
	assert.Equal(t, 900.0, families["grandexchange_market_margin_coins"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 888.0, families["grandexchange_market_flip_profit_coins"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 60.0, families["grandexchange_market_price_age_seconds"].GetMetric()[0].GetGauge().GetValue())
}

func TestServer_Handler(t *testing.T) {
	withRegistry(t)
	api := NewAPIMetricsCollector()
	require.NoError(t, api.Register())
	api.RecordAPIRequest(http.MethodGet, "/latest", 200, 0.2)

	server := httptest.NewServer(NewServer(":0", "").Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `grandexchange_client_api_requests_total{endpoint="/latest",method="GET",status_code="200"} 1`)

	missing, err := http.Get(server.URL + "/other")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
