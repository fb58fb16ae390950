package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/ports"
)

// MockPriceFeedClient is a test double for the PriceFeedClient interface
type MockPriceFeedClient struct {
	mu sync.RWMutex

	mapping    []ports.ItemMappingData
	latest     map[int]ports.LatestPriceData
	timeseries map[int][]ports.TimeseriesPointData

	// Call tracking
	mappingCalls    int
	latestCalls     [][]int
	timeseriesCalls []int

	// Error injection
	shouldError bool
	errorMsg    string
}

var _ ports.PriceFeedClient = (*MockPriceFeedClient)(nil)

// NewMockPriceFeedClient creates a new mock price feed client
func NewMockPriceFeedClient() *MockPriceFeedClient {
	return &MockPriceFeedClient{
		latest:     make(map[int]ports.LatestPriceData),
		timeseries: make(map[int][]ports.TimeseriesPointData),
	}
}

// AddItem adds a catalog entry and returns its fixture id
func (m *MockPriceFeedClient) AddItem(name string, highAlch *int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := fixtureID(name)
	m.mapping = append(m.mapping, ports.ItemMappingData{
		ID:       id,
		Name:     name,
		Value:    1,
		HighAlch: highAlch,
	})
	return id
}

// SetLatest records the latest instant-sell (low) and instant-buy (high) prices of an item; nil marks a side unpriced
func (m *MockPriceFeedClient) SetLatest(name string, low, high *int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := FixtureTimestamp
	m.latest[fixtureID(name)] = ports.LatestPriceData{
		High:     high,
		HighTime: lo.ToPtr(ts),
		Low:      low,
		LowTime:  lo.ToPtr(ts),
	}
}

// AddOffer registers an item and its latest prices in one step
func (m *MockPriceFeedClient) AddOffer(name string, lowest, highest int) {
	m.AddItem(name, nil)
	m.SetLatest(name, lo.ToPtr(lowest), lo.ToPtr(highest))
}

// AddTimeseriesPoint appends one history bucket for an item
func (m *MockPriceFeedClient) AddTimeseriesPoint(name string, point ports.TimeseriesPointData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := fixtureID(name)
	m.timeseries[id] = append(m.timeseries[id], point)
}

// SetError configures the mock to fail every call
func (m *MockPriceFeedClient) SetError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldError = true
	m.errorMsg = msg
}

// ClearError restores normal behaviour
func (m *MockPriceFeedClient) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldError = false
	m.errorMsg = ""
}

// MappingCalls returns how many times the mapping was fetched
func (m *MockPriceFeedClient) MappingCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mappingCalls
}

// LatestCalls returns the id arguments of every latest request
func (m *MockPriceFeedClient) LatestCalls() [][]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][]int(nil), m.latestCalls...)
}

// TimeseriesCalls returns the ids whose history was requested
func (m *MockPriceFeedClient) TimeseriesCalls() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.timeseriesCalls...)
}

// GetMapping implements PriceFeedClient
func (m *MockPriceFeedClient) GetMapping(ctx context.Context) ([]ports.ItemMappingData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mappingCalls++
	if m.shouldError {
		return nil, fmt.Errorf("%s", m.errorMsg)
	}
	return append([]ports.ItemMappingData(nil), m.mapping...), nil
}

// GetLatest implements PriceFeedClient
func (m *MockPriceFeedClient) GetLatest(ctx context.Context, ids ...int) (map[int]ports.LatestPriceData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latestCalls = append(m.latestCalls, append([]int(nil), ids...))
	if m.shouldError {
		return nil, fmt.Errorf("%s", m.errorMsg)
	}

	if len(ids) == 0 {
		return lo.Assign(m.latest), nil
	}
	return lo.PickByKeys(m.latest, ids), nil
}

// GetTimeseries implements PriceFeedClient
func (m *MockPriceFeedClient) GetTimeseries(ctx context.Context, id int, timestep items.Timestep) ([]ports.TimeseriesPointData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timeseriesCalls = append(m.timeseriesCalls, id)
	if m.shouldError {
		return nil, fmt.Errorf("%s", m.errorMsg)
	}
	return append([]ports.TimeseriesPointData(nil), m.timeseries[id]...), nil
}

// FixtureID exposes the id the fixtures derive from an item name
func FixtureID(name string) int {
	return fixtureID(name)
}
