package prices

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/common"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/ports"
)

const (
	catalogKey = "catalog"
	latestKey  = "latest:"

	DefaultCatalogTTL = 24 * time.Hour
	DefaultLatestTTL  = time.Minute
)

// Service resolves item names against the feed's catalog and turns raw feed data into offers and timeseries.
// The catalog and latest prices are cached in memory.
type Service struct {
	client     ports.PriceFeedClient
	cache      *cache.Cache
	catalogTTL time.Duration
	latestTTL  time.Duration
}

// NewService creates a price service; non-positive TTLs fall back to the defaults
func NewService(client ports.PriceFeedClient, catalogTTL, latestTTL time.Duration) *Service {
	if catalogTTL <= 0 {
		catalogTTL = DefaultCatalogTTL
	}
	if latestTTL <= 0 {
		latestTTL = DefaultLatestTTL
	}
	return &Service{
		client:     client,
		cache:      cache.New(latestTTL, 10*time.Minute),
		catalogTTL: catalogTTL,
		latestTTL:  latestTTL,
	}
}

// Catalog returns the item catalog, fetching the mapping endpoint when the cache is cold
func (s *Service) Catalog(ctx context.Context) (*items.Catalog, error) {
	if cached, ok := s.cache.Get(catalogKey); ok {
		return cached.(*items.Catalog), nil
	}

	mapping, err := s.client.GetMapping(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*items.Item, 0, len(mapping))
	for _, m := range mapping {
		item, err := items.NewItem(m.ID, m.Name, m.Value, m.HighAlch, m.LowAlch, m.Limit)
		if err != nil {
			common.LoggerFromContext(ctx).Warn("skipping unusable catalog entry",
				slog.Int("id", m.ID),
				slog.String("name", m.Name),
				slog.Any("error", err),
			)
			continue
		}
		entries = append(entries, item)
	}

	catalog := items.NewCatalog(entries)
	s.cache.Set(catalogKey, catalog, s.catalogTTL)
	common.LoggerFromContext(ctx).Debug("catalog loaded", slog.Int("items", catalog.Len()))
	return catalog, nil
}

// Resolve maps display names to catalog items, preserving the order of names
func (s *Service) Resolve(ctx context.Context, names ...string) ([]*items.Item, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make([]*items.Item, len(names))
	for i, name := range names {
		item, err := catalog.ByName(name)
		if err != nil {
			return nil, err
		}
		resolved[i] = item
	}
	return resolved, nil
}

// Offers returns the latest offer of every named item, in the order given.
// Items without a recorded trade get unpriced sides rather than an error.
func (s *Service) Offers(ctx context.Context, names ...string) ([]items.Offer, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one item name is required")
	}

	resolved, err := s.Resolve(ctx, names...)
	if err != nil {
		return nil, err
	}

	ids := lo.Uniq(lo.Map(resolved, func(item *items.Item, _ int) int { return item.ID() }))
	latest, err := s.latest(ctx, ids)
	if err != nil {
		return nil, err
	}

	return lo.Map(resolved, func(item *items.Item, _ int) items.Offer {
		return toOffer(item, latest[item.ID()])
	}), nil
}

// AllOffers returns the latest offer of every catalog item that has price data
func (s *Service) AllOffers(ctx context.Context) ([]items.Offer, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := s.latest(ctx, nil)
	if err != nil {
		return nil, err
	}

	offers := make([]items.Offer, 0, len(latest))
	for _, item := range catalog.Items() {
		if data, ok := latest[item.ID()]; ok {
			offers = append(offers, toOffer(item, data))
		}
	}
	return offers, nil
}

// Timeseries returns the price history of a named item
func (s *Service) Timeseries(ctx context.Context, name string, timestep items.Timestep) (*items.Timeseries, error) {
	resolved, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	item := resolved[0]

	points, err := s.client.GetTimeseries(ctx, item.ID(), timestep)
	if err != nil {
		return nil, err
	}

	highest := make([]items.Price, len(points))
	lowest := make([]items.Price, len(points))
	for i, p := range points {
		highest[i] = items.NewPrice(p.Timestamp, p.AvgHighPrice, p.HighPriceVolume)
		lowest[i] = items.NewPrice(p.Timestamp, p.AvgLowPrice, p.LowPriceVolume)
	}

	return items.NewTimeseries(item, highest, lowest, timestep)
}

// Search returns catalog items similar to name
func (s *Service) Search(ctx context.Context, name string, threshold int) ([]*items.Item, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.SearchFor(name, threshold), nil
}

// Invalidate drops cached latest prices, keeping the catalog
func (s *Service) Invalidate() {
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, latestKey) {
			s.cache.Delete(key)
		}
	}
}

func (s *Service) latest(ctx context.Context, ids []int) (map[int]ports.LatestPriceData, error) {
	key := latestCacheKey(ids)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(map[int]ports.LatestPriceData), nil
	}

	latest, err := s.client.GetLatest(ctx, ids...)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, latest, s.latestTTL)
	return latest, nil
}

func latestCacheKey(ids []int) string {
	if len(ids) == 0 {
		return latestKey + "all"
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return latestKey + strings.Join(lo.Map(sorted, func(id int, _ int) string { return strconv.Itoa(id) }), ",")
}

func toOffer(item *items.Item, data ports.LatestPriceData) items.Offer {
	return items.NewOffer(
		item,
		items.NewPrice(derefTime(data.HighTime), data.High, nil),
		items.NewPrice(derefTime(data.LowTime), data.Low, nil),
	)
}

func derefTime(ts *int64) int64 {
	if ts == nil {
		return 0
	}
	return *ts
}
