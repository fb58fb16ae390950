package setup

import (
	"reflect"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/application/prices"
	priceQueries "github.com/Lee-Tyrer/grandexchange-go/internal/application/prices/queries"
	tradingQueries "github.com/Lee-Tyrer/grandexchange-go/internal/application/trading/queries"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	priceService *prices.Service
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(priceService *prices.Service) *HandlerRegistry {
	return &HandlerRegistry{
		priceService: priceService,
	}
}

// RegisterPriceHandlers registers the price lookup queries with the mediator
//
// This method registers:
//   - GetOffersQuery → GetOffersHandler
//   - GetTimeseriesQuery → GetTimeseriesHandler
//   - SearchItemsQuery → SearchItemsHandler
func (r *HandlerRegistry) RegisterPriceHandlers(m mediator.Mediator) error {
	handlers := map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&priceQueries.GetOffersQuery{}):     priceQueries.NewGetOffersHandler(r.priceService),
		reflect.TypeOf(&priceQueries.GetTimeseriesQuery{}): priceQueries.NewGetTimeseriesHandler(r.priceService),
		reflect.TypeOf(&priceQueries.SearchItemsQuery{}):   priceQueries.NewSearchItemsHandler(r.priceService),
	}
	return registerAll(m, handlers)
}

// RegisterTradingHandlers registers every profit calculator query with the mediator
func (r *HandlerRegistry) RegisterTradingHandlers(m mediator.Mediator) error {
	handlers := map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&tradingQueries.FlipQuery{}):        tradingQueries.NewFlipHandler(r.priceService),
		reflect.TypeOf(&tradingQueries.BestFlipQuery{}):    tradingQueries.NewBestFlipHandler(r.priceService),
		reflect.TypeOf(&tradingQueries.DecantQuery{}):      tradingQueries.NewDecantHandler(r.priceService),
		reflect.TypeOf(&tradingQueries.HighAlchemyQuery{}): tradingQueries.NewHighAlchemyHandler(r.priceService),
		reflect.TypeOf(&tradingQueries.CombineQuery{}):     tradingQueries.NewCombineHandler(r.priceService),
		reflect.TypeOf(&tradingQueries.TransformQuery{}):   tradingQueries.NewTransformHandler(r.priceService),
		reflect.TypeOf(&tradingQueries.RepairQuery{}):      tradingQueries.NewRepairHandler(r.priceService),
		reflect.TypeOf(&tradingQueries.RepairSetQuery{}):   tradingQueries.NewRepairSetHandler(r.priceService),
	}
	return registerAll(m, handlers)
}

// RegisterAll registers price and trading handlers
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterPriceHandlers(m); err != nil {
		return err
	}
	return r.RegisterTradingHandlers(m)
}

func registerAll(m mediator.Mediator, handlers map[reflect.Type]mediator.RequestHandler) error {
	for requestType, handler := range handlers {
		if err := m.Register(requestType, handler); err != nil {
			return err
		}
	}
	return nil
}
