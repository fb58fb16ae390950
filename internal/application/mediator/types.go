package mediator

import (
	"context"
)

// Request is a price or calculator query dispatched by its concrete type,
// e.g. *queries.GetOffersQuery or *queries.FlipQuery
type Request interface{}

// Response is the typed result a query handler returns for its request
type Response interface{}

// RequestHandler answers one query type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc answers a query, either the registered handler or the next middleware in the chain
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every dispatched query. The CLI installs one that logs
// each query and, with metrics enabled, one that records its duration.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
