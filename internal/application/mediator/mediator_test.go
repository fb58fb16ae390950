package mediator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingQuery struct{ value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request Request) (Response, error) {
	query, ok := request.(*pingQuery)
	if !ok {
		return nil, errors.New("invalid request type")
	}
	return "pong:" + query.value, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingQuery](m, pingHandler{}))

	response, err := m.Send(context.Background(), &pingQuery{value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", response)
}

func TestMediator_RegisterRejectsDuplicates(t *testing.T) {
	m := NewMediator()
	require.NoError(t, m.Register(reflect.TypeOf(&pingQuery{}), pingHandler{}))

	err := m.Register(reflect.TypeOf(&pingQuery{}), pingHandler{})

	assert.ErrorContains(t, err, "already registered")
}

func TestMediator_UnknownRequest(t *testing.T) {
	m := NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingQuery](m, pingHandler{}))

	var order []string
	trace := func(name string) Middleware {
		return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
			order = append(order, name+":before")
			response, err := next(ctx, request)
			order = append(order, name+":after")
			return response, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{value: "b"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}
