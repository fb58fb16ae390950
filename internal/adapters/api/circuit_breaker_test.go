package api

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/shared"
)

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	clock := shared.NewMockClock(time.Unix(0, 0))
	cb := NewCircuitBreaker(1, 30*time.Second, clock)

	var transitions []string
	cb.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	boom := errors.New("boom")
	assert.ErrorIs(t, cb.Call(func() error { return boom }), boom)
	assert.Equal(t, CircuitOpen, cb.State())

	assert.ErrorIs(t, cb.Call(func() error { return nil }), ErrCircuitOpen)

	clock.Advance(31 * time.Second)
	assert.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, CircuitClosed, cb.State())
	assert.Zero(t, cb.FailureCount())

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := shared.NewMockClock(time.Unix(0, 0))
	cb := NewCircuitBreaker(3, time.Second, clock)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_ = cb.Call(func() error { return boom })
	}
	assert.Equal(t, CircuitOpen, cb.State())

	clock.Advance(2 * time.Second)
	_ = cb.Call(func() error { return boom })
	assert.Equal(t, CircuitOpen, cb.State())

	cb.Reset()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestServerURL(t *testing.T) {
	url, err := ServerURL(ServerDeadman)
	assert.NoError(t, err)
	assert.Equal(t, "https://prices.runescape.wiki/api/v1/dmm", url)

	_, err = ServerURL(Server("leagues"))
	assert.Error(t, err)
	assert.Equal(t, []string{"deadman", "default", "fresh-start"}, Servers())
}
