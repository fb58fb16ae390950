package api

import (
	"fmt"
	"time"
)

// APIError is a non-retryable error status returned by the price feed
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d) from %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// InvalidItemError is returned when the feed rejects an item id
type InvalidItemError struct {
	URL    string
	ItemID int
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("an invalid item ID <%d> was provided to %s", e.ItemID, e.URL)
}

// MalformedResponseError is returned when a response body cannot be parsed
type MalformedResponseError struct {
	Endpoint string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Endpoint, e.Reason)
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}
