package api

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("api key not configured")
	ErrRateNotFound  = errors.New("rate not found")
)

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API %d: %s", e.Provider, e.StatusCode, e.Body)
}
