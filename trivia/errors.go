package trivia

import (
	"errors"
	"fmt"
)

// ErrNoResults means the API has too few questions for the chosen filters
var ErrNoResults = errors.New("no questions available for your criteria, try different options")

// NetworkError is a transport failure: DNS, connection reset or timeout.
// Retrying the whole load may succeed.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx HTTP status or a failure code reported in the body
type ServerError struct {
	Status  int // HTTP status, 0 when the failure came from response_code
	Message string
}

func (e *ServerError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("server error: HTTP %d", e.Status)
	}
	return "server error: " + e.Message
}

// DecodingError means the response body did not have the expected shape
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string { return fmt.Sprintf("decoding error: %v", e.Err) }
func (e *DecodingError) Unwrap() error { return e.Err }

// UserMessage turns a fetch error into text suitable for a player
func UserMessage(err error) string {
	var netErr *NetworkError
	var srvErr *ServerError
	var decErr *DecodingError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoResults):
		return "No questions available for your criteria. Try different options."
	case errors.As(err, &netErr):
		return "Could not reach the trivia service. Please try again."
	case errors.As(err, &srvErr):
		if srvErr.Status != 0 {
			return fmt.Sprintf("Trivia service error (HTTP %d).", srvErr.Status)
		}
		return srvErr.Message + "."
	case errors.As(err, &decErr):
		return "Decoding error: " + decErr.Err.Error()
	}
	return "Unknown error."
}
