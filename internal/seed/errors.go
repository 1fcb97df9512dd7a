package seed

import (
	"errors"
	"fmt"
)

// NetworkError covers a malformed URL, a transport failure, or a response
// status outside 2xx. StatusCode is zero when no response was received.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("seed: GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("seed: GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that does not have the expected page shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("seed: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func IsDecode(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}
