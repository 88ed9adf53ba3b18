package remote

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is a response outside the 2xx range.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: http %d", e.Method, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// DecodeError is a 2xx response whose body is not a task list.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode tasks from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind names the failure class of err: "network", "status", "decode" or "other".
func Kind(err error) string {
	var (
		netErr    *NetworkError
		statusErr *StatusError
		decErr    *DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &decErr):
		return "decode"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "other"
	}
}
