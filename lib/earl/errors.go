package earl

import (
	"fmt"
)

// TransportError is a failure of the request itself (dns, refused or reset
// connections, timeouts), no response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is a response body that could not be decoded.
type ParseError struct {
	URL         string
	ContentType string
	Err         error
}

func (e *ParseError) Error() string {
	if e.ContentType == "" {
		return fmt.Sprintf("parse response of %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("parse response of %s (%s): %s", e.URL, e.ContentType, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned while building an Earl, before any request
// is made.
type ConfigurationError struct {
	Endpoint string
	Reason   string
	// Err is the underlying failure, if any.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configure %s: %s: %s", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("configure %s: %s", e.Endpoint, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
