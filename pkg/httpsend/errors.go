package httpsend

import "errors"

var (
	ErrNilRequest   = errors.New("httpsend: nil request")
	ErrCircuitOpen  = errors.New("httpsend: circuit breaker open")
	ErrBodyTooLarge = errors.New("httpsend: response body exceeds limit")

	// errServerStatus marks 5xx responses as breaker failures. It never
	// escapes Send.
	errServerStatus = errors.New("httpsend: server error status")
)
