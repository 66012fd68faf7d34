package oauth

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration           = errors.New("oauth: invalid provider configuration")
	ErrTokenExchange           = errors.New("oauth: token exchange failed")
	ErrTokenParse              = errors.New("oauth: cannot parse token response")
	ErrProfileParse            = errors.New("oauth: cannot parse profile response")
	ErrMissingIdentityProperty = errors.New("oauth: identity property missing from profile")
)

// TokenExchangeError carries the outcome of a failed code-for-token exchange.
// StatusCode is zero when no response was received.
type TokenExchangeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", ErrTokenExchange, e.Err)
	}
	return fmt.Sprintf("%s: provider returned status %d", ErrTokenExchange, e.StatusCode)
}

// Is makes every TokenExchangeError match ErrTokenExchange.
func (e *TokenExchangeError) Is(target error) bool {
	return target == ErrTokenExchange
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}
