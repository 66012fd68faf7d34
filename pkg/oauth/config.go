package oauth

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultScopeSeparator is used by the generic abstraction to join scopes.
// Providers that expect another separator join the scopes themselves.
const DefaultScopeSeparator = ","

// Config is the registered client of one configured identity provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Validate reports a configuration error when the fields every flow needs are blank.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("%w: client id is required", ErrConfiguration)
	}
	if strings.TrimSpace(c.RedirectURL) == "" {
		return fmt.Errorf("%w: redirect url is required", ErrConfiguration)
	}
	return nil
}

// HasScope reports whether at least one non-blank scope is configured.
func (c Config) HasScope() bool {
	for _, s := range c.Scopes {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// Scope joins the non-blank scopes with sep.
func (c Config) Scope(sep string) string {
	scopes := make([]string, 0, len(c.Scopes))
	for _, s := range c.Scopes {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return strings.Join(scopes, sep)
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	c.Scopes = slices.Clone(c.Scopes)
	return c
}
