package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// ProviderType distinguishes OAuth protocol generations.
type ProviderType string

const (
	TypeOAuth1 ProviderType = "oauth1"
	TypeOAuth2 ProviderType = "oauth2"
)

// Identity is the normalized result handed to an identity-sync step.
type Identity struct {
	UserID     string
	Properties map[string]any
}

// Provider is the contract a host authentication framework drives.
// Implementations are stateless between calls and safe for concurrent use.
type Provider interface {
	// ID is the unique configured identifier of this provider.
	ID() string
	// Name is a human readable provider name.
	Name() string
	Type() ProviderType

	AccessTokenEndpoint() string
	AccessTokenVerb() string
	// DetailsURL is the endpoint serving the user profile.
	DetailsURL() string
	// UserIDProperty names the profile property that identifies the user.
	UserIDProperty() string

	// AuthorizationURL returns the URL that starts the authorization code flow.
	AuthorizationURL() (string, error)
	// ExchangeCode trades an authorization code for the raw token response.
	ExchangeCode(ctx context.Context, code string) (*Response, error)
	// ExtractAccessToken reads the token from a token endpoint response.
	ExtractAccessToken(resp *Response) (*oauth2.Token, error)
	// ProtectedDataRequest builds the request used to fetch protected data from url.
	ProtectedDataRequest(url string) *Request
	// ParseProfile decodes a profile response body.
	ParseProfile(body []byte) (Properties, error)
	// MapProperties merges properties fetched from srcURL into existing.
	MapProperties(srcURL string, existing map[string]any, incoming Properties) map[string]any
	// MapUserID maps the provider's user id to the local user id.
	MapUserID(userID string, props map[string]any) string
}
