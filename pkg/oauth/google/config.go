package google

import "github.com/dmitrymomot/sociallogin/pkg/oauth"

// Config holds the Google client registration, loadable via pkg/config.
// Scopes are comma separated in the environment and space joined on the wire.
type Config struct {
	ProviderID   string   `env:"GOOGLE_OAUTH_PROVIDER_ID" envDefault:"google"`
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:","`
	UserFolder   string   `env:"GOOGLE_OAUTH_USER_FOLDER" envDefault:"social/"`
}

// OAuth returns the provider-agnostic part of the configuration.
func (c Config) OAuth() oauth.Config {
	return oauth.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       c.Scopes,
	}.Clone()
}
