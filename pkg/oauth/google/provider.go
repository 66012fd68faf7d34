package google

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/sociallogin/pkg/httpsend"
	"github.com/dmitrymomot/sociallogin/pkg/logger"
	"github.com/dmitrymomot/sociallogin/pkg/oauth"
)

const (
	component       = "google_oauth"
	providerName    = "GoogleProvider"
	defaultID       = "google"
	defaultFolder   = "social/"
	accessTokenPath = "oauth/oauthid-"
	oauthIDPath     = "oauth/id-"
)

// Ensure Provider implements the host contract.
var _ oauth.Provider = (*Provider)(nil)

// Provider binds the Google adapter to one client registration.
// It is immutable after New and safe for concurrent use.
type Provider struct {
	id         string
	userFolder string
	cfg        oauth.Config
	sender     oauth.Sender
	logger     *slog.Logger
}

// Option configures a Provider during construction.
type Option func(*Provider)

// WithSender sets the capability used for outbound HTTP calls.
func WithSender(s oauth.Sender) Option {
	return func(p *Provider) {
		if s != nil {
			p.sender = s
		}
	}
}

// WithLogger configures the logger. Logs discard by default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// New validates cfg and returns a Provider. It fails with an error wrapping
// oauth.ErrConfiguration when the client id or redirect URL is blank.
// Without WithSender the provider sends requests through httpsend defaults.
func New(cfg Config, opts ...Option) (*Provider, error) {
	oc := cfg.OAuth()
	if err := oc.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		id:         cfg.ProviderID,
		userFolder: cfg.UserFolder,
		cfg:        oc,
		logger:     logger.Discard(),
	}
	if p.id == "" {
		p.id = defaultID
	}
	if p.userFolder == "" {
		p.userFolder = defaultFolder
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sender == nil {
		p.sender = httpsend.New(httpsend.WithLogger(p.logger))
	}
	return p, nil
}

func (p *Provider) ID() string              { return p.id }
func (p *Provider) Name() string            { return providerName }
func (p *Provider) Type() oauth.ProviderType { return oauth.TypeOAuth2 }

func (p *Provider) AccessTokenEndpoint() string { return TokenURL }
func (p *Provider) AccessTokenVerb() string     { return AccessTokenVerb }
func (p *Provider) DetailsURL() string          { return DetailsURL }
func (p *Provider) UserIDProperty() string      { return UserIDProperty }

// ClientID returns the configured client id.
func (p *Provider) ClientID() string { return p.cfg.ClientID }

// AuthorizationURL builds the consent redirect for this client.
func (p *Provider) AuthorizationURL() (string, error) {
	u, err := BuildAuthorizationURL(p.cfg)
	if err != nil {
		return "", err
	}
	p.logger.Debug("authorization url built",
		logger.Component(component),
		logger.Provider(p.id),
		logger.URL(u),
	)
	return u, nil
}

// ExchangeCode trades code for the raw token response.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (*oauth.Response, error) {
	return ExchangeCode(ctx, p.cfg, code, p.sender, p.logger.With(logger.Provider(p.id)))
}

// ExtractAccessToken parses the token response.
func (p *Provider) ExtractAccessToken(resp *oauth.Response) (*oauth2.Token, error) {
	tok, err := ExtractAccessToken(resp)
	if err != nil {
		p.logger.Warn("cannot extract access token",
			logger.Component(component),
			logger.Provider(p.id),
			logger.Error(err),
		)
		return nil, err
	}
	return tok, nil
}

// ProtectedDataRequest returns a GET request for url. The caller adds the
// bearer credential before sending it.
func (p *Provider) ProtectedDataRequest(url string) *oauth.Request {
	return oauth.NewRequest(http.MethodGet, url)
}

// ParseProfile decodes a profile body.
func (p *Provider) ParseProfile(body []byte) (oauth.Properties, error) {
	props, err := ParseProfile(body)
	if err != nil {
		p.logger.Error("cannot parse profile response",
			logger.Component(component),
			logger.Provider(p.id),
			logger.Error(err),
		)
		return nil, err
	}
	p.logger.Debug("profile parsed",
		logger.Component(component),
		logger.Provider(p.id),
		slog.Any("properties", props.Names()),
	)
	return props, nil
}

// MapProperties merges incoming into existing keeping Google's property names.
func (p *Provider) MapProperties(srcURL string, existing map[string]any, incoming oauth.Properties) map[string]any {
	mapped := oauth.MapProperties(existing, incoming)
	p.logger.Debug("properties mapped",
		logger.Component(component),
		logger.Provider(p.id),
		logger.URL(srcURL),
		slog.Int("existing", len(existing)),
		slog.Int("incoming", len(incoming)),
		slog.Int("mapped", len(mapped)),
	)
	return mapped
}

// MapUserID keeps the provider user id (the email) as the local user id.
func (p *Provider) MapUserID(userID string, _ map[string]any) string {
	return userID
}

// Identity derives the user id from incoming and merges incoming into existing.
func (p *Provider) Identity(existing map[string]any, incoming oauth.Properties) (*oauth.Identity, error) {
	userID, err := DeriveUserID(incoming)
	if err != nil {
		p.logger.Warn("profile has no identity property",
			logger.Component(component),
			logger.Provider(p.id),
			slog.String("property", UserIDProperty),
		)
		return nil, err
	}
	props := p.MapProperties(DetailsURL, existing, incoming)
	return &oauth.Identity{
		UserID:     p.MapUserID(userID, props),
		Properties: props,
	}, nil
}

// AccessTokenPropertyPath is where an identity store keeps the access token
// issued to this client.
func (p *Provider) AccessTokenPropertyPath() string {
	return accessTokenPath + p.cfg.ClientID
}

// OAuthIDPropertyPath is where an identity store keeps the provider user id.
func (p *Provider) OAuthIDPropertyPath() string {
	return oauthIDPath + p.cfg.ClientID
}

// UserFolderPath returns the folder a new user is created in: the configured
// folder followed by the first character of userID.
func (p *Provider) UserFolderPath(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return p.userFolder
	}
	for _, r := range userID {
		return p.userFolder + string(r)
	}
	return p.userFolder
}
