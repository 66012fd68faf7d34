package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	xgoogle "golang.org/x/oauth2/google"

	"github.com/dmitrymomot/sociallogin/pkg/logger"
	"github.com/dmitrymomot/sociallogin/pkg/oauth"
)

// AccessTokenVerb overrides the generic GET.
const AccessTokenVerb = http.MethodPost

// TokenURL is Google's access-token endpoint.
var TokenURL = xgoogle.Endpoint.TokenURL

// NewTokenRequest shapes the code-for-token request: a POST carrying the
// grant parameters in its query string, in a fixed order.
func NewTokenRequest(cfg oauth.Config, code string) *oauth.Request {
	req := oauth.NewRequest(AccessTokenVerb, TokenURL)
	req.Params.Add(oauth.ParamClientID, cfg.ClientID)
	req.Params.Add(oauth.ParamClientSecret, cfg.ClientSecret)
	req.Params.Add(oauth.ParamCode, code)
	req.Params.Add(oauth.ParamRedirectURI, cfg.RedirectURL)
	req.Params.Add(oauth.ParamGrantType, oauth.GrantTypeAuthorizationCode)
	return req
}

// ExchangeCode sends the token request once and returns the raw response.
// Transport failures and non-2xx answers come back as *oauth.TokenExchangeError.
func ExchangeCode(ctx context.Context, cfg oauth.Config, code string, sender oauth.Sender, log *slog.Logger) (*oauth.Response, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: authorization code is required", oauth.ErrConfiguration)
	}
	if sender == nil {
		return nil, fmt.Errorf("%w: sender is required", oauth.ErrConfiguration)
	}
	if log == nil {
		log = logger.Discard()
	}

	req := NewTokenRequest(cfg, code)
	resp, err := sender.Send(ctx, req)
	if err != nil {
		log.WarnContext(ctx, "token exchange request failed",
			logger.Component(component),
			logger.URL(req.RedactedURL()),
			logger.Error(err),
		)
		return nil, &oauth.TokenExchangeError{Err: err}
	}

	log.DebugContext(ctx, "token exchange response received",
		logger.Component(component),
		logger.StatusCode(resp.StatusCode),
		logger.URL(req.RedactedURL()),
	)

	if !resp.IsSuccess() {
		return nil, &oauth.TokenExchangeError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return resp, nil
}
