package google

import (
	"strings"

	xgoogle "golang.org/x/oauth2/google"

	"github.com/dmitrymomot/sociallogin/pkg/oauth"
)

// ScopeSeparator joins multiple scopes. Google rejects the generic comma.
const ScopeSeparator = " "

// AuthorizeURL is Google's authorization endpoint.
var AuthorizeURL = xgoogle.Endpoint.AuthURL

// BuildAuthorizationURL returns the URL that starts the authorization code flow.
// The scope parameter is present only when cfg has at least one scope.
func BuildAuthorizationURL(cfg oauth.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(AuthorizeURL)
	b.WriteString("?" + oauth.ParamResponseType + "=" + oauth.ResponseTypeCode)
	b.WriteString("&" + oauth.ParamClientID + "=" + oauth.Encode(cfg.ClientID))
	b.WriteString("&" + oauth.ParamRedirectURI + "=" + oauth.Encode(cfg.RedirectURL))
	if cfg.HasScope() {
		b.WriteString("&" + oauth.ParamScope + "=" + oauth.Encode(cfg.Scope(ScopeSeparator)))
	}
	return b.String(), nil
}
