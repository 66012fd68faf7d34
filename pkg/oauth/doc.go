// Package oauth is a small, protocol-agnostic OAuth2 client abstraction that
// provider adapters plug into.
//
// The package owns the shapes every provider shares: the registered client
// configuration, a token-exchange request with ordered parameters, the raw
// response of an outbound call, token extraction, profile properties and the
// normalized identity handed to an external identity-sync step. It performs no
// I/O itself; outbound HTTP is delegated to a Sender supplied by the caller.
//
// # Generic defaults
//
// Without provider overrides the abstraction assumes:
//
//   - authorization URLs built from a fixed template;
//   - the access-token endpoint called with GET (DefaultAccessTokenVerb);
//   - token-exchange parameters sent as query-string parameters;
//   - form-encoded token responses (FormTokenExtractor);
//   - multiple scopes joined with a comma (DefaultScopeSeparator).
//
// Provider adapters such as the google subpackage override what their
// provider needs and keep the rest.
//
// # Usage
//
//	cfg := oauth.Config{
//		ClientID:     "client-id",
//		ClientSecret: "client-secret",
//		RedirectURL:  "https://app.example.com/auth/callback",
//		Scopes:       []string{"openid", "email"},
//	}
//	if err := cfg.Validate(); err != nil {
//		// errors.Is(err, oauth.ErrConfiguration)
//	}
//
//	req := oauth.NewRequest(http.MethodPost, "https://provider.example.com/token")
//	req.Params.Add("client_id", cfg.ClientID)
//	resp, err := sender.Send(ctx, req)
//
//	tok, err := oauth.JSONTokenExtractor{}.Extract(resp.Body)
//
//	merged := oauth.MapProperties(existing, props)
//	userID, err := oauth.DeriveUserID(props, "email")
//
// # Error Handling
//
// Every failure wraps one of the sentinel errors so callers can branch with
// errors.Is:
//
//   - ErrConfiguration            – missing or malformed client configuration.
//   - ErrTokenExchange            – transport failure or non-2xx token response (see TokenExchangeError).
//   - ErrTokenParse               – token response body is not a usable token.
//   - ErrProfileParse             – profile body is not a flat JSON object.
//   - ErrMissingIdentityProperty  – the designated user-id property is absent.
package oauth
