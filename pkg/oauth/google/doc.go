// Package google adapts the generic oauth abstraction to Google's OAuth2
// implementation.
//
// Google differs from the generic assumptions in three places and this
// package bridges each of them:
//
//   - the token endpoint is called with POST instead of GET;
//   - multiple scopes are joined with a single space before URL encoding;
//   - the token endpoint answers with JSON rather than a form-encoded body.
//
// Everything else follows the generic convention, including sending the
// token-exchange parameters in the query string of the POST request.
//
// # Components
//
// The adapter is four pure pipeline steps plus a Provider that binds them to
// one client configuration:
//
//	BuildAuthorizationURL(cfg)                // redirect that starts the flow
//	ExchangeCode(ctx, cfg, code, sender, log) // one POST to the token endpoint
//	ExtractAccessToken(resp)                  // JSON body -> *oauth2.Token
//	ParseProfile(body) + Identity(...)        // profile -> user id + properties
//
// # Usage
//
//	var cfg google.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	provider, err := google.New(cfg,
//		google.WithSender(httpsend.New(httpsend.WithLogger(log))),
//		google.WithLogger(log),
//	)
//	if err != nil {
//		return err // errors.Is(err, oauth.ErrConfiguration)
//	}
//
//	redirect, _ := provider.AuthorizationURL()
//
//	// in the callback handler
//	resp, err := provider.ExchangeCode(ctx, code)
//	tok, err := provider.ExtractAccessToken(resp)
//
//	req := provider.ProtectedDataRequest(provider.DetailsURL())
//	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
//	profile, err := sender.Send(ctx, req)
//
//	props, err := provider.ParseProfile(profile.Body)
//	identity, err := provider.Identity(existing, props)
//
// The email property is the user identifier. Secrets (client secret,
// authorization code, tokens) and response bodies are never logged.
package google
