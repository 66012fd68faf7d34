package oauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Token response field names.
const (
	FieldAccessToken  = "access_token"
	FieldTokenType    = "token_type"
	FieldRefreshToken = "refresh_token"
	FieldExpiresIn    = "expires_in"
)

// TokenExtractor turns the body of a token endpoint response into a token.
// The returned token keeps every raw field reachable through Token.Extra.
type TokenExtractor interface {
	Extract(body []byte) (*oauth2.Token, error)
}

// JSONTokenExtractor reads a JSON object token response.
type JSONTokenExtractor struct {
	// Now is used to turn expires_in into an absolute expiry. Defaults to time.Now.
	Now func() time.Time
}

func (x JSONTokenExtractor) Extract(body []byte) (*oauth2.Token, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrTokenParse)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrTokenParse)
	}

	accessToken, _ := raw[FieldAccessToken].(string)
	if accessToken == "" {
		return nil, fmt.Errorf("%w: %s is missing", ErrTokenParse, FieldAccessToken)
	}

	tok := &oauth2.Token{AccessToken: accessToken}
	tok.TokenType, _ = raw[FieldTokenType].(string)
	tok.RefreshToken, _ = raw[FieldRefreshToken].(string)

	switch v := raw[FieldExpiresIn].(type) {
	case json.Number:
		if secs, err := v.Int64(); err == nil && secs > 0 {
			tok.Expiry = x.now().Add(time.Duration(secs) * time.Second)
		}
	case string:
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil && secs > 0 {
			tok.Expiry = x.now().Add(time.Duration(secs) * time.Second)
		}
	}

	return tok.WithExtra(raw), nil
}

func (x JSONTokenExtractor) now() time.Time {
	if x.Now != nil {
		return x.Now()
	}
	return time.Now()
}

// FormTokenExtractor reads a form-encoded token response
// (access_token=...&token_type=...). It is the generic default.
type FormTokenExtractor struct {
	Now func() time.Time
}

func (x FormTokenExtractor) Extract(body []byte) (*oauth2.Token, error) {
	vals, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenParse, err)
	}

	accessToken := vals.Get(FieldAccessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("%w: %s is missing", ErrTokenParse, FieldAccessToken)
	}

	tok := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    vals.Get(FieldTokenType),
		RefreshToken: vals.Get(FieldRefreshToken),
	}
	if secs, err := strconv.ParseInt(vals.Get(FieldExpiresIn), 10, 64); err == nil && secs > 0 {
		now := time.Now
		if x.Now != nil {
			now = x.Now
		}
		tok.Expiry = now().Add(time.Duration(secs) * time.Second)
	}

	return tok.WithExtra(vals), nil
}
