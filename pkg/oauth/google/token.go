package google

import (
	"fmt"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/sociallogin/pkg/oauth"
)

// ExtractAccessToken parses Google's JSON token response.
func ExtractAccessToken(resp *oauth.Response) (*oauth2.Token, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: no response", oauth.ErrTokenParse)
	}
	return oauth.JSONTokenExtractor{}.Extract(resp.Body)
}
