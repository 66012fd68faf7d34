package google

import "github.com/dmitrymomot/sociallogin/pkg/oauth"

const (
	// DetailsURL serves the profile of the token owner.
	DetailsURL = "https://www.googleapis.com/oauth2/v1/userinfo?alt=json"

	// UserIDProperty is the profile property used as the user identifier.
	UserIDProperty = "email"
)

// ParseProfile decodes the userinfo response body.
func ParseProfile(body []byte) (oauth.Properties, error) {
	return oauth.ParseProperties(body)
}

// DeriveUserID returns the email from the profile.
func DeriveUserID(incoming oauth.Properties) (string, error) {
	return oauth.DeriveUserID(incoming, UserIDProperty)
}
