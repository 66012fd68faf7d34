package oauth

import (
	"net/http"
	"net/url"
	"strings"
)

// DefaultAccessTokenVerb is the verb the generic abstraction uses for the
// access-token endpoint.
const DefaultAccessTokenVerb = http.MethodGet

// Parameter names of the authorization code grant.
const (
	ParamClientID     = "client_id"
	ParamClientSecret = "client_secret"
	ParamCode         = "code"
	ParamRedirectURI  = "redirect_uri"
	ParamGrantType    = "grant_type"
	ParamResponseType = "response_type"
	ParamScope        = "scope"

	GrantTypeAuthorizationCode = "authorization_code"
	ResponseTypeCode           = "code"
)

const redacted = "REDACTED"

// sensitiveParams are never rendered in RedactedURL.
var sensitiveParams = map[string]struct{}{
	ParamClientSecret: {},
	ParamCode:         {},
}

// Param is a single name/value pair.
type Param struct {
	Name  string
	Value string
}

// Params keeps parameters in insertion order so encoded URLs are deterministic.
type Params []Param

// Add appends a parameter.
func (p *Params) Add(name, value string) {
	*p = append(*p, Param{Name: name, Value: value})
}

// Get returns the first value stored under name.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Encode renders the parameters as a query string in insertion order.
func (p Params) Encode() string {
	return p.encode(false)
}

func (p Params) encode(redact bool) string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		value := param.Value
		if _, ok := sensitiveParams[param.Name]; ok && redact {
			value = redacted
		}
		b.WriteString(Encode(param.Name))
		b.WriteByte('=')
		b.WriteString(Encode(value))
	}
	return b.String()
}

// Request describes one outbound call to a provider endpoint.
// Params travel in the query string whatever the verb.
type Request struct {
	Verb     string
	Endpoint string
	Params   Params
	Header   http.Header
}

// NewRequest creates a request without parameters.
func NewRequest(verb, endpoint string) *Request {
	return &Request{
		Verb:     verb,
		Endpoint: endpoint,
		Header:   make(http.Header),
	}
}

// URL returns the endpoint with the parameters appended to its query string.
func (r *Request) URL() string {
	return r.url(false)
}

// RedactedURL is URL with secret parameter values masked. It is the only form
// of a request URL that may be logged.
func (r *Request) RedactedURL() string {
	return r.url(true)
}

func (r *Request) url(redact bool) string {
	if len(r.Params) == 0 {
		return r.Endpoint
	}
	sep := "?"
	if strings.Contains(r.Endpoint, "?") {
		sep = "&"
	}
	return r.Endpoint + sep + r.Params.encode(redact)
}

// Encode percent-encodes s for use in a query string. Spaces become %20
// rather than the form-encoding "+".
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
