package oauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Properties holds profile attributes keyed by the provider's property name.
// A nil value records a property the provider sent as JSON null.
type Properties map[string]*string

// Get returns the value of name when it is present and not null.
func (p Properties) Get(name string) (string, bool) {
	v, ok := p[name]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Set stores a non-null value.
func (p Properties) Set(name, value string) {
	p[name] = &value
}

// Names returns the property names in no particular order.
func (p Properties) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	return names
}

// ParseProperties decodes a flat JSON object into Properties. Strings keep
// their value, numbers and booleans keep their literal text and null is
// recorded as a nil value. Nested objects and arrays are rejected.
func ParseProperties(body []byte) (Properties, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrProfileParse)
	}

	props := make(Properties, len(raw))
	for name, value := range raw {
		value = bytes.TrimSpace(value)
		switch {
		case bytes.Equal(value, []byte("null")):
			props[name] = nil
		case len(value) > 0 && value[0] == '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("%w: property %q: %w", ErrProfileParse, name, err)
			}
			props.Set(name, s)
		case len(value) > 0 && (value[0] == '{' || value[0] == '['):
			return nil, fmt.Errorf("%w: property %q: %w", ErrProfileParse, name, errNotFlat)
		default:
			props.Set(name, string(value))
		}
	}
	return props, nil
}

var errNotFlat = errors.New("nested values are not supported")

// MapProperties merges incoming into a copy of existing. Every non-null
// incoming value is written under its property name verbatim; null values
// never overwrite an existing entry. Neither input is modified.
func MapProperties(existing map[string]any, incoming Properties) map[string]any {
	mapped := make(map[string]any, len(existing)+len(incoming))
	maps.Copy(mapped, existing)
	for name, value := range incoming {
		if value != nil {
			mapped[name] = *value
		}
	}
	return mapped
}

// DeriveUserID returns the value of the designated identity property.
func DeriveUserID(incoming Properties, idProperty string) (string, error) {
	userID, ok := incoming.Get(idProperty)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingIdentityProperty, idProperty)
	}
	return userID, nil
}
