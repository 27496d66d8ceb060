package jwt

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// RegisteredClaims holds the claims registered by RFC 7519 section 4.1.
// Time claims are seconds since the epoch.
type RegisteredClaims struct {
	Issuer         string   `mapstructure:"iss" json:"iss,omitempty"`
	Subject        string   `mapstructure:"sub" json:"sub,omitempty"`
	Audience       []string `mapstructure:"aud" json:"aud,omitempty"`
	ExpirationTime int64    `mapstructure:"exp" json:"exp,omitempty"`
	NotBefore      int64    `mapstructure:"nbf" json:"nbf,omitempty"`
	IssuedAt       int64    `mapstructure:"iat" json:"iat,omitempty"`
	JwtID          string   `mapstructure:"jti" json:"jti,omitempty"`
}

// RegisteredClaims extracts the registered claims from the payload. A
// single audience string is returned as a one-element list. Custom
// claims are ignored.
func (t *Token) RegisteredClaims() (*RegisteredClaims, error) {
	claims, err := t.Claims()
	if err != nil {
		return nil, err
	}

	var registered RegisteredClaims
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &registered,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(claims); err != nil {
		return nil, err
	}
	return &registered, nil
}

// Times renders the time claims present in the payload in RFC 3339,
// keyed by claim name.
func (t *Token) Times() map[string]string {
	times := make(map[string]string)
	for name, get := range map[string]func() (time.Time, bool){
		"iat": t.IssuedAt,
		"nbf": t.NotBefore,
		"exp": t.ExpiresAt,
	} {
		if ts, ok := get(); ok {
			times[name] = ts.Format(time.RFC3339)
		}
	}
	return times
}
