package jwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yuanzicheng/dev-tools/pkg/util/base64url"
)

// Token is a decoded JSON Web Token (JWT).
type Token struct {
	raw       string          // cached raw string
	Header    json.RawMessage // The header JSON as found in the token
	Payload   json.RawMessage // The payload JSON as found in the token
	Signature string          // The raw signature segment, or None
}

// ErrPayloadNotObject is returned by Claims for tokens whose payload is
// valid JSON but not an object.
var ErrPayloadNotObject = errors.New("payload is not a JSON object")

// Decode splits a compact token and decodes its header and payload.
// The signature is not verified.
func Decode(token string) (*Token, error) {
	fields := strings.Split(strings.TrimSpace(token), ".")
	if len(fields) < 2 {
		return nil, errMissingPart(2)
	}

	header, err := decodeSegment(fields[0], 1)
	if err != nil {
		return nil, err
	}

	payload, err := decodeSegment(fields[1], 2)
	if err != nil {
		return nil, err
	}

	signature := None
	if len(fields) > 2 && fields[2] != "" {
		signature = fields[2]
	}

	return &Token{
		raw:       token,
		Header:    header,
		Payload:   payload,
		Signature: signature,
	}, nil
}

func decodeSegment(seg string, part int) (json.RawMessage, error) {
	b, err := base64url.DecodeSegment(seg)
	if err != nil {
		return nil, errInvalidBase64(part, err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, errInvalidJSON(part, err)
	}
	return json.RawMessage(b), nil
}

// Raw returns the token string Decode was called with.
func (t *Token) Raw() string {
	return t.raw
}

// Format renders the token for display: indented header, indented
// payload and the signature, each under a title and separated by
// a blank line. Key order of the token is preserved.
func (t *Token) Format() string {
	var b strings.Builder
	b.WriteString("Header:\n")
	b.WriteString(indent(t.Header))
	b.WriteString("\n\nPayload:\n")
	b.WriteString(indent(t.Payload))
	b.WriteString("\n\nSignature:\n")
	b.WriteString(t.Signature)
	return b.String()
}

func indent(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Claims returns the payload as a map.
func (t *Token) Claims() (map[string]interface{}, error) {
	var claims map[string]interface{}
	if err := json.Unmarshal(t.Payload, &claims); err != nil || claims == nil {
		return nil, ErrPayloadNotObject
	}
	return claims, nil
}

// IssuedAt returns the "iat" claim, if present and numeric.
func (t *Token) IssuedAt() (time.Time, bool) {
	return t.timeClaim("iat")
}

// ExpiresAt returns the "exp" claim, if present and numeric.
func (t *Token) ExpiresAt() (time.Time, bool) {
	return t.timeClaim("exp")
}

// NotBefore returns the "nbf" claim, if present and numeric.
func (t *Token) NotBefore() (time.Time, bool) {
	return t.timeClaim("nbf")
}

func (t *Token) timeClaim(name string) (time.Time, bool) {
	claims, err := t.Claims()
	if err != nil {
		return time.Time{}, false
	}
	secs, ok := claims[name].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(secs), 0).UTC(), true
}

// Expired reports whether the token's "exp" claim lies before now.
// Tokens without one never expire.
func (t *Token) Expired(now time.Time) bool {
	exp, ok := t.ExpiresAt()
	return ok && now.After(exp)
}

// String implements fmt.Stringer.
func (t *Token) String() string {
	return fmt.Sprintf("JWT(header=%s, payload=%s, signature=%s)", t.Header, t.Payload, t.Signature)
}
