package base64url

import (
	"encoding/base64"
	"strings"
)

// Encode encodes the given bytes using strict base64url encoding.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode decodes the given string using strict base64url encoding.
func Decode(str string) ([]byte, error) {
	return base64.RawURLEncoding.Strict().DecodeString(str)
}

// DecodeSegment decodes a token segment leniently: trailing "=" padding
// is dropped and the standard alphabet's "+" and "/" are accepted.
func DecodeSegment(seg string) ([]byte, error) {
	seg = strings.TrimRight(seg, "=")
	seg = strings.NewReplacer("+", "-", "/", "_").Replace(seg)
	return base64.RawURLEncoding.DecodeString(seg)
}
