// Package urlenc implements URI component percent-encoding.
package urlenc

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/yuanzicheng/dev-tools/pkg/codec"
)

var (
	errInvalidUTF8Input  = errors.New("input is not valid UTF-8")
	errInvalidUTF8Output = errors.New("decoded bytes are not valid UTF-8")
)

// Encode percent-encodes every byte of s outside the unreserved set
// (ALPHA, DIGIT, "-", "_", ".", "~").
func Encode(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if !utf8.ValidString(s) {
		return "", codec.Encode(errors.Wrap(errInvalidUTF8Input, "URL encoding failed"))
	}
	// QueryEscape keeps exactly the unreserved set but writes spaces as "+".
	// A literal "+" is always escaped, so any "+" left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20"), nil
}

// Decode reverses Encode. "+" is not treated as a space.
func Decode(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	dec, err := url.PathUnescape(s)
	if err != nil {
		return "", codec.Decode(errors.Wrap(err, "URL decoding failed"))
	}
	if !utf8.ValidString(dec) {
		return "", codec.Decode(errors.Wrap(errInvalidUTF8Output, "URL decoding failed"))
	}
	return dec, nil
}
