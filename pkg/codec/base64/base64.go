// Package base64 converts text and files to and from standard Base64
// (RFC 4648, "=" padded).
package base64

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/yuanzicheng/dev-tools/pkg/codec"
)

// Errors underlying codec failures.
var (
	errInvalidUTF8Input  = errors.New("input is not valid UTF-8")
	errInvalidUTF8Output = errors.New("decoded bytes are not valid UTF-8")
)

// EncodeText encodes the UTF-8 bytes of s.
func EncodeText(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if !utf8.ValidString(s) {
		return "", codec.Encode(errors.Wrap(errInvalidUTF8Input, "Base64 encoding failed"))
	}
	return base64.StdEncoding.EncodeToString([]byte(s)), nil
}

// DecodeText is the inverse of EncodeText. ASCII whitespace is ignored
// and missing padding is tolerated.
func DecodeText(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	b, err := decode(s)
	if err != nil {
		return "", codec.Decode(errors.Wrap(err, "Base64 decoding failed"))
	}
	if !utf8.Valid(b) {
		return "", codec.Decode(errors.Wrap(errInvalidUTF8Output, "Base64 decoding failed"))
	}
	return string(b), nil
}

// EncodeFile reads f to the end and encodes its bytes. A nil file
// encodes to the empty string.
func EncodeFile(ctx context.Context, f codec.File) (out string, err error) {
	if f == nil {
		return "", nil
	}

	b, err := codec.ReadAll(ctx, f)
	if err != nil {
		return "", codec.FileRead(errors.Wrap(err, "File reading failed"))
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = "", codec.Recover(codec.ErrEncode, r)
		}
	}()
	return base64.StdEncoding.EncodeToString(b), nil
}

func decode(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s)

	enc := base64.StdEncoding
	if len(s)%4 != 0 && !strings.HasSuffix(s, "=") {
		enc = base64.RawStdEncoding
	}
	return enc.DecodeString(s)
}
