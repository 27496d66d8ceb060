package codec

import (
	"errors"
	"fmt"
)

// Transform error kinds. Use errors.Is to test an error returned by
// a codec against one of these.
var (
	ErrDecode         = errors.New("decode error")
	ErrMalformedToken = errors.New("malformed token")
	ErrFileRead       = errors.New("file read error")
	ErrEncode         = errors.New("encode error")
)

// Error is returned by every codec operation that fails. Its message is
// the underlying diagnostic so it can be shown to the user as-is.
type Error struct {
	Kind error // One of the Err* kinds above
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying diagnostic.
func (e *Error) Unwrap() error {
	return e.Err
}

// Cause satisfies github.com/pkg/errors.
func (e *Error) Cause() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Decode wraps err as a decode failure.
func Decode(err error) error {
	return &Error{Kind: ErrDecode, Err: err}
}

// MalformedToken wraps err as a token failure.
func MalformedToken(err error) error {
	return &Error{Kind: ErrMalformedToken, Err: err}
}

// FileRead wraps err as a file ingestion failure.
func FileRead(err error) error {
	return &Error{Kind: ErrFileRead, Err: err}
}

// Encode wraps err as an encode failure.
func Encode(err error) error {
	return &Error{Kind: ErrEncode, Err: err}
}

// KindOf returns a short name for the kind of err, or "" if err
// did not come from a codec.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrFileRead):
		return "file_read"
	case errors.Is(err, ErrEncode):
		return "encode"
	}
	return ""
}

// KindByName is the inverse of KindOf. It returns nil for unknown names.
func KindByName(name string) error {
	switch name {
	case "decode":
		return ErrDecode
	case "malformed_token":
		return ErrMalformedToken
	case "file_read":
		return ErrFileRead
	case "encode":
		return ErrEncode
	}
	return nil
}

// Recover converts a panic value into an error of the given kind.
func Recover(kind error, v interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf("unexpected failure: %v", v)}
}
