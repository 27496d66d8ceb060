package jwt

import (
	"fmt"

	"github.com/yuanzicheng/dev-tools/pkg/codec"
)

// None is reported as the signature of a token without one.
const None = "None"

func errMissingPart(n int) error {
	return codec.MalformedToken(fmt.Errorf("invalid token specified: missing part #%d", n))
}

func errInvalidBase64(n int, err error) error {
	return codec.MalformedToken(fmt.Errorf("invalid token specified: invalid base64 for part #%d (%v)", n, err))
}

func errInvalidJSON(n int, err error) error {
	return codec.MalformedToken(fmt.Errorf("invalid token specified: invalid json for part #%d (%v)", n, err))
}
