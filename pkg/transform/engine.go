package transform

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yuanzicheng/dev-tools/pkg/codec"
	"github.com/yuanzicheng/dev-tools/pkg/codec/base64"
	"github.com/yuanzicheng/dev-tools/pkg/codec/urlenc"
	"github.com/yuanzicheng/dev-tools/pkg/jwt"
)

// ErrUnsupported is returned for an operation an engine does not offer.
var ErrUnsupported = errors.New("operation not supported")

// Capabilities describes which operations an engine offers.
type Capabilities struct {
	Encode bool `json:"encode"`
	Decode bool `json:"decode"`
	File   bool `json:"file"` // Encoding a file is supported
}

// Supports reports whether op is offered for the given input kind.
func (c Capabilities) Supports(op Op, file bool) bool {
	if file {
		return op == OpEncode && c.File
	}
	switch op {
	case OpEncode:
		return c.Encode
	case OpDecode:
		return c.Decode
	}
	return false
}

// Engine is a set of pure transforms behind one utility page.
type Engine interface {
	Name() string
	Capabilities() Capabilities
	Encode(s string) (string, error)
	Decode(s string) (string, error)
	EncodeFile(ctx context.Context, f codec.File) (string, error)
}

// Engine names
const (
	NameBase64 = "base64"
	NameURL    = "url"
	NameJWT    = "jwt"
)

type base64Engine struct{}

func (base64Engine) Name() string { return NameBase64 }

func (base64Engine) Capabilities() Capabilities {
	return Capabilities{Encode: true, Decode: true, File: true}
}

func (base64Engine) Encode(s string) (string, error) { return base64.EncodeText(s) }

func (base64Engine) Decode(s string) (string, error) { return base64.DecodeText(s) }

func (base64Engine) EncodeFile(ctx context.Context, f codec.File) (string, error) {
	return base64.EncodeFile(ctx, f)
}

type urlEngine struct{}

func (urlEngine) Name() string { return NameURL }

func (urlEngine) Capabilities() Capabilities {
	return Capabilities{Encode: true, Decode: true}
}

func (urlEngine) Encode(s string) (string, error) { return urlenc.Encode(s) }

func (urlEngine) Decode(s string) (string, error) { return urlenc.Decode(s) }

func (urlEngine) EncodeFile(context.Context, codec.File) (string, error) {
	return "", ErrUnsupported
}

// jwtEngine only decodes; decoding renders the formatted token.
type jwtEngine struct{}

func (jwtEngine) Name() string { return NameJWT }

func (jwtEngine) Capabilities() Capabilities {
	return Capabilities{Decode: true}
}

func (jwtEngine) Encode(string) (string, error) { return "", ErrUnsupported }

func (jwtEngine) Decode(s string) (string, error) {
	token, err := jwt.Decode(s)
	if err != nil {
		return "", err
	}
	return token.Format(), nil
}

func (jwtEngine) EncodeFile(context.Context, codec.File) (string, error) {
	return "", ErrUnsupported
}

var registry = map[string]Engine{
	NameBase64: base64Engine{},
	NameURL:    urlEngine{},
	NameJWT:    jwtEngine{},
}

// Lookup returns the engine registered under name.
func Lookup(name string) (Engine, error) {
	if e, ok := registry[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown engine: %s", name)
}

// Engines returns all registered engines ordered by name.
func Engines() []Engine {
	engines := make([]Engine, 0, len(registry))
	for _, e := range registry {
		engines = append(engines, e)
	}
	sort.Slice(engines, func(i, j int) bool {
		return engines[i].Name() < engines[j].Name()
	})
	return engines
}
