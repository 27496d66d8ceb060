package transform

import (
	"context"
	"fmt"
	"log"

	"github.com/yuanzicheng/dev-tools/pkg/codec"
)

// Op is a transform direction.
type Op string

// Supported operations
const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// ParseOp validates an operation name.
func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpEncode, OpDecode:
		return op, nil
	}
	return "", fmt.Errorf("unknown operation: %s", s)
}

// Input is the text or the single file a transform runs on. When File
// is set, Text is ignored.
type Input struct {
	Text string
	File codec.File
}

// IsEmpty reports whether there is nothing to transform.
func (in Input) IsEmpty() bool {
	return in.File == nil && in.Text == ""
}

// Run applies op to in and returns the outcome. Empty input succeeds
// with empty output. Errors, including panics inside the engine, are
// logged and returned as a failure; Run itself never fails.
func Run(ctx context.Context, e Engine, op Op, in Input) (res Result) {
	if in.IsEmpty() {
		return Empty()
	}
	if !e.Capabilities().Supports(op, in.File != nil) {
		return Failure(ErrUnsupported)
	}

	defer func() {
		if r := recover(); r != nil {
			kind := codec.ErrEncode
			if op == OpDecode {
				kind = codec.ErrDecode
			}
			res = Failure(codec.Recover(kind, r))
		}
		if res.IsFailure() {
			log.Printf("%s %s error: %v\n", e.Name(), op, res.Err())
		}
	}()

	var (
		out string
		err error
	)
	switch {
	case in.File != nil:
		out, err = e.EncodeFile(ctx, in.File)
	case op == OpEncode:
		out, err = e.Encode(in.Text)
	default:
		out, err = e.Decode(in.Text)
	}
	if err != nil {
		return Failure(err)
	}
	if out == "" {
		return Empty()
	}
	return Success(out)
}
