package transform

import (
	"encoding/json"
	"errors"

	"github.com/yuanzicheng/dev-tools/pkg/codec"
)

// Status is the tag of a Result.
type Status string

// Result statuses
const (
	StatusEmpty   Status = "empty"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the outcome of one transform attempt. Output and error are
// never both set.
type Result struct {
	status Status
	output string
	err    error
}

// Empty is the result of transforming empty input, or of no transform.
func Empty() Result {
	return Result{status: StatusEmpty}
}

// Success wraps a transform's output.
func Success(output string) Result {
	return Result{status: StatusSuccess, output: output}
}

// Failure wraps a transform's error.
func Failure(err error) Result {
	if err == nil {
		return Empty()
	}
	return Result{status: StatusFailure, err: err}
}

// Status returns the tag of r. The zero Result is empty.
func (r Result) Status() Status {
	if r.status == "" {
		return StatusEmpty
	}
	return r.status
}

// Output returns the transform output; empty unless r is a success.
func (r Result) Output() string {
	return r.output
}

// Err returns the transform error; nil unless r is a failure.
func (r Result) Err() error {
	return r.err
}

// Message returns the error message shown to the user, if any.
func (r Result) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// IsFailure reports whether r holds an error.
func (r Result) IsFailure() bool {
	return r.Status() == StatusFailure
}

type resultJSON struct {
	Status Status `json:"status"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

// MarshalJSON implements json.Marshaler. The error is flattened to
// its message.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Status: r.Status(),
		Output: r.output,
		Error:  r.Message(),
		Kind:   codec.KindOf(r.err),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(b []byte) error {
	var v resultJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v.Status {
	case StatusSuccess:
		*r = Success(v.Output)
	case StatusFailure:
		err := errors.New(v.Error)
		if kind := codec.KindByName(v.Kind); kind != nil {
			err = &codec.Error{Kind: kind, Err: err}
		}
		*r = Failure(err)
	default:
		*r = Empty()
	}
	return nil
}
