package view

import (
	"context"
	"errors"
	"sync"

	"github.com/yuanzicheng/dev-tools/pkg/codec"
	"github.com/yuanzicheng/dev-tools/pkg/transform"
)

// Controller errors
var (
	ErrActionUnavailable = errors.New("action not available for this input")
	ErrFileUnsupported   = errors.New("file input not supported")
	ErrNothingToCopy     = errors.New("nothing to copy")
	ErrInvalidKind       = errors.New("invalid input kind")
)

// Kind is the kind of input a view collects.
type Kind string

// Input kinds
const (
	KindText Kind = "text"
	KindFile Kind = "file"
)

// State is the derived state of a view.
type State string

// View states
const (
	StateIdle    State = "idle"
	StateReady   State = "ready"
	StateSuccess State = "success"
	StateFailed  State = "failed"
)

// Input is the user's current input.
type Input struct {
	Kind Kind
	Text string
	File codec.File
}

// Controller holds the state of one utility page and runs its engine.
// It is safe for concurrent use.
type Controller struct {
	engine transform.Engine

	mu       sync.Mutex
	input    Input
	result   transform.Result
	gen      uint64 // bumped whenever the input file changes
	revision uint64 // revision of the snapshot this was restored from
}

// NewController returns an idle controller in text mode.
func NewController(engine transform.Engine) *Controller {
	return &Controller{
		engine: engine,
		input:  Input{Kind: KindText},
		result: transform.Empty(),
	}
}

// Engine returns the engine the controller runs.
func (c *Controller) Engine() transform.Engine {
	return c.engine
}

// Input returns the current input.
func (c *Controller) Input() Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Result returns the last transform result.
func (c *Controller) Result() transform.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// State derives the view state from input and result.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) state() State {
	switch c.result.Status() {
	case transform.StatusSuccess:
		return StateSuccess
	case transform.StatusFailure:
		return StateFailed
	}
	if c.hasInput() {
		return StateReady
	}
	return StateIdle
}

func (c *Controller) hasInput() bool {
	if c.input.Kind == KindFile {
		return c.input.File != nil
	}
	return c.input.Text != ""
}

// SetKind switches between text and file input. Switching clears both
// input and output.
func (c *Controller) SetKind(kind Kind) error {
	switch kind {
	case KindText:
	case KindFile:
		if !c.engine.Capabilities().File {
			return ErrFileUnsupported
		}
	default:
		return ErrInvalidKind
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearInput()
	c.input.Kind = kind
	c.result = transform.Empty()
	return nil
}

// SetText replaces the text input. The last result is kept.
func (c *Controller) SetText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input.Text = s
}

// SetFile replaces the file input. The last result is kept.
func (c *Controller) SetFile(f codec.File) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.input.Kind != KindFile {
		return ErrActionUnavailable
	}
	c.input.File = f
	c.gen++
	return nil
}

// Encode runs the engine's encode on the current input. Encoding a file
// releases the lock while the file is read; if the input changes in the
// meantime the result is discarded and the current one returned.
func (c *Controller) Encode(ctx context.Context) (transform.Result, error) {
	return c.run(ctx, transform.OpEncode)
}

// Decode runs the engine's decode on the current text input.
func (c *Controller) Decode(ctx context.Context) (transform.Result, error) {
	return c.run(ctx, transform.OpDecode)
}

// Run dispatches to Encode or Decode.
func (c *Controller) Run(ctx context.Context, op transform.Op) (transform.Result, error) {
	return c.run(ctx, op)
}

func (c *Controller) run(ctx context.Context, op transform.Op) (transform.Result, error) {
	c.mu.Lock()
	file := c.input.Kind == KindFile
	if !c.engine.Capabilities().Supports(op, file) {
		c.mu.Unlock()
		return transform.Result{}, ErrActionUnavailable
	}

	if !file {
		defer c.mu.Unlock()
		c.result = transform.Run(ctx, c.engine, op, transform.Input{Text: c.input.Text})
		return c.result, nil
	}

	// The file being read is held apart from the live input.
	f, gen := c.input.File, c.gen
	c.mu.Unlock()

	res := transform.Run(ctx, c.engine, op, transform.Input{File: f})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return c.result, nil
	}
	c.result = res
	return res, nil
}

// ClearInput clears the input and any error. A successful output stays.
func (c *Controller) ClearInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearInput()
	if c.result.IsFailure() {
		c.result = transform.Empty()
	}
}

func (c *Controller) clearInput() {
	c.input.Text = ""
	if c.input.File != nil {
		c.input.File = nil
		c.gen++
	}
}

// ClearOutput clears output and error.
func (c *Controller) ClearOutput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = transform.Empty()
}

// Copy returns the output for the clipboard.
func (c *Controller) Copy() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result.Output() == "" {
		return "", ErrNothingToCopy
	}
	return c.result.Output(), nil
}
