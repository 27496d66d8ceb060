package view

import (
	"context"

	"github.com/yuanzicheng/dev-tools/pkg/codec"
	"github.com/yuanzicheng/dev-tools/pkg/transform"
)

// Snapshot is the serialisable state of a Controller.
type Snapshot struct {
	Kind     Kind             `json:"kind"`
	Text     string           `json:"text,omitempty"`
	FileName string           `json:"fileName,omitempty"`
	FileData []byte           `json:"fileData,omitempty"`
	Result   transform.Result `json:"result"`
	Revision uint64           `json:"revision"`
}

// Snapshot captures the controller state. A file input is read into
// memory.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Kind:     c.input.Kind,
		Text:     c.input.Text,
		Result:   c.result,
		Revision: c.revision,
	}
	if f := c.input.File; f != nil {
		s.FileName = f.Name()
		if bf, ok := f.(*codec.BytesFile); ok {
			s.FileData = bf.Data
		} else {
			b, err := codec.ReadAll(ctx, f)
			if err != nil {
				return Snapshot{}, codec.FileRead(err)
			}
			s.FileData = b
			c.input.File = codec.NewBytesFile(f.Name(), b)
		}
	}
	return s, nil
}

// Restore replaces the controller state with s.
func (c *Controller) Restore(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kind := s.Kind
	if kind != KindFile || !c.engine.Capabilities().File {
		kind = KindText
	}
	c.input = Input{Kind: kind, Text: s.Text}
	if kind == KindFile && (s.FileName != "" || s.FileData != nil) {
		c.input.File = codec.NewBytesFile(s.FileName, s.FileData)
	}
	c.result = s.Result
	c.revision = s.Revision
	c.gen++
}

// Revision returns the revision of the snapshot the controller was
// last restored from.
func (c *Controller) Revision() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision
}
