package codec

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
)

// File is a single binary blob picked by the user.
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// BytesFile is an in-memory File.
type BytesFile struct {
	Filename string
	Data     []byte
}

// NewBytesFile returns a File backed by data.
func NewBytesFile(name string, data []byte) *BytesFile {
	return &BytesFile{Filename: name, Data: data}
}

// Name returns the file name.
func (f *BytesFile) Name() string {
	return f.Filename
}

// Open returns a reader over the file contents.
func (f *BytesFile) Open() (io.ReadCloser, error) {
	return ioutil.NopCloser(bytes.NewReader(f.Data)), nil
}

// ReadAll opens f and reads it to the end. The read is abandoned when
// ctx is done.
func ReadAll(ctx context.Context, f File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	type result struct {
		b   []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := ioutil.ReadAll(rc)
		done <- result{b, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.b, res.err
	}
}
