package mock

import (
	"bytes"
	"errors"
	"io"
	"sync/atomic"
)

// ErrIO is returned by File when configured to fail.
var ErrIO = errors.New("mock: i/o failure")

// File is a codec.File whose Open and Read can be made to fail or block.
type File struct {
	Filename string
	Data     []byte
	OpenErr  error         // returned from Open
	ReadErr  error         // returned from Read after Data is consumed
	Block    chan struct{} // when set, Read waits until it is closed
	opened   int32
}

// Name returns the file name.
func (f *File) Name() string {
	return f.Filename
}

// Open returns a reader over Data honouring ReadErr and Block.
func (f *File) Open() (io.ReadCloser, error) {
	atomic.AddInt32(&f.opened, 1)
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return &reader{f: f, r: bytes.NewReader(f.Data)}, nil
}

// Opened returns the number of times Open was called.
func (f *File) Opened() int {
	return int(atomic.LoadInt32(&f.opened))
}

type reader struct {
	f *File
	r *bytes.Reader
}

func (r *reader) Read(p []byte) (int, error) {
	if r.f.Block != nil {
		<-r.f.Block
	}
	n, err := r.r.Read(p)
	if err == io.EOF && r.f.ReadErr != nil {
		return n, r.f.ReadErr
	}
	return n, err
}

func (r *reader) Close() error {
	return nil
}
