package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuanzicheng/dev-tools/internal/mock"
	"github.com/yuanzicheng/dev-tools/pkg/codec"
	"github.com/yuanzicheng/dev-tools/pkg/transform"
)

func newController(t *testing.T, name string) *Controller {
	e, err := transform.Lookup(name)
	require.NoError(t, err)
	return NewController(e)
}

func TestController_States(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameBase64)
	assert.Equal(t, StateIdle, c.State())

	c.SetText("hello")
	assert.Equal(t, StateReady, c.State())

	res, err := c.Encode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", res.Output())
	assert.Equal(t, StateSuccess, c.State())

	c.SetText("not-valid-base64!!")
	// Editing input keeps the last result.
	assert.Equal(t, "aGVsbG8=", c.Result().Output())

	res, err = c.Decode(ctx)
	require.NoError(t, err)
	assert.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), codec.ErrDecode)
	assert.Equal(t, "", c.Result().Output())
	assert.Equal(t, StateFailed, c.State())

	c.SetText("aGVsbG8=")
	res, err = c.Decode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Output())
	assert.NoError(t, c.Result().Err())

	c.ClearOutput()
	assert.Equal(t, StateReady, c.State())
	c.ClearInput()
	assert.Equal(t, StateIdle, c.State())
}

func TestController_EmptyInput(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameURL)

	res, err := c.Encode(ctx)
	require.NoError(t, err)
	assert.Equal(t, transform.StatusEmpty, res.Status())

	res, err = c.Decode(ctx)
	require.NoError(t, err)
	assert.Equal(t, transform.StatusEmpty, res.Status())
	assert.Equal(t, StateIdle, c.State())
}

func TestController_EmptyInputClearsPreviousResult(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameURL)

	c.SetText("a b")
	_, err := c.Encode(ctx)
	require.NoError(t, err)

	c.SetText("")
	res, err := c.Encode(ctx)
	require.NoError(t, err)
	assert.Equal(t, transform.StatusEmpty, res.Status())
	assert.Equal(t, "", c.Result().Output())
}

func TestController_ClearInputKeepsOutput(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameURL)

	c.SetText("a b&c=d")
	_, err := c.Encode(ctx)
	require.NoError(t, err)

	c.ClearInput()
	assert.Equal(t, "", c.Input().Text)
	assert.Equal(t, "a%20b%26c%3Dd", c.Result().Output())
	assert.Equal(t, StateSuccess, c.State())

	c.SetText("%zz")
	_, err = c.Decode(ctx)
	require.NoError(t, err)
	require.True(t, c.Result().IsFailure())

	c.ClearInput()
	assert.Equal(t, transform.StatusEmpty, c.Result().Status())
}

func TestController_SetKind(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameBase64)

	c.SetText("abc")
	_, err := c.Encode(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SetKind(KindFile))
	assert.Equal(t, KindFile, c.Input().Kind)
	assert.Equal(t, "", c.Input().Text)
	assert.Equal(t, transform.StatusEmpty, c.Result().Status())

	assert.ErrorIs(t, c.SetKind("image"), ErrInvalidKind)

	url := newController(t, transform.NameURL)
	assert.ErrorIs(t, url.SetKind(KindFile), ErrFileUnsupported)
	assert.ErrorIs(t, url.SetFile(codec.NewBytesFile("a", nil)), ErrActionUnavailable)
}

func TestController_EncodeFile(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameBase64)
	require.NoError(t, c.SetKind(KindFile))

	res, err := c.Encode(ctx)
	require.NoError(t, err)
	assert.Equal(t, transform.StatusEmpty, res.Status())

	require.NoError(t, c.SetFile(codec.NewBytesFile("abc.bin", []byte{0x41, 0x42, 0x43})))
	assert.Equal(t, StateReady, c.State())

	res, err = c.Encode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "QUJD", res.Output())

	_, err = c.Decode(ctx)
	assert.ErrorIs(t, err, ErrActionUnavailable)

	require.NoError(t, c.SetFile(&mock.File{Filename: "broken", OpenErr: mock.ErrIO}))
	res, err = c.Encode(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, res.Err(), codec.ErrFileRead)
	assert.Equal(t, StateFailed, c.State())
}

func TestController_StaleFileReadDiscarded(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameBase64)
	require.NoError(t, c.SetKind(KindFile))

	f := &mock.File{Filename: "slow.bin", Data: []byte("ABC"), Block: make(chan struct{})}
	require.NoError(t, c.SetFile(f))

	done := make(chan transform.Result)
	go func() {
		res, _ := c.Encode(ctx)
		done <- res
	}()

	// Wait for the read to start, then clear the input under it.
	require.Eventually(t, func() bool {
		return f.Opened() > 0
	}, time.Second, time.Millisecond)
	c.ClearInput()
	close(f.Block)

	res := <-done
	assert.Equal(t, transform.StatusEmpty, res.Status())
	assert.Equal(t, "", c.Result().Output())
	assert.Equal(t, StateIdle, c.State())
}

func TestController_JWT(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameJWT)

	_, err := c.Encode(ctx)
	assert.ErrorIs(t, err, ErrActionUnavailable)

	c.SetText("abc")
	res, err := c.Decode(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, res.Err(), codec.ErrMalformedToken)
	assert.Contains(t, res.Message(), "missing part #2")

	c.SetText(mock.UnsignedToken)
	res, err = c.Decode(ctx)
	require.NoError(t, err)
	assert.Contains(t, res.Output(), "Signature:\nNone")
}

func TestController_Copy(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameURL)

	_, err := c.Copy()
	assert.ErrorIs(t, err, ErrNothingToCopy)

	c.SetText("a b")
	_, err = c.Encode(ctx)
	require.NoError(t, err)

	out, err := c.Copy()
	require.NoError(t, err)
	assert.Equal(t, "a%20b", out)
}

func TestController_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	c := newController(t, transform.NameBase64)
	require.NoError(t, c.SetKind(KindFile))
	require.NoError(t, c.SetFile(&mock.File{Filename: "abc.bin", Data: []byte("ABC")}))
	_, err := c.Encode(ctx)
	require.NoError(t, err)

	s, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, KindFile, s.Kind)
	assert.Equal(t, "abc.bin", s.FileName)
	assert.Equal(t, []byte("ABC"), s.FileData)
	assert.Equal(t, "QUJD", s.Result.Output())

	s.Revision = 7
	restored := newController(t, transform.NameBase64)
	restored.Restore(s)
	assert.Equal(t, KindFile, restored.Input().Kind)
	assert.Equal(t, "abc.bin", restored.Input().File.Name())
	assert.Equal(t, StateSuccess, restored.State())
	assert.Equal(t, uint64(7), restored.Revision())

	// File snapshots restored into an engine without file support fall
	// back to text.
	url := newController(t, transform.NameURL)
	url.Restore(s)
	assert.Equal(t, KindText, url.Input().Kind)
	assert.Nil(t, url.Input().File)
}
