package base64

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuanzicheng/dev-tools/internal/mock"
	"github.com/yuanzicheng/dev-tools/pkg/codec"
)

func TestEncodeText(t *testing.T) {
	tt := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Empty", input: "", want: ""},
		{name: "ASCII", input: "hello", want: "aGVsbG8="},
		{name: "Multi-byte", input: "héllo🌍", want: "aMOpbGxv8J+MjQ=="},
		{name: "Chinese", input: "编码", want: "57yW56CB"},
	}

	for _, test := range tt {
		t.Run(test.name, func(t *testing.T) {
			enc, err := EncodeText(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, enc)
		})
	}
}

func TestEncodeText_InvalidUTF8(t *testing.T) {
	_, err := EncodeText("\xff\xfe")
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrEncode)
}

func TestDecodeText(t *testing.T) {
	tt := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{name: "Empty", input: "", want: "", valid: true},
		{name: "Padded", input: "aGVsbG8=", want: "hello", valid: true},
		{name: "Unpadded", input: "aGVsbG8", want: "hello", valid: true},
		{name: "Whitespace", input: "aGVs\nbG8=", want: "hello", valid: true},
		{name: "Invalid characters", input: "not-valid-base64!!", valid: false},
		{name: "Invalid UTF-8", input: "/w==", valid: false},
	}

	for _, test := range tt {
		t.Run(test.name, func(t *testing.T) {
			dec, err := DecodeText(test.input)
			if test.valid {
				require.NoError(t, err)
				assert.Equal(t, test.want, dec)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, codec.ErrDecode)
				assert.Contains(t, err.Error(), "Base64 decoding failed")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "héllo🌍", "a b&c=d", "\x00\x01", "日本語のテキスト"} {
		enc, err := EncodeText(s)
		require.NoError(t, err)

		dec, err := DecodeText(enc)
		require.NoError(t, err)
		assert.Equal(t, s, dec)
	}
}

func TestEncodeFile(t *testing.T) {
	ctx := context.Background()

	enc, err := EncodeFile(ctx, codec.NewBytesFile("abc.bin", []byte{0x41, 0x42, 0x43}))
	require.NoError(t, err)
	assert.Equal(t, "QUJD", enc)

	enc, err = EncodeFile(ctx, codec.NewBytesFile("empty.bin", nil))
	require.NoError(t, err)
	assert.Equal(t, "", enc)

	enc, err = EncodeFile(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "", enc)
}

func TestEncodeFile_ReadError(t *testing.T) {
	ctx := context.Background()

	_, err := EncodeFile(ctx, &mock.File{Filename: "broken.bin", OpenErr: mock.ErrIO})
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrFileRead)

	_, err = EncodeFile(ctx, &mock.File{Filename: "broken.bin", Data: []byte("abc"), ReadErr: mock.ErrIO})
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrFileRead)
	assert.Contains(t, err.Error(), "File reading failed")
}

func TestEncodeFile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &mock.File{Filename: "slow.bin", Data: []byte("abc"), Block: make(chan struct{})}
	defer close(f.Block)

	_, err := EncodeFile(ctx, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrFileRead)
}
