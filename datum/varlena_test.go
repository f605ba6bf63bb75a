package datum

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satmihir/relhash/compress"
)

type stubStore map[uint64][]byte

func (s stubStore) Fetch(ref uint64) ([]byte, error) {
	b, ok := s[ref]
	if !ok {
		return nil, errors.New("no such reference")
	}
	return b, nil
}

func TestOpenInlineBorrows(t *testing.T) {
	logical := []byte("inline bytes")

	v := NewInline(KindText, logical)
	buf, err := v.Open()
	require.NoError(t, err)

	// Inline bytes are borrowed, not copied.
	assert.Same(t, &logical[0], &buf.Bytes()[0])

	buf.Close()
	assert.Nil(t, buf.Bytes())
}

func TestOpenCompressed(t *testing.T) {
	logical := bytes.Repeat([]byte("compressible content "), 48)

	tests := []struct {
		name string
		comp compress.Compression
	}{
		{
			name: "snappy",
			comp: compress.Snappy,
		},
		{
			name: "lz4",
			comp: compress.Lz4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := NewCheckedAllocator(NewGoAllocator())

			v, err := NewCompressed(KindBytes, logical, tt.comp, ValueOptions{Alloc: alloc})
			require.NoError(t, err)
			require.Equal(t, FormCompressed, v.Form())
			assert.Equal(t, len(logical), v.LogicalSize())

			buf, err := v.Open()
			require.NoError(t, err)
			assert.Equal(t, logical, buf.Bytes())
			alloc.AssertSize(t, len(logical))

			buf.Close()
			alloc.AssertSize(t, 0)
		})
	}
}

func TestNewCompressedFallsBackInline(t *testing.T) {
	// Blocks lz4 cannot shrink, whether tiny or merely matchless, must
	// stay inline rather than fail.
	tests := []struct {
		name    string
		logical []byte
	}{
		{
			name:    "tiny block",
			logical: []byte("abc"),
		},
		{
			name:    "matchless block",
			logical: []byte("abcdefghijklmnop"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewCompressed(KindText, tt.logical, compress.Lz4)
			require.NoError(t, err)
			assert.Equal(t, FormInline, v.Form())

			buf, err := v.Open()
			require.NoError(t, err)
			defer buf.Close()
			assert.Equal(t, tt.logical, buf.Bytes())
		})
	}
}

func TestNewCompressedNoneIsInline(t *testing.T) {
	v, err := NewCompressed(KindText, []byte("plain"), compress.None)
	require.NoError(t, err)
	assert.Equal(t, FormInline, v.Form())
}

func TestOpenExternal(t *testing.T) {
	logical := bytes.Repeat([]byte("externalized value "), 48)

	codec, err := compress.GetCodec(compress.Snappy)
	require.NoError(t, err)
	block, err := codec.Encode(nil, logical)
	require.NoError(t, err)

	st := stubStore{
		1: logical, // stored uncompressed
		2: block,   // stored snappy-compressed
	}

	tests := []struct {
		name string
		ref  uint64
		comp compress.Compression
	}{
		{
			name: "uncompressed",
			ref:  1,
			comp: compress.None,
		},
		{
			name: "compressed",
			ref:  2,
			comp: compress.Snappy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := NewCheckedAllocator(NewGoAllocator())
			v := NewExternal(KindBytes, st, tt.ref, len(logical), tt.comp, ValueOptions{Alloc: alloc})
			require.Equal(t, FormExternal, v.Form())

			buf, err := v.Open()
			require.NoError(t, err)
			assert.Equal(t, logical, buf.Bytes())

			// The external form always materializes an owned copy so the
			// store's memory never escapes through the buffer.
			alloc.AssertSize(t, len(logical))
			buf.Close()
			alloc.AssertSize(t, 0)
		})
	}
}

func TestOpenExternalErrors(t *testing.T) {
	alloc := NewCheckedAllocator(NewGoAllocator())

	t.Run("nil store", func(t *testing.T) {
		v := NewExternal(KindText, nil, 1, 10, compress.None, ValueOptions{Alloc: alloc})
		_, err := v.Open()
		assert.ErrorIs(t, err, ErrNoValueStore)
		alloc.AssertSize(t, 0)
	})

	t.Run("fetch failure propagates unchanged", func(t *testing.T) {
		v := NewExternal(KindText, stubStore{}, 7, 10, compress.None, ValueOptions{Alloc: alloc})
		_, err := v.Open()
		assert.EqualError(t, err, "no such reference")
		alloc.AssertSize(t, 0)
	})

	t.Run("decode failure frees the temporary", func(t *testing.T) {
		v := NewExternal(KindText, stubStore{3: {0xFF, 0xFE}}, 3, 64, compress.Snappy,
			ValueOptions{Alloc: alloc})
		_, err := v.Open()
		assert.Error(t, err)
		alloc.AssertSize(t, 0)
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	alloc := NewCheckedAllocator(NewGoAllocator())
	logical := bytes.Repeat([]byte("close me once "), 32)

	v, err := NewCompressed(KindBytes, logical, compress.Snappy, ValueOptions{Alloc: alloc})
	require.NoError(t, err)

	buf, err := v.Open()
	require.NoError(t, err)

	buf.Close()
	buf.Close()
	buf.Close()
	alloc.AssertSize(t, 0)
}

func TestOpenIsRepeatable(t *testing.T) {
	// A value can be opened any number of times; each open produces an
	// independent buffer.
	logical := bytes.Repeat([]byte("again "), 64)
	v, err := NewCompressed(KindText, logical, compress.Lz4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		buf, err := v.Open()
		require.NoError(t, err)
		assert.Equal(t, logical, buf.Bytes())
		buf.Close()
	}
}
