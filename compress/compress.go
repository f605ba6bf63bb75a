// Package compress provides the block-compression codecs used for
// compressed and out-of-line value storage. Codecs operate on whole blocks;
// there is no streaming surface because values are hashed as single spans.
package compress

import "errors"

// Compression identifies a block-compression codec.
type Compression int8

const (
	// None stores the logical bytes unmodified.
	None Compression = iota
	// Snappy is block compression via github.com/golang/snappy.
	Snappy
	// Lz4 is block compression via github.com/pierrec/lz4.
	Lz4
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Snappy:
		return "snappy"
	case Lz4:
		return "lz4"
	}
	return "unknown"
}

var ErrUnknownCompression = errors.New("unknown compression codec")

// Codec compresses and decompresses single blocks.
type Codec interface {
	// Encode compresses src into dst and returns the written prefix of dst.
	// dst must be nil or at least CompressBound(len(src)) bytes.
	Encode(dst, src []byte) ([]byte, error)
	// Decode decompresses src into dst and returns the written prefix of
	// dst. dst must be nil or large enough for the uncompressed block; dst
	// and src must not overlap.
	Decode(dst, src []byte) ([]byte, error)
	// CompressBound returns the maximum compressed size of a block of the
	// given length.
	CompressBound(int) int
}

var codecs = map[Compression]Codec{}

type nocodec struct{}

func (nocodec) Encode(dst, src []byte) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, len(src))
	}
	n := copy(dst, src)
	return dst[:n], nil
}

func (nocodec) Decode(dst, src []byte) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, len(src))
	}
	n := copy(dst, src)
	return dst[:n], nil
}

func (nocodec) CompressBound(n int) int { return n }

func init() {
	codecs[None] = nocodec{}
}

// GetCodec returns the codec registered for the given compression.
func GetCodec(c Compression) (Codec, error) {
	codec, ok := codecs[c]
	if !ok {
		return nil, ErrUnknownCompression
	}
	return codec, nil
}
