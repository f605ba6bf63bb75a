package compress

import (
	"errors"

	"github.com/pierrec/lz4/v4"
)

// ErrIncompressible is returned by Encode when a block does not shrink
// under the codec; callers should store such blocks uncompressed.
var ErrIncompressible = errors.New("block is not compressible")

type lz4Codec struct{}

func (lz4Codec) Encode(dst, src []byte) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, lz4.CompressBlockBound(len(src)))
	}
	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst[:cap(dst)])
	if err != nil {
		return nil, err
	}
	// lz4 signals an incompressible block either with a zero length or by
	// emitting a literal-only block no smaller than the input.
	if n == 0 || n >= len(src) {
		return nil, ErrIncompressible
	}
	return dst[:n], nil
}

func (lz4Codec) Decode(dst, src []byte) ([]byte, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

func (lz4Codec) CompressBound(n int) int {
	return lz4.CompressBlockBound(n)
}

func init() {
	codecs[Lz4] = lz4Codec{}
}
