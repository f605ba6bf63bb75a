package compress

import (
	"github.com/golang/snappy"
)

type snappyCodec struct{}

func (snappyCodec) Encode(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst, src), nil
}

func (snappyCodec) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst, src)
}

func (snappyCodec) CompressBound(n int) int {
	return snappy.MaxEncodedLen(n)
}

func init() {
	codecs[Snappy] = snappyCodec{}
}
