// Package mix is the boundary to the general-purpose mixing primitive.
// It converts a byte span or a canonical 32-bit integer into a
// well-dispersed hash code; the dispatch layer above decides what to feed
// it and treats it as a black box.
package mix

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Uint32 mixes a canonical 32-bit integer into a 32-bit code.
func Uint32(v uint32) uint32 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return uint32(xxh3.Hash(b[:]))
}

// Uint32Extended mixes a canonical 32-bit integer under a seed into a
// 64-bit code. Uint32 is the seed-0 special case truncated to 32 bits.
func Uint32Extended(v uint32, seed uint64) uint64 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return xxh3.HashSeed(b[:], seed)
}

// Bytes mixes a byte span into a 32-bit code. The span is borrowed for the
// duration of the call.
func Bytes(data []byte) uint32 {
	return uint32(xxh3.Hash(data))
}

// BytesExtended mixes a byte span under a seed into a 64-bit code.
func BytesExtended(data []byte, seed uint64) uint64 {
	return xxh3.HashSeed(data, seed)
}
