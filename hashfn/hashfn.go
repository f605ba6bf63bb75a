// Package hashfn implements the datatype-specific hash functions backing
// the hash index access method and the hash-join executor.
//
// Every supported kind has a plain entry point returning a 32-bit code and
// an extended entry point taking a seed and returning a 64-bit code; the
// extended form is used when an index redistributes entries across a
// changed number of buckets. Both forms of a kind share one
// canonicalization path and differ only in the final mixing call, so they
// can never disagree about which values hash alike.
//
// Values of different integer widths that denote the same integer hash
// identically, as do float32 and float64 values denoting the same real
// number. This is what makes cross-type hash joins across these types
// possible; the folding and widening rules below are a numeric contract
// and must not be altered.
package hashfn

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/satmihir/relhash/datum"
	"github.com/satmihir/relhash/internal/mix"
)

// ErrUnsupportedKind is returned by the generic entry points for a datum
// outside the closed set of supported kinds.
var ErrUnsupportedKind = errors.New("unsupported datum kind")

// zeroFloatHash is the fixed plain hash of canonical floating-point zero.
// The extended form returns the seed itself instead.
const zeroFloatHash uint32 = 0

// Char hashes a single-byte value. Booleans are hashed through Char.
func Char(v datum.Char) uint32 {
	return mix.Uint32(uint32(int32(v)))
}

func CharExtended(v datum.Char, seed uint64) uint64 {
	return mix.Uint32Extended(uint32(int32(v)), seed)
}

// Bool hashes a boolean through its char representation.
func Bool(v bool) uint32 {
	return Char(datum.CharFromBool(v))
}

func BoolExtended(v bool, seed uint64) uint64 {
	return CharExtended(datum.CharFromBool(v), seed)
}

// Int16 hashes a 16-bit integer, sign-extended to the canonical 32-bit
// form shared with the wider integer types.
func Int16(v datum.Int16) uint32 {
	return mix.Uint32(uint32(int32(v)))
}

func Int16Extended(v datum.Int16, seed uint64) uint64 {
	return mix.Uint32Extended(uint32(int32(v)), seed)
}

// Int32 hashes a 32-bit integer.
func Int32(v datum.Int32) uint32 {
	return mix.Uint32(uint32(v))
}

func Int32Extended(v datum.Int32, seed uint64) uint64 {
	return mix.Uint32Extended(uint32(v), seed)
}

// Int64 hashes a 64-bit integer, folded so a value representable in 32
// bits hashes identically to its narrower-type hash.
func Int64(v datum.Int64) uint32 {
	return mix.Uint32(foldInt64(int64(v)))
}

func Int64Extended(v datum.Int64, seed uint64) uint64 {
	return mix.Uint32Extended(foldInt64(int64(v)), seed)
}

// foldInt64 folds a 64-bit integer to 32 bits. Since all the integer types
// are signed, xor the high half when the sign is positive, or the
// complement of the high half when the sign is negative: a value that fits
// in 32 bits has a high half of all zeros or all ones, which reduces the
// fold to the low half unchanged, while a wider value still disperses
// across both halves.
func foldInt64(val int64) uint32 {
	lohalf := uint32(val)
	hihalf := uint32(uint64(val) >> 32)

	if val >= 0 {
		lohalf ^= hihalf
	} else {
		lohalf ^= ^hihalf
	}
	return lohalf
}

// OID hashes an object identifier. No closure with the signed integer
// kinds is implied.
func OID(v datum.OID) uint32 {
	return mix.Uint32(uint32(v))
}

func OIDExtended(v datum.OID, seed uint64) uint64 {
	return mix.Uint32Extended(uint32(v), seed)
}

// Enum hashes an enum label by its stable identifier.
func Enum(v datum.Enum) uint32 {
	return mix.Uint32(uint32(v))
}

func EnumExtended(v datum.Enum, seed uint64) uint64 {
	return mix.Uint32Extended(uint32(v), seed)
}

// Float32 hashes a 32-bit float. Minus zero and zero have different bit
// patterns but compare as equal, so both short-circuit to the fixed zero
// hash. Any other value is widened to float64 and hashed as such, so
// float32 and float64 values denoting the same number hash identically.
// Widening is always lossless; narrowing a float64 instead could overflow.
func Float32(v datum.Float32) uint32 {
	if v == 0 {
		return zeroFloatHash
	}
	b := floatBytes(float64(v))
	return mix.Bytes(b[:])
}

func Float32Extended(v datum.Float32, seed uint64) uint64 {
	if v == 0 {
		return seed
	}
	b := floatBytes(float64(v))
	return mix.BytesExtended(b[:], seed)
}

// Float64 hashes a 64-bit float, with the same zero short-circuit as
// Float32.
func Float64(v datum.Float64) uint32 {
	if v == 0 {
		return zeroFloatHash
	}
	b := floatBytes(float64(v))
	return mix.Bytes(b[:])
}

func Float64Extended(v datum.Float64, seed uint64) uint64 {
	if v == 0 {
		return seed
	}
	b := floatBytes(float64(v))
	return mix.BytesExtended(b[:], seed)
}

// floatBytes is the canonical byte feed of a nonzero float: the
// little-endian IEEE-754 bit pattern of its 64-bit form.
func floatBytes(v float64) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return b
}

// Name hashes a fixed-width identifier by its logical bytes; trailing
// padding never contributes.
func Name(n *datum.Name) uint32 {
	return mix.Bytes(n.LogicalBytes())
}

func NameExtended(n *datum.Name, seed uint64) uint64 {
	return mix.BytesExtended(n.LogicalBytes(), seed)
}

// Text hashes a text value's logical bytes. Any temporary materialized
// while decoding is released before returning.
//
// Note: this is currently identical in behavior to Varlena, but keep it a
// separate entry point in case text hashing ever becomes locale-aware.
func Text(v *datum.Varlena) (uint32, error) {
	return varlenaHash(v)
}

func TextExtended(v *datum.Varlena, seed uint64) (uint64, error) {
	return varlenaHashExtended(v, seed)
}

// Varlena hashes any variable-length value in which distinct bit patterns
// never compare as equal.
func Varlena(v *datum.Varlena) (uint32, error) {
	return varlenaHash(v)
}

func VarlenaExtended(v *datum.Varlena, seed uint64) (uint64, error) {
	return varlenaHashExtended(v, seed)
}

func varlenaHash(v *datum.Varlena) (uint32, error) {
	buf, err := v.Open()
	if err != nil {
		return 0, err
	}
	defer buf.Close()

	return mix.Bytes(buf.Bytes()), nil
}

func varlenaHashExtended(v *datum.Varlena, seed uint64) (uint64, error) {
	buf, err := v.Open()
	if err != nil {
		return 0, err
	}
	defer buf.Close()

	return mix.BytesExtended(buf.Bytes(), seed), nil
}

// OIDVector hashes the vector's concatenated 32-bit elements. The
// identifiers are already unsigned 32-bit values, so no per-element
// canonicalization applies.
func OIDVector(v datum.OIDVector) uint32 {
	return mix.Bytes(v.CanonicalBytes())
}

func OIDVectorExtended(v datum.OIDVector, seed uint64) uint64 {
	return mix.BytesExtended(v.CanonicalBytes(), seed)
}

// Hash computes the plain 32-bit hash of any supported datum.
func Hash(d datum.Datum) (uint32, error) {
	switch v := d.(type) {
	case datum.Char:
		return Char(v), nil
	case datum.Int16:
		return Int16(v), nil
	case datum.Int32:
		return Int32(v), nil
	case datum.Int64:
		return Int64(v), nil
	case datum.OID:
		return OID(v), nil
	case datum.Enum:
		return Enum(v), nil
	case datum.Float32:
		return Float32(v), nil
	case datum.Float64:
		return Float64(v), nil
	case *datum.Name:
		return Name(v), nil
	case *datum.Varlena:
		if v.Kind() == datum.KindText {
			return Text(v)
		}
		return Varlena(v)
	case datum.OIDVector:
		return OIDVector(v), nil
	}
	return 0, ErrUnsupportedKind
}

// HashExtended computes the seeded 64-bit hash of any supported datum.
func HashExtended(d datum.Datum, seed uint64) (uint64, error) {
	switch v := d.(type) {
	case datum.Char:
		return CharExtended(v, seed), nil
	case datum.Int16:
		return Int16Extended(v, seed), nil
	case datum.Int32:
		return Int32Extended(v, seed), nil
	case datum.Int64:
		return Int64Extended(v, seed), nil
	case datum.OID:
		return OIDExtended(v, seed), nil
	case datum.Enum:
		return EnumExtended(v, seed), nil
	case datum.Float32:
		return Float32Extended(v, seed), nil
	case datum.Float64:
		return Float64Extended(v, seed), nil
	case *datum.Name:
		return NameExtended(v, seed), nil
	case *datum.Varlena:
		if v.Kind() == datum.KindText {
			return TextExtended(v, seed)
		}
		return VarlenaExtended(v, seed)
	case datum.OIDVector:
		return OIDVectorExtended(v, seed), nil
	}
	return 0, ErrUnsupportedKind
}
