// Package datum models the typed scalar values fed to the datatype-specific
// hash functions. A datum is borrowed for the duration of one hash
// computation and never retained.
package datum

import (
	"bytes"
	"encoding/binary"

	"github.com/satmihir/relhash/internal/constants"
)

// Kind identifies one of the supported scalar kinds. The set is closed.
type Kind int8

const (
	// KindChar is a single-byte value; booleans are carried as char.
	KindChar Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindOID
	KindEnum
	KindFloat32
	KindFloat64
	KindName
	KindText
	KindBytes
	KindOIDVector
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindOID:
		return "oid"
	case KindEnum:
		return "enum"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindName:
		return "name"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindOIDVector:
		return "oidvector"
	}
	return "unknown"
}

// Datum is a tagged scalar value of one of the supported kinds.
type Datum interface {
	Kind() Kind
}

// Char is a single-byte value, sign-extended when canonicalized. The
// boolean type is carried as char: false is 0, true is 1.
type Char int8

// Int16 is a 16-bit signed integer.
type Int16 int16

// Int32 is a 32-bit signed integer.
type Int32 int32

// Int64 is a 64-bit signed integer.
type Int64 int64

// OID is an unsigned 32-bit object identifier.
type OID uint32

// Enum is the stable 32-bit identifier of an enum label.
type Enum uint32

// Float32 is a 32-bit IEEE float.
type Float32 float32

// Float64 is a 64-bit IEEE float.
type Float64 float64

// OIDVector is a vector of object identifiers.
type OIDVector []OID

func (Char) Kind() Kind      { return KindChar }
func (Int16) Kind() Kind     { return KindInt16 }
func (Int32) Kind() Kind     { return KindInt32 }
func (Int64) Kind() Kind     { return KindInt64 }
func (OID) Kind() Kind       { return KindOID }
func (Enum) Kind() Kind      { return KindEnum }
func (Float32) Kind() Kind   { return KindFloat32 }
func (Float64) Kind() Kind   { return KindFloat64 }
func (OIDVector) Kind() Kind { return KindOIDVector }

// CharFromBool maps a boolean onto its char representation.
func CharFromBool(b bool) Char {
	if b {
		return 1
	}
	return 0
}

// CanonicalBytes returns the little-endian concatenation of the vector's
// 32-bit elements, the form fed to the byte mixer.
func (v OIDVector) CanonicalBytes() []byte {
	b := make([]byte, 4*len(v))
	for i, oid := range v {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(oid))
	}
	return b
}

// Name is a fixed-width identifier. The logical value runs to the first
// NUL; trailing padding is not part of the value.
type Name [constants.NameDataLen]byte

func (*Name) Kind() Kind { return KindName }

// NewName builds a Name from s, truncating to the fixed width less one
// byte for the NUL terminator.
func NewName(s string) Name {
	var n Name
	copy(n[:constants.NameDataLen-1], s)
	return n
}

// LogicalBytes returns the identifier's bytes up to the first NUL.
func (n *Name) LogicalBytes() []byte {
	if i := bytes.IndexByte(n[:], 0); i >= 0 {
		return n[:i]
	}
	return n[:]
}

func (n *Name) String() string { return string(n.LogicalBytes()) }
