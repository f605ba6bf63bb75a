package datum

import (
	"errors"

	"github.com/satmihir/relhash/compress"
	"github.com/satmihir/relhash/internal/utils"
)

// StorageForm is how a variable-length value's bytes are held.
type StorageForm int8

const (
	// FormInline holds the logical bytes directly.
	FormInline StorageForm = iota
	// FormCompressed holds a block-compressed copy of the logical bytes.
	FormCompressed
	// FormExternal holds a reference into a ValueStore; the stored bytes
	// may additionally be compressed.
	FormExternal
)

// ValueStore fetches out-of-line value bytes by reference handle. The
// returned slice is borrowed from the store and must not be modified.
type ValueStore interface {
	Fetch(ref uint64) ([]byte, error)
}

// ErrNoValueStore is returned when opening an out-of-line value that was
// built without a backing store.
var ErrNoValueStore = errors.New("out-of-line value has no store")

// Varlena is a variable-length text or binary value. Consumers that need
// the logical bytes acquire them through Open and release them through the
// returned ValueBuf, regardless of storage form.
type Varlena struct {
	kind  Kind
	form  StorageForm
	comp  compress.Compression
	data  []byte // logical bytes (inline) or the compressed block
	ref   uint64
	store ValueStore
	size  int // logical byte length
	alloc Allocator
}

// ValueOptions configures value construction.
type ValueOptions struct {
	// Alloc supplies the temporary buffers materialized while decoding.
	// Defaults to DefaultAllocator.
	Alloc Allocator
}

func allocFromOpts(opts []ValueOptions) Allocator {
	if len(opts) > 0 && opts[0].Alloc != nil {
		return opts[0].Alloc
	}
	return DefaultAllocator
}

// NewText builds an inline text value.
func NewText(s string) *Varlena { return NewInline(KindText, []byte(s)) }

// NewBytes builds an inline binary value borrowing b.
func NewBytes(b []byte) *Varlena { return NewInline(KindBytes, b) }

// NewInline builds a value that holds its logical bytes directly.
func NewInline(kind Kind, logical []byte) *Varlena {
	utils.MustBeTrue(kind == KindText || kind == KindBytes, "inline datum must be text or bytes")
	return &Varlena{
		kind:  kind,
		form:  FormInline,
		comp:  compress.None,
		data:  logical,
		size:  len(logical),
		alloc: DefaultAllocator,
	}
}

// NewCompressed builds a value holding a block-compressed copy of logical.
// A block the codec cannot shrink is kept inline instead.
func NewCompressed(kind Kind, logical []byte, comp compress.Compression, opts ...ValueOptions) (*Varlena, error) {
	utils.MustBeTrue(kind == KindText || kind == KindBytes, "compressed datum must be text or bytes")
	if comp == compress.None {
		return NewInline(kind, logical), nil
	}

	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	block, err := codec.Encode(nil, logical)
	if errors.Is(err, compress.ErrIncompressible) {
		return NewInline(kind, logical), nil
	}
	if err != nil {
		return nil, err
	}

	return &Varlena{
		kind:  kind,
		form:  FormCompressed,
		comp:  comp,
		data:  block,
		size:  len(logical),
		alloc: allocFromOpts(opts),
	}, nil
}

// NewExternal builds a value referencing bytes held by st. size is the
// logical (decoded) byte length; comp describes how the stored bytes are
// encoded.
func NewExternal(kind Kind, st ValueStore, ref uint64, size int, comp compress.Compression, opts ...ValueOptions) *Varlena {
	utils.MustBeTrue(kind == KindText || kind == KindBytes, "external datum must be text or bytes")
	return &Varlena{
		kind:  kind,
		form:  FormExternal,
		comp:  comp,
		ref:   ref,
		store: st,
		size:  size,
		alloc: allocFromOpts(opts),
	}
}

func (v *Varlena) Kind() Kind        { return v.kind }
func (v *Varlena) Form() StorageForm { return v.form }

// LogicalSize returns the decoded byte length of the value.
func (v *Varlena) LogicalSize() int { return v.size }

// Open returns the value's logical bytes. The caller must call Close on
// the result on every path; a fetch or decode failure leaves nothing to
// release.
func (v *Varlena) Open() (ValueBuf, error) {
	switch v.form {
	case FormCompressed:
		return v.materialize(v.data)
	case FormExternal:
		if v.store == nil {
			return ValueBuf{}, ErrNoValueStore
		}
		stored, err := v.store.Fetch(v.ref)
		if err != nil {
			return ValueBuf{}, err
		}
		return v.materialize(stored)
	default:
		// Inline bytes are borrowed from the value itself.
		return ValueBuf{data: v.data}, nil
	}
}

// materialize decodes block into a buffer owned by the current call.
func (v *Varlena) materialize(block []byte) (ValueBuf, error) {
	codec, err := compress.GetCodec(v.comp)
	if err != nil {
		return ValueBuf{}, err
	}

	dst := v.alloc.Allocate(v.size)
	out, err := codec.Decode(dst, block)
	if err != nil {
		v.alloc.Free(dst)
		return ValueBuf{}, err
	}
	utils.MustBeTrue(len(out) == v.size, "decoded length does not match logical size")

	return ValueBuf{data: out, owned: true, alloc: v.alloc}, nil
}

// ValueBuf holds a value's logical bytes for the duration of one
// computation.
type ValueBuf struct {
	data  []byte
	owned bool
	alloc Allocator
}

// Bytes borrows the logical bytes. The slice is invalid after Close.
func (b *ValueBuf) Bytes() []byte { return b.data }

// Close releases a materialized temporary exactly once. Bytes borrowed
// from the value or its store are never freed, and closing twice is a
// no-op.
func (b *ValueBuf) Close() {
	if b.owned {
		b.alloc.Free(b.data)
		b.owned = false
	}
	b.data = nil
}
