package datum

import "sync/atomic"

// Allocator grants and reclaims the temporary buffers used to materialize
// decoded value bytes.
type Allocator interface {
	Allocate(size int) []byte
	Free(b []byte)
}

// GoAllocator allocates through the Go runtime; Free is a no-op and the
// garbage collector reclaims the buffer.
type GoAllocator struct{}

func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

func (*GoAllocator) Allocate(size int) []byte { return make([]byte, size) }

func (*GoAllocator) Free(b []byte) {}

// DefaultAllocator is used by values constructed without an explicit
// allocator.
var DefaultAllocator Allocator = NewGoAllocator()

// CheckedAllocator wraps another allocator and tracks outstanding bytes.
// Tests use it to prove that a hash call leaves no temporary behind.
type CheckedAllocator struct {
	mem Allocator
	sz  int64
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem}
}

// CurrentAlloc returns the bytes allocated and not yet freed.
func (a *CheckedAllocator) CurrentAlloc() int { return int(atomic.LoadInt64(&a.sz)) }

func (a *CheckedAllocator) Allocate(size int) []byte {
	atomic.AddInt64(&a.sz, int64(size))
	return a.mem.Allocate(size)
}

func (a *CheckedAllocator) Free(b []byte) {
	atomic.AddInt64(&a.sz, int64(len(b))*-1)
	a.mem.Free(b)
}

// TestingT is the subset of *testing.T needed by AssertSize.
type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize fails the test when the outstanding allocation differs from sz.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	t.Helper()
	if got := a.CurrentAlloc(); got != sz {
		t.Errorf("invalid outstanding allocation exp=%d, got=%d", sz, got)
	}
}
