package mix

import (
	"testing"
)

func TestUint32Determinism(t *testing.T) {
	tests := []struct {
		name string
		val  uint32
	}{
		{
			name: "zero",
			val:  0,
		},
		{
			name: "small value",
			val:  5,
		},
		{
			name: "max value",
			val:  0xFFFFFFFF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := Uint32(tt.val)
			h2 := Uint32(tt.val)
			if h1 != h2 {
				t.Errorf("not deterministic: %d vs %d", h1, h2)
			}
		})
	}
}

func TestUint32PlainIsSeedZero(t *testing.T) {
	for _, v := range []uint32{0, 1, 5, 42, 0x80000000, 0xFFFFFFFF} {
		plain := Uint32(v)
		seeded := Uint32Extended(v, 0)
		if plain != uint32(seeded) {
			t.Errorf("Uint32(%d)=%d does not match low half of Uint32Extended(%d, 0)=%d",
				v, plain, v, seeded)
		}
	}
}

func TestBytesPlainIsSeedZero(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "empty",
			data: []byte{},
		},
		{
			name: "short",
			data: []byte("abc"),
		},
		{
			name: "longer",
			data: []byte("a considerably longer input span for the block mixer"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := Bytes(tt.data)
			seeded := BytesExtended(tt.data, 0)
			if plain != uint32(seeded) {
				t.Errorf("Bytes does not match low half of BytesExtended at seed 0: %d vs %d",
					plain, seeded)
			}
		})
	}
}

func TestDifferentInputsDisperse(t *testing.T) {
	if Uint32(1) == Uint32(2) {
		t.Error("adjacent integers collided")
	}
	if Bytes([]byte("hello")) == Bytes([]byte("hallo")) {
		t.Error("single-byte difference collided")
	}
	if BytesExtended([]byte("hello"), 1) == BytesExtended([]byte("hello"), 2) {
		t.Error("different seeds produced the same code")
	}
}
