package wide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplatU16(t *testing.T) {
	tests := []struct {
		name  string
		value uint16
	}{
		{"zero", 0},
		{"one", 1},
		{"max", 0xffff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, v := range SplatU16(tt.value) {
				assert.Equalf(t, tt.value, v, "lane %d", i)
			}
		})
	}
}

func TestU16x8_ops(t *testing.T) {
	a := U16x8{0, 1, 2, 3, 4, 5, 6, 7}
	b := SplatU16(0b10)

	assert.Equal(t, U16x8{2, 3, 2, 3, 6, 7, 6, 7}, a.Or(b))
	assert.Equal(t, U16x8{2, 3, 4, 5, 6, 7, 8, 9}, a.Add(b))
	assert.Equal(t, U16x8{0, 2, 4, 6, 8, 10, 12, 14}, a.ShiftLeft(1))
	assert.Equal(t, SplatU16(0), SplatU16(0x8000).ShiftLeft(1))
}

func TestU16x8_loadStore(t *testing.T) {
	src := []uint16{9, 8, 7, 6, 5, 4, 3, 2, 1}
	v := LoadU16(src)
	assert.Equal(t, U16x8{9, 8, 7, 6, 5, 4, 3, 2}, v)

	dst := make([]uint16, 10)
	v.Store(dst[1:])
	assert.Equal(t, []uint16{0, 9, 8, 7, 6, 5, 4, 3, 2, 0}, dst)
}

func TestU32x8_ops(t *testing.T) {
	v := IotaU32(0x1fffe)
	assert.Equal(t, U32x8{0x1fffe, 0x1ffff, 0x20000, 0x20001, 0x20002, 0x20003, 0x20004, 0x20005}, v)
	assert.Equal(t, U32x8{0, 1, 0, 1, 0, 1, 0, 1}, v.And(SplatU32(1)))
	assert.Equal(t, U32x8{1, 1, 2, 2, 2, 2, 2, 2}, v.ShiftRight(16))
	assert.Equal(t, U16x8{0xfffe, 0xffff, 0, 1, 2, 3, 4, 5}, v.NarrowU16())
}

func TestU64x2_ops(t *testing.T) {
	v := U64x2{0x00000002_00000001, 0x00000004_00000003}
	assert.Equal(t, uint32(1), v.Extract32(0))
	assert.Equal(t, uint32(2), v.Extract32(1))
	assert.Equal(t, uint32(3), v.Extract32(2))
	assert.Equal(t, uint32(4), v.Extract32(3))

	assert.Equal(t, U64x2{0xff, 0xff}, SplatU64(0xf0).Or(SplatU64(0x0f)))
	assert.Equal(t, U64x2{0x0f, 0}, U64x2{0xff, 0xf0}.And(SplatU64(0x0f)))
	assert.Equal(t, U64x2{2, 4}, U64x2{1, 2}.ShiftLeft(1))
	assert.Equal(t, U64x2{1, 2}, U64x2{2, 4}.ShiftRight(1))
}
