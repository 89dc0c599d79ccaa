package mathhelp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPow2(t *testing.T) {
	assert.Equal(t, uint(1), Pow2(uint(0)))
	assert.Equal(t, uint(65536), Pow2(uint(16)))
	assert.Equal(t, uint64(1)<<32, Pow2(uint64(32)))
}

func TestPow4(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{n: 0, want: 1},
		{n: 1, want: 4},
		{n: 2, want: 16},
		{n: 8, want: 65536},
		{n: 16, want: 4294967296},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, Pow4(tt.n), "Pow4(%d)", tt.n)
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, uint(1), CeilDiv(uint(1), uint(2)))
	assert.Equal(t, uint(1), CeilDiv(uint(2), uint(2)))
	assert.Equal(t, uint(2), CeilDiv(uint(3), uint(2)))
	assert.Equal(t, uint(2), CeilDiv(uint(16), uint(8)))
	assert.Equal(t, uint(3), CeilDiv(uint(9), uint(4)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 1, 8))
	assert.Equal(t, 8, Clamp(9, 1, 8))
	assert.Equal(t, 3, Clamp(3, 1, 8))
}
