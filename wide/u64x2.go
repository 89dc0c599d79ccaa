package wide

// U64x2 represents 2 uint64 values, the width of one 128-bit register.
type U64x2 [2]uint64

// SplatU64 broadcasts n to both lanes.
func SplatU64(n uint64) U64x2 {
	return U64x2{n, n}
}

func (v U64x2) Or(other U64x2) U64x2 {
	return U64x2{v[0] | other[0], v[1] | other[1]}
}

func (v U64x2) And(other U64x2) U64x2 {
	return U64x2{v[0] & other[0], v[1] & other[1]}
}

func (v U64x2) ShiftLeft(n uint) U64x2 {
	return U64x2{v[0] << n, v[1] << n}
}

func (v U64x2) ShiftRight(n uint) U64x2 {
	return U64x2{v[0] >> n, v[1] >> n}
}

// Extract32 returns 32-bit lane i of the register viewed as 4 uint32 values,
// lane 0 being the lower half of the first uint64.
func (v U64x2) Extract32(i int) uint32 {
	return uint32(v[i/2] >> (32 * (i % 2)))
}
