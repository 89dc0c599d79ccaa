package wide

// U32x8 represents 8 uint32 values.
type U32x8 [Lanes]uint32

// SplatU32 broadcasts n to all lanes.
func SplatU32(n uint32) U32x8 {
	var result U32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// IotaU32 returns base, base+1, ..., base+7.
func IotaU32(base uint32) U32x8 {
	var result U32x8
	for i := range result {
		result[i] = base + uint32(i)
	}
	return result
}

func (v U32x8) And(other U32x8) U32x8 {
	var result U32x8
	for i := range v {
		result[i] = v[i] & other[i]
	}
	return result
}

func (v U32x8) ShiftRight(n uint) U32x8 {
	var result U32x8
	for i := range v {
		result[i] = v[i] >> n
	}
	return result
}

// NarrowU16 truncates every lane to its lower 16 bits.
func (v U32x8) NarrowU16() U16x8 {
	var result U16x8
	for i := range v {
		result[i] = uint16(v[i])
	}
	return result
}
