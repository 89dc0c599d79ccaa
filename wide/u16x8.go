package wide

// Lanes is the number of coordinates processed together.
const Lanes = 8

// U16x8 represents 8 uint16 values.
type U16x8 [Lanes]uint16

// SplatU16 broadcasts n to all lanes.
func SplatU16(n uint16) U16x8 {
	var result U16x8
	for i := range result {
		result[i] = n
	}
	return result
}

// LoadU16 loads the first 8 values of src. src must hold at least 8 values.
func LoadU16(src []uint16) U16x8 {
	var result U16x8
	copy(result[:], src[:Lanes])
	return result
}

// Store writes all lanes to the first 8 values of dst.
func (v U16x8) Store(dst []uint16) {
	copy(dst[:Lanes], v[:])
}

func (v U16x8) Or(other U16x8) U16x8 {
	var result U16x8
	for i := range v {
		result[i] = v[i] | other[i]
	}
	return result
}

func (v U16x8) Add(other U16x8) U16x8 {
	var result U16x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

func (v U16x8) ShiftLeft(n uint) U16x8 {
	var result U16x8
	for i := range v {
		result[i] = v[i] << n
	}
	return result
}
