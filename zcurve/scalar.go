package zcurve

// Scalar is the bit-by-bit interleaving codec. It is slow, O(degree) per
// point, but obviously correct.
var Scalar Codec = scalar{}

type scalar struct{}

func clampDegree(degree Degree) Degree {
	if degree > MaxDegree {
		return MaxDegree
	}
	return degree
}

// Decode extracts x from the even and y from the odd bits of idx.
func Decode(degree Degree, idx Index) Point {
	degree = clampDegree(degree)
	var p Point
	for i := Degree(0); i < degree; i++ {
		p.X |= Coord((idx>>(2*i))&1) << i
		p.Y |= Coord((idx>>(2*i+1))&1) << i
	}
	return p
}

// Encode interleaves x and y into an index.
func Encode(degree Degree, x, y Coord) Index {
	degree = clampDegree(degree)
	var idx Index
	for i := Degree(0); i < degree; i++ {
		idx |= Index((x>>i)&1) << (2 * i)
		idx |= Index((y>>i)&1) << (2*i + 1)
	}
	return idx
}

// Fill decodes every index in [from, to) into buf, which starts at index from.
func Fill(degree Degree, buf Buffer, from, to Index) {
	for idx := from; idx < to; idx++ {
		buf.Set(int(idx-from), Decode(degree, idx))
	}
}

// Generate writes the full curve into buf.
func Generate(degree Degree, buf Buffer) error {
	if err := ValidateDegree(degree); err != nil {
		return err
	}
	if err := buf.Fits(degree); err != nil {
		return err
	}
	Fill(degree, buf, 0, Size(degree))
	return nil
}

func (scalar) Decode(degree Degree, idx Index) Point {
	return Decode(degree, idx)
}

func (scalar) Encode(degree Degree, x, y Coord) Index {
	return Encode(degree, x, y)
}

func (scalar) Generate(degree Degree, buf Buffer) error {
	return Generate(degree, buf)
}
