// Package morton converts between indices and coordinates with "magic bits":
// a fixed cascade of shifts and masks that spreads or compacts all bits of a
// word at once, instead of moving them one by one.
package morton

import (
	"fmt"
	"math"

	"github.com/pdok/zcurve/wide"
	"github.com/pdok/zcurve/zcurve"
)

type Z = zcurve.Index

var (
	masks = [...]uint64{
		0b0101010101010101010101010101010101010101010101010101010101010101,
		0b0011001100110011001100110011001100110011001100110011001100110011,
		0b0000111100001111000011110000111100001111000011110000111100001111,
		0b0000000011111111000000001111111100000000111111110000000011111111,
		0b0000000000000000111111111111111100000000000000001111111111111111,
	}
	powersOfTwo = [...]uint64{0, 1, 2, 4, 8}
)

const lowHalf = 0x00000000ffffffff

// ToZ interleaves x and y. Both halves of the word are spread in one go:
// x in the lower 32 bits, y in the upper 32 bits.
func ToZ(x, y uint) (z Z, ok bool) {
	ok = x <= math.MaxUint16 && y <= math.MaxUint16
	w := uint64(x&math.MaxUint16) | uint64(y&math.MaxUint16)<<32
	for i := len(masks) - 1; i > 0; i-- {
		w = (w | (w << powersOfTwo[i])) & masks[i-1]
	}
	// fold y's bits from the upper half onto the odd positions of the lower half
	return (w | (w >> 31)) & lowHalf, ok
}

func MustToZ(x, y uint) Z {
	z, ok := ToZ(x, y)
	if !ok {
		panic(fmt.Errorf(`cannot make Z out of %v and %v`, x, y))
	}
	return z
}

// FromZ deinterleaves the lower 32 bits of z. Bits above those are ignored.
func FromZ(z Z) (x, y zcurve.Coord) {
	// even bits (x) stay in the lower half, odd bits (y) move to the even positions of the upper half
	w := ((z & lowHalf) | (z << 31)) & masks[0]
	for i := 1; i < len(masks); i++ {
		w = (w | (w >> powersOfTwo[i])) & masks[i]
	}
	return zcurve.Coord(w), zcurve.Coord(w >> 32)
}

// FromZx2 deinterleaves two indices at once, one per lane. Each result lane
// holds x in its lower and y in its upper 32 bits.
func FromZx2(z wide.U64x2) wide.U64x2 {
	w := z.And(wide.SplatU64(lowHalf)).Or(z.ShiftLeft(31)).And(wide.SplatU64(masks[0]))
	for i := 1; i < len(masks); i++ {
		w = w.Or(w.ShiftRight(uint(powersOfTwo[i]))).And(wide.SplatU64(masks[i]))
	}
	return w
}

// Codec is the magic bits codec. It works on the whole packed word and does
// not look at the degree, callers keep indices below 4^degree.
type Codec struct{}

func (Codec) Decode(_ zcurve.Degree, idx zcurve.Index) zcurve.Point {
	x, y := FromZ(idx)
	return zcurve.Point{X: x, Y: y}
}

func (Codec) Encode(_ zcurve.Degree, x, y zcurve.Coord) zcurve.Index {
	z, _ := ToZ(uint(x), uint(y))
	return z
}

func (Codec) Generate(degree zcurve.Degree, buf zcurve.Buffer) error {
	if err := zcurve.ValidateDegree(degree); err != nil {
		return err
	}
	if err := buf.Fits(degree); err != nil {
		return err
	}
	size := zcurve.Size(degree)
	for idx := Z(0); idx < size; idx++ {
		buf.X[idx], buf.Y[idx] = FromZ(idx)
	}
	return nil
}
