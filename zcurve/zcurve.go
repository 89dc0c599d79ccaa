// Package zcurve holds the data model of the Z-order (Morton) curve and the
// reference bit-interleaving codec every other implementation is measured against.
//
// An index interleaves the bits of a coordinate pair:
//
//	idx = 0010 0101
//	      |||| ||||
//	      yxyx yxyx
//
//	x   =   0011
//	y   =   0100
//
// Bit i of x is bit 2i of the index, bit i of y is bit 2i+1.
package zcurve

import (
	"fmt"
	"math"

	"github.com/pdok/zcurve/mathhelp"
)

const (
	// MinDegree is the smallest curve degree, a 2x2 grid.
	MinDegree Degree = 1
	// MaxDegree is bounded by the 16 bits of a Coord.
	MaxDegree Degree = 16
)

// Degree is half the bit width of an index. A curve of degree d covers a grid
// with side 2^d and holds 4^d points.
type Degree = uint

// Coord is one ordinate of a point on the grid.
type Coord = uint16

// Index is a position on the curve. It is wider than the 32 bits a degree 16
// curve needs, so 4^16 itself can be represented (and rejected).
type Index = uint64

// Point is a coordinate pair.
type Point struct {
	X Coord
	Y Coord
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Decoder turns an index into a point.
type Decoder interface {
	Decode(degree Degree, idx Index) Point
}

// Encoder turns a point into an index.
type Encoder interface {
	Encode(degree Degree, x, y Coord) Index
}

// Generator fills a buffer with every point of the curve, in index order.
type Generator interface {
	Generate(degree Degree, buf Buffer) error
}

// Codec can go both ways and produce the full curve.
type Codec interface {
	Decoder
	Encoder
	Generator
}

// Side returns the number of cells along one axis: 2^degree.
func Side(degree Degree) uint64 {
	return mathhelp.Pow2(uint64(degree))
}

// Size returns the number of points on the curve: 4^degree.
func Size(degree Degree) uint64 {
	return mathhelp.Pow4(uint64(degree))
}

func ValidateDegree(degree Degree) error {
	if degree < MinDegree || degree > MaxDegree {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidDegree, degree, MinDegree, MaxDegree)
	}
	return nil
}

func ValidateIndex(degree Degree, idx Index) error {
	if err := ValidateDegree(degree); err != nil {
		return err
	}
	if idx >= Size(degree) {
		return fmt.Errorf("%w: %d for degree %d (max %d)", ErrIndexOutOfRange, idx, degree, Size(degree)-1)
	}
	return nil
}

// ValidateCoords checks x and y against the grid side. They are taken as uint64
// so that values that do not even fit a Coord are reported instead of truncated.
func ValidateCoords(degree Degree, x, y uint64) error {
	if err := ValidateDegree(degree); err != nil {
		return err
	}
	side := Side(degree)
	if x >= side || y >= side {
		return fmt.Errorf("%w: (%d, %d) for degree %d (max %d)", ErrCoordinateOutOfRange, x, y, degree, side-1)
	}
	return nil
}

// Buffer holds a full curve as two parallel slices. It is owned by the caller,
// codecs only write into it.
type Buffer struct {
	X []Coord
	Y []Coord
}

// NewBuffer allocates a buffer that fits a curve of the given degree.
func NewBuffer(degree Degree) (Buffer, error) {
	if err := ValidateDegree(degree); err != nil {
		return Buffer{}, err
	}
	size := Size(degree)
	if size > math.MaxInt {
		return Buffer{}, fmt.Errorf("%w: %d points do not fit in memory on this platform", ErrAllocation, size)
	}
	return Buffer{
		X: make([]Coord, size),
		Y: make([]Coord, size),
	}, nil
}

func MustNewBuffer(degree Degree) Buffer {
	buf, err := NewBuffer(degree)
	if err != nil {
		panic(err)
	}
	return buf
}

func (b Buffer) Len() int {
	return min(len(b.X), len(b.Y))
}

// At returns the point stored at position i.
func (b Buffer) At(i int) Point {
	return Point{X: b.X[i], Y: b.Y[i]}
}

func (b Buffer) Set(i int, p Point) {
	b.X[i] = p.X
	b.Y[i] = p.Y
}

// Slice returns the sub-buffer [from, to). It shares memory with b.
func (b Buffer) Slice(from, to int) Buffer {
	return Buffer{X: b.X[from:to], Y: b.Y[from:to]}
}

// Fits checks whether the buffer can hold a curve of the given degree.
func (b Buffer) Fits(degree Degree) error {
	if uint64(b.Len()) < Size(degree) {
		return fmt.Errorf("%w: buffer holds %d points, degree %d needs %d", ErrBufferSize, b.Len(), degree, Size(degree))
	}
	return nil
}
