package lookup

import (
	"github.com/pdok/zcurve/mathhelp"
	"github.com/pdok/zcurve/zcurve"
)

// Codec decodes with one table. It has no Encode, the tables only map
// indices to coordinates.
type Codec struct {
	table *Table
	half  uint
	mask  uint64
}

// NewCodec returns the codec that decodes width bits at a time with a table from set.
func NewCodec(set *Set, width uint) (*Codec, error) {
	table, err := set.Table(width)
	if err != nil {
		return nil, err
	}
	return &Codec{
		table: table,
		half:  width / 2,
		mask:  mathhelp.Pow2(uint64(width)) - 1,
	}, nil
}

func (c *Codec) Width() uint {
	return c.table.width
}

// Chunks is the number of table lookups needed for an index of the given degree.
func (c *Codec) Chunks(degree zcurve.Degree) uint {
	return mathhelp.CeilDiv(degree, c.half)
}

// Decode consumes idx in little-endian chunks. Chunk j fills bits
// [j*W/2, (j+1)*W/2) of x and y. It stops early once only zero bits remain.
func (c *Codec) Decode(degree zcurve.Degree, idx zcurve.Index) zcurve.Point {
	degree = min(degree, zcurve.MaxDegree)
	var p zcurve.Point
	chunks := c.Chunks(degree)
	for j := uint(0); j < chunks && idx > 0; j++ {
		e := c.table.points[idx&c.mask]
		p.X |= e.X << (j * c.half)
		p.Y |= e.Y << (j * c.half)
		idx >>= c.table.width
	}
	return p
}

func (c *Codec) Generate(degree zcurve.Degree, buf zcurve.Buffer) error {
	if err := zcurve.ValidateDegree(degree); err != nil {
		return err
	}
	if err := buf.Fits(degree); err != nil {
		return err
	}
	size := zcurve.Size(degree)
	for idx := zcurve.Index(0); idx < size; idx++ {
		buf.Set(int(idx), c.Decode(degree, idx))
	}
	return nil
}
