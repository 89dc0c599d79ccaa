package vector

import (
	"github.com/pdok/zcurve/morton"
	"github.com/pdok/zcurve/wide"
	"github.com/pdok/zcurve/zcurve"
)

// kernel decodes a group of 8 consecutive indices into 8 lanes of x and y.
// Every kernel must produce exactly what zcurve.Decode produces.
type kernel interface {
	// naive decodes base..base+7 bit by bit.
	naive(degree zcurve.Degree, base uint32) (x, y wide.U16x8)
	// magic decodes the block of 16 indices starting at base, a multiple of 16.
	magic(base uint32) (x0, y0, x1, y1 wide.U16x8)
	// lookup16 decodes base..base+7, base a multiple of 8, with the 16-bit table.
	lookup16(l *Lookup16, degree zcurve.Degree, base uint32) (x, y wide.U16x8)
}

var (
	// offsets of the 8 points in a quad-Z block relative to its first point
	quadX = wide.U16x8{0, 1, 0, 1, 2, 3, 2, 3}
	quadY = wide.U16x8{0, 0, 1, 1, 0, 0, 1, 1}
)

type lanesKernel struct{}

func (lanesKernel) naive(degree zcurve.Degree, base uint32) (x, y wide.U16x8) {
	idx := wide.IotaU32(base)
	one := wide.SplatU32(1)
	for i := uint(0); i < degree; i++ {
		x = x.Or(idx.ShiftRight(2 * i).And(one).NarrowU16().ShiftLeft(i))
		y = y.Or(idx.ShiftRight(2*i + 1).And(one).NarrowU16().ShiftLeft(i))
	}
	return x, y
}

func (lanesKernel) magic(base uint32) (x0, y0, x1, y1 wide.U16x8) {
	w := morton.FromZx2(wide.U64x2{uint64(base), uint64(base) + wide.Lanes})
	x0 = wide.SplatU16(uint16(w.Extract32(0))).Add(quadX)
	y0 = wide.SplatU16(uint16(w.Extract32(1))).Add(quadY)
	x1 = wide.SplatU16(uint16(w.Extract32(2))).Add(quadX)
	y1 = wide.SplatU16(uint16(w.Extract32(3))).Add(quadY)
	return x0, y0, x1, y1
}

func (lanesKernel) lookup16(l *Lookup16, degree zcurve.Degree, base uint32) (x, y wide.U16x8) {
	lo := base & 0xffff
	x = wide.LoadU16(l.xs[lo:])
	y = wide.LoadU16(l.ys[lo:])
	rest := base >> 16
	for j := uint(1); j < l.codec.Chunks(degree) && rest > 0; j++ {
		c := rest & 0xffff
		x = x.Or(wide.SplatU16(l.xs[c] << (8 * j)))
		y = y.Or(wide.SplatU16(l.ys[c] << (8 * j)))
		rest >>= 16
	}
	return x, y
}

type scalarKernel struct{}

func (scalarKernel) naive(degree zcurve.Degree, base uint32) (x, y wide.U16x8) {
	for i := range x {
		p := zcurve.Decode(degree, zcurve.Index(base)+zcurve.Index(i))
		x[i], y[i] = p.X, p.Y
	}
	return x, y
}

func (scalarKernel) magic(base uint32) (x0, y0, x1, y1 wide.U16x8) {
	for i := range x0 {
		x0[i], y0[i] = morton.FromZ(zcurve.Index(base) + zcurve.Index(i))
		x1[i], y1[i] = morton.FromZ(zcurve.Index(base) + wide.Lanes + zcurve.Index(i))
	}
	return x0, y0, x1, y1
}

func (scalarKernel) lookup16(l *Lookup16, degree zcurve.Degree, base uint32) (x, y wide.U16x8) {
	for i := range x {
		p := l.codec.Decode(degree, zcurve.Index(base)+zcurve.Index(i))
		x[i], y[i] = p.X, p.Y
	}
	return x, y
}

var (
	_ kernel = lanesKernel{}
	_ kernel = scalarKernel{}
)
