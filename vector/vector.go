// Package vector decodes 8 curve points per step. Every codec comes with two
// backends, lanes and scalar, that produce identical results; see Backend.
package vector

import (
	"github.com/pdok/zcurve/lookup"
	"github.com/pdok/zcurve/wide"
	"github.com/pdok/zcurve/zcurve"
)

var (
	degreeOneX = []zcurve.Coord{0, 1, 0, 1}
	degreeOneY = []zcurve.Coord{0, 0, 1, 1}
)

// prepare validates the request and handles degree 1, whose 4 points do not
// fill a group. It reports whether the caller still has work to do.
func prepare(degree zcurve.Degree, buf zcurve.Buffer) (bool, error) {
	if err := zcurve.ValidateDegree(degree); err != nil {
		return false, err
	}
	if err := buf.Fits(degree); err != nil {
		return false, err
	}
	if degree == 1 {
		copy(buf.X, degreeOneX)
		copy(buf.Y, degreeOneY)
		return false, nil
	}
	return true, nil
}

// Naive spreads every bit level across the lanes.
type Naive struct {
	backend Backend
	kernel  kernel
}

func NewNaive(backend Backend) *Naive {
	backend = backend.Resolve()
	return &Naive{backend: backend, kernel: backend.kernel()}
}

func (n *Naive) Backend() Backend {
	return n.backend
}

func (n *Naive) Generate(degree zcurve.Degree, buf zcurve.Buffer) error {
	if ok, err := prepare(degree, buf); !ok {
		return err
	}
	size := zcurve.Size(degree)
	for base := uint64(0); base < size; base += wide.Lanes {
		x, y := n.kernel.naive(degree, uint32(base))
		x.Store(buf.X[base:])
		y.Store(buf.Y[base:])
	}
	return nil
}

// Magic runs the mask cascade on two indices at once and expands each into
// the 8 points of its quad-Z block.
type Magic struct {
	backend Backend
	kernel  kernel
}

func NewMagic(backend Backend) *Magic {
	backend = backend.Resolve()
	return &Magic{backend: backend, kernel: backend.kernel()}
}

func (m *Magic) Backend() Backend {
	return m.backend
}

func (m *Magic) Generate(degree zcurve.Degree, buf zcurve.Buffer) error {
	if ok, err := prepare(degree, buf); !ok {
		return err
	}
	size := zcurve.Size(degree)
	for base := uint64(0); base < size; base += 2 * wide.Lanes {
		x0, y0, x1, y1 := m.kernel.magic(uint32(base))
		x0.Store(buf.X[base:])
		y0.Store(buf.Y[base:])
		x1.Store(buf.X[base+wide.Lanes:])
		y1.Store(buf.Y[base+wide.Lanes:])
	}
	return nil
}

// Lookup16 decodes with the split 16-bit table: the lowest chunk of a group
// is 8 consecutive table entries, higher chunks are shared by all lanes.
type Lookup16 struct {
	backend Backend
	kernel  kernel
	codec   *lookup.Codec
	xs, ys  []zcurve.Coord
}

func NewLookup16(set *lookup.Set, backend Backend) (*Lookup16, error) {
	codec, err := lookup.NewCodec(set, 16)
	if err != nil {
		return nil, err
	}
	table, err := set.Table(16)
	if err != nil {
		return nil, err
	}
	xs, ys := table.Split()
	backend = backend.Resolve()
	return &Lookup16{
		backend: backend,
		kernel:  backend.kernel(),
		codec:   codec,
		xs:      xs,
		ys:      ys,
	}, nil
}

func (l *Lookup16) Backend() Backend {
	return l.backend
}

// Decode decodes the group of 8 holding idx and returns idx's lane.
// idx must be below 4^degree.
func (l *Lookup16) Decode(degree zcurve.Degree, idx zcurve.Index) zcurve.Point {
	degree = min(degree, zcurve.MaxDegree)
	base := idx &^ (wide.Lanes - 1)
	x, y := l.kernel.lookup16(l, degree, uint32(base))
	lane := idx - base
	return zcurve.Point{X: x[lane], Y: y[lane]}
}

func (l *Lookup16) Generate(degree zcurve.Degree, buf zcurve.Buffer) error {
	if ok, err := prepare(degree, buf); !ok {
		return err
	}
	size := zcurve.Size(degree)
	for base := uint64(0); base < size; base += wide.Lanes {
		x, y := l.kernel.lookup16(l, degree, uint32(base))
		x.Store(buf.X[base:])
		y.Store(buf.Y[base:])
	}
	return nil
}

var (
	_ zcurve.Generator = (*Naive)(nil)
	_ zcurve.Generator = (*Magic)(nil)
	_ zcurve.Generator = (*Lookup16)(nil)
	_ zcurve.Decoder   = (*Lookup16)(nil)
)
