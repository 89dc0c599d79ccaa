// Package lookup decodes Z-curve indices chunk by chunk with precomputed tables.
//
// A table of width W maps every W-bit chunk of an index to the W/2-bit x and y
// it deinterleaves into. Tables are built once, never modified afterwards, and
// handed to the codecs by pointer.
package lookup

import (
	"fmt"

	"github.com/pdok/zcurve/mathhelp"
	"github.com/pdok/zcurve/zcurve"
)

// Widths lists the supported chunk widths in bits, smallest first.
var Widths = [...]uint{4, 8, 16}

// Table is LookupTable(W). Entry c holds zcurve.Decode(W/2, c). It keeps a pair
// layout for scalar lookups and a split layout (separate x and y arrays) for
// vectorized consumers that load several consecutive entries at once.
type Table struct {
	width  uint
	points []zcurve.Point
	xs     []zcurve.Coord
	ys     []zcurve.Coord
}

func ValidateWidth(width uint) error {
	for _, w := range Widths {
		if w == width {
			return nil
		}
	}
	return fmt.Errorf("%w: %d (must be one of %v)", zcurve.ErrInvalidChunkWidth, width, Widths)
}

// Build computes the table of the given width with the scalar codec.
func Build(width uint) (*Table, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	size := mathhelp.Pow2(uint64(width))
	xs := make([]zcurve.Coord, size)
	ys := make([]zcurve.Coord, size)
	if err := zcurve.Generate(width/2, zcurve.Buffer{X: xs, Y: ys}); err != nil {
		return nil, err
	}
	return fromSplit(width, xs, ys), nil
}

func MustBuild(width uint) *Table {
	t, err := Build(width)
	if err != nil {
		panic(err)
	}
	return t
}

func fromSplit(width uint, xs, ys []zcurve.Coord) *Table {
	points := make([]zcurve.Point, len(xs))
	for i := range points {
		points[i] = zcurve.Point{X: xs[i], Y: ys[i]}
	}
	return &Table{width: width, points: points, xs: xs, ys: ys}
}

// Width is the number of index bits consumed per lookup.
func (t *Table) Width() uint {
	return t.width
}

// Len is the number of entries, 2^Width.
func (t *Table) Len() int {
	return len(t.points)
}

// At returns entry c.
func (t *Table) At(c uint64) zcurve.Point {
	return t.points[c]
}

// Split returns the split layout. The slices are shared and must not be modified.
func (t *Table) Split() (xs, ys []zcurve.Coord) {
	return t.xs, t.ys
}

// Set holds one table per supported width.
type Set struct {
	tables map[uint]*Table
}

// NewSet builds all tables. The 16-bit table holds 65536 entries, so this is
// meant to happen once at startup.
func NewSet() (*Set, error) {
	tables := make([]*Table, 0, len(Widths))
	for _, w := range Widths {
		t, err := Build(w)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewSetFromTables(tables...)
}

func MustNewSet() *Set {
	s, err := NewSet()
	if err != nil {
		panic(err)
	}
	return s
}

// NewSetFromTables bundles tables that were built or loaded elsewhere. Every
// supported width must be present exactly once.
func NewSetFromTables(tables ...*Table) (*Set, error) {
	s := &Set{tables: make(map[uint]*Table, len(Widths))}
	for _, t := range tables {
		if err := ValidateWidth(t.width); err != nil {
			return nil, err
		}
		if _, dup := s.tables[t.width]; dup {
			return nil, fmt.Errorf("duplicate %d-bit lookup table", t.width)
		}
		s.tables[t.width] = t
	}
	for _, w := range Widths {
		if _, ok := s.tables[w]; !ok {
			return nil, fmt.Errorf("missing %d-bit lookup table", w)
		}
	}
	return s, nil
}

// Table returns the table of the given width.
func (s *Set) Table(width uint) (*Table, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	return s.tables[width], nil
}

// Tables returns all tables, smallest width first.
func (s *Set) Tables() []*Table {
	tables := make([]*Table, 0, len(Widths))
	for _, w := range Widths {
		tables = append(tables, s.tables[w])
	}
	return tables
}
