// Package dispatch maps a (mode, variant) request onto one of the codecs and
// enforces which variant supports which mode.
package dispatch

import (
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/pdok/zcurve/lookup"
	"github.com/pdok/zcurve/mapslicehelp"
	"github.com/pdok/zcurve/morton"
	"github.com/pdok/zcurve/parallel"
	"github.com/pdok/zcurve/vector"
	"github.com/pdok/zcurve/zcurve"
)

// Request is one call into the dispatcher. Only the payload of its mode is used:
// Index for Decode, X and Y for Encode.
type Request struct {
	Mode    Mode
	Variant string
	Degree  zcurve.Degree
	Index   zcurve.Index
	X, Y    uint64
}

// Result holds the outcome of Run. For FullCurve the points are in the buffer
// passed to Run.
type Result struct {
	Variant Variant
	Point   zcurve.Point
	Index   zcurve.Index
}

// Entry is a variant together with its mode scoped id.
type Entry struct {
	ID      int
	Variant Variant
}

// Dispatcher holds one codec per supported (mode, variant). The lookup
// tables and the vector backend are set up once, in New.
type Dispatcher struct {
	tables  *lookup.Set
	backend vector.Backend
	threads int

	// ids are the positions in these maps
	generators *orderedmap.OrderedMap[Variant, zcurve.Generator]
	decoders   *orderedmap.OrderedMap[Variant, zcurve.Decoder]
	encoders   *orderedmap.OrderedMap[Variant, zcurve.Encoder]
}

// Option is an optional argument to New.
type Option func(d *Dispatcher)

// WithTables makes the dispatcher use tables instead of building its own.
func WithTables(tables *lookup.Set) Option {
	return func(d *Dispatcher) {
		d.tables = tables
	}
}

// WithBackend selects the vector backend. The default is vector.BackendDetect.
func WithBackend(backend vector.Backend) Option {
	return func(d *Dispatcher) {
		d.backend = backend
	}
}

// WithThreads sets the number of workers of the parallel variant.
func WithThreads(threads int) Option {
	return func(d *Dispatcher) {
		d.threads = threads
	}
}

//nolint:funlen
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		backend: vector.BackendDetect,
		threads: parallel.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tables == nil {
		tables, err := lookup.NewSet()
		if err != nil {
			return nil, err
		}
		d.tables = tables
	}
	d.backend = d.backend.Resolve()

	lookups := make(map[uint]*lookup.Codec, len(lookup.Widths))
	for _, w := range lookup.Widths {
		c, err := lookup.NewCodec(d.tables, w)
		if err != nil {
			return nil, err
		}
		lookups[w] = c
	}
	vectorLookup, err := vector.NewLookup16(d.tables, d.backend)
	if err != nil {
		return nil, err
	}
	var magic morton.Codec

	// fastest first, id 0 is the default
	d.generators = orderedmap.New[Variant, zcurve.Generator]()
	d.generators.Set(VectorMagic, vector.NewMagic(d.backend))
	d.generators.Set(VectorLookup16, vectorLookup)
	d.generators.Set(Magic, magic)
	d.generators.Set(VectorNaive, vector.NewNaive(d.backend))
	d.generators.Set(Lookup16, lookups[16])
	d.generators.Set(Lookup8, lookups[8])
	d.generators.Set(Lookup4, lookups[4])
	d.generators.Set(Parallel, parallel.New(d.threads))
	d.generators.Set(Scalar, zcurve.Scalar)

	d.decoders = orderedmap.New[Variant, zcurve.Decoder]()
	d.decoders.Set(Magic, magic)
	d.decoders.Set(Lookup16, lookups[16])
	d.decoders.Set(Lookup8, lookups[8])
	d.decoders.Set(Lookup4, lookups[4])
	d.decoders.Set(Scalar, zcurve.Scalar)
	d.decoders.Set(VectorLookup16, vectorLookup)

	d.encoders = orderedmap.New[Variant, zcurve.Encoder]()
	d.encoders.Set(Magic, magic)
	d.encoders.Set(Scalar, zcurve.Scalar)

	return d, nil
}

func (d *Dispatcher) Tables() *lookup.Set {
	return d.tables
}

func (d *Dispatcher) Backend() vector.Backend {
	return d.backend
}

func (d *Dispatcher) Threads() int {
	return d.threads
}

// Variants lists the variants supporting mode, in id order.
func (d *Dispatcher) Variants(mode Mode) []Entry {
	var names []Variant
	switch mode {
	case FullCurve:
		names = mapslicehelp.OrderedMapKeys(d.generators)
	case Decode:
		names = mapslicehelp.OrderedMapKeys(d.decoders)
	case Encode:
		names = mapslicehelp.OrderedMapKeys(d.encoders)
	}
	entries := make([]Entry, len(names))
	for i, v := range names {
		entries[i] = Entry{ID: i, Variant: v}
	}
	return entries
}

// Supports tells whether variant v can serve mode.
func (d *Dispatcher) Supports(mode Mode, v Variant) bool {
	for _, e := range d.Variants(mode) {
		if e.Variant == v {
			return true
		}
	}
	return false
}

// Resolve finds the variant for mode by name or by mode scoped id. An empty
// name means id 0. A variant that does not support mode is an error, another
// variant is never picked instead.
func (d *Dispatcher) Resolve(mode Mode, name string) (Variant, error) {
	entries := d.Variants(mode)
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: unknown mode %v", zcurve.ErrUnsupportedVariant, mode)
	}
	if name == "" {
		return entries[0].Variant, nil
	}
	if id, err := strconv.Atoi(name); err == nil {
		if id < 0 || id >= len(entries) {
			return "", fmt.Errorf("%w: no variant with id %d for mode %v", zcurve.ErrUnsupportedVariant, id, mode)
		}
		return entries[id].Variant, nil
	}
	v, ok := lookupVariant(name)
	if !ok {
		return "", fmt.Errorf("%w: unknown variant %q", zcurve.ErrUnsupportedVariant, name)
	}
	if !d.Supports(mode, v) {
		return "", fmt.Errorf("%w: %s does not support mode %v", zcurve.ErrUnsupportedVariant, v, mode)
	}
	return v, nil
}

func (d *Dispatcher) resolve(req Request, mode Mode) (Variant, error) {
	if err := zcurve.ValidateDegree(req.Degree); err != nil {
		return "", err
	}
	if req.Mode != mode {
		return "", fmt.Errorf("%w: request for mode %v sent to %v", zcurve.ErrUnsupportedVariant, req.Mode, mode)
	}
	return d.Resolve(mode, req.Variant)
}

// Decode checks the degree, the variant and the index, in that order, and decodes.
func (d *Dispatcher) Decode(req Request) (zcurve.Point, error) {
	_, p, err := d.decode(req)
	return p, err
}

func (d *Dispatcher) decode(req Request) (Variant, zcurve.Point, error) {
	v, err := d.resolve(req, Decode)
	if err != nil {
		return "", zcurve.Point{}, err
	}
	if err = zcurve.ValidateIndex(req.Degree, req.Index); err != nil {
		return "", zcurve.Point{}, err
	}
	decoder, _ := d.decoders.Get(v)
	return v, decoder.Decode(req.Degree, req.Index), nil
}

// Encode checks the degree, the variant and the coordinates, in that order, and encodes.
func (d *Dispatcher) Encode(req Request) (zcurve.Index, error) {
	_, idx, err := d.encode(req)
	return idx, err
}

func (d *Dispatcher) encode(req Request) (Variant, zcurve.Index, error) {
	v, err := d.resolve(req, Encode)
	if err != nil {
		return "", 0, err
	}
	if err = zcurve.ValidateCoords(req.Degree, req.X, req.Y); err != nil {
		return "", 0, err
	}
	encoder, _ := d.encoders.Get(v)
	return v, encoder.Encode(req.Degree, zcurve.Coord(req.X), zcurve.Coord(req.Y)), nil
}

// Generate checks the degree, the variant and the buffer, in that order, and
// writes the full curve into buf.
func (d *Dispatcher) Generate(req Request, buf zcurve.Buffer) error {
	_, err := d.generate(req, buf)
	return err
}

func (d *Dispatcher) generate(req Request, buf zcurve.Buffer) (Variant, error) {
	v, err := d.resolve(req, FullCurve)
	if err != nil {
		return "", err
	}
	if err = buf.Fits(req.Degree); err != nil {
		return "", err
	}
	generator, _ := d.generators.Get(v)
	if err = generator.Generate(req.Degree, buf); err != nil {
		return "", fmt.Errorf("%s: %w", v, err)
	}
	return v, nil
}

// Run dispatches on req.Mode. buf is only used for FullCurve. The result
// names the variant that did the work.
func (d *Dispatcher) Run(req Request, buf zcurve.Buffer) (Result, error) {
	var (
		result Result
		err    error
	)
	switch req.Mode {
	case FullCurve:
		result.Variant, err = d.generate(req, buf)
	case Decode:
		result.Variant, result.Point, err = d.decode(req)
	case Encode:
		result.Variant, result.Index, err = d.encode(req)
	default:
		return result, fmt.Errorf("%w: unknown mode %v", zcurve.ErrUnsupportedVariant, req.Mode)
	}
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
