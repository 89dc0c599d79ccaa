// Package svg draws a generated curve as an SVG image or exports it as a WKT
// linestring.
package svg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"

	"github.com/pdok/zcurve/geomhelp"
	"github.com/pdok/zcurve/zcurve"
)

// Style is how the points are connected.
type Style string

const (
	// StylePath draws one path through all points inside a frame.
	StylePath Style = "path"
	// StyleLine draws a separate line between every pair of consecutive points.
	StyleLine Style = "line"
)

const (
	head = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<g>
`
	tail = `</g>
</svg>
`
)

type Options struct {
	Scale  uint  `default:"10" validate:"gte=1"`
	Offset uint  `default:"2"`
	Style  Style `default:"path" validate:"oneof=path line"`
	// StrokeScale multiplies every stroke width
	StrokeScale float64 `default:"1" validate:"gt=0"`
}

func DefaultOptions() Options {
	var opts Options
	if err := defaults.Set(&opts); err != nil {
		panic(err)
	}
	return opts
}

func (o Options) validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(o)
}

func (o Options) scaled(c zcurve.Coord) uint64 {
	return (uint64(c) + uint64(o.Offset)) * uint64(o.Scale)
}

func (o Options) stroke(width float64) float64 {
	return width * float64(o.Scale) * o.StrokeScale
}

// dimension is the width and height of the image.
func (o Options) dimension(degree zcurve.Degree) uint64 {
	return (zcurve.Side(degree) - 1 + 2*uint64(o.Offset)) * uint64(o.Scale)
}

func check(degree zcurve.Degree, buf zcurve.Buffer, opts Options) error {
	if err := zcurve.ValidateDegree(degree); err != nil {
		return err
	}
	if err := buf.Fits(degree); err != nil {
		return err
	}
	return opts.validate()
}

// WritePath draws a frame and a single path through the curve.
func WritePath(w io.Writer, degree zcurve.Degree, buf zcurve.Buffer, opts Options) error {
	if err := check(degree, buf, opts); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	dim := opts.dimension(degree)
	fmt.Fprintf(bw, head, dim, dim)
	fmt.Fprintf(bw, `<rect x="0" y="0" width="100%%" height="100%%" fill="none" stroke="black" stroke-width="%f"/>`+"\n", opts.stroke(0.1))
	fmt.Fprintf(bw, `<path d="M%d,%d `, opts.scaled(buf.X[0]), opts.scaled(buf.Y[0]))
	size := int(zcurve.Size(degree))
	for i := 1; i < size; i++ {
		fmt.Fprintf(bw, "L%d,%d ", opts.scaled(buf.X[i]), opts.scaled(buf.Y[i]))
	}
	fmt.Fprintf(bw, `" fill="none" stroke="black" stroke-width="%f"/>`+"\n", opts.stroke(0.05))
	bw.WriteString(tail)
	return bw.Flush()
}

// WriteLines draws one line element per pair of consecutive points.
func WriteLines(w io.Writer, degree zcurve.Degree, buf zcurve.Buffer, opts Options) error {
	if err := check(degree, buf, opts); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	dim := opts.dimension(degree)
	fmt.Fprintf(bw, head, dim, dim)
	stroke := opts.stroke(0.1)
	size := int(zcurve.Size(degree))
	for i := 0; i < size-1; i++ {
		fmt.Fprintf(bw, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black" stroke-width="%f"/>`+"\n",
			opts.scaled(buf.X[i]), opts.scaled(buf.Y[i]), opts.scaled(buf.X[i+1]), opts.scaled(buf.Y[i+1]), stroke)
	}
	bw.WriteString(tail)
	return bw.Flush()
}

// Write draws the curve in the style of opts.
func Write(w io.Writer, degree zcurve.Degree, buf zcurve.Buffer, opts Options) error {
	if opts.Style == StyleLine {
		return WriteLines(w, degree, buf, opts)
	}
	return WritePath(w, degree, buf, opts)
}

// LineString is the curve in image coordinates, offset and scale applied.
func LineString(degree zcurve.Degree, buf zcurve.Buffer, opts Options) (geom.LineString, error) {
	if err := check(degree, buf, opts); err != nil {
		return nil, err
	}
	return geomhelp.CurveLineString(buf, int(zcurve.Size(degree)), float64(opts.Offset), float64(opts.Scale)), nil
}

// Preview is the WKT of the curve cut off after maxLen characters. Only the
// points that can show up in it are converted.
func Preview(degree zcurve.Degree, buf zcurve.Buffer, opts Options, maxLen uint) (string, error) {
	if err := check(degree, buf, opts); err != nil {
		return "", err
	}
	n := int(zcurve.Size(degree))
	if maxLen > 0 {
		// a point takes at least 4 characters: "x y,"
		n = min(n, int(maxLen/4)+1)
	}
	ls := geomhelp.CurveLineString(buf, n, float64(opts.Offset), float64(opts.Scale))
	return geomhelp.WktMustEncode(ls, maxLen), nil
}

func WriteWKT(w io.Writer, degree zcurve.Degree, buf zcurve.Buffer, opts Options) error {
	ls, err := LineString(degree, buf, opts)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if err = wkt.Encode(bw, ls); err != nil {
		return err
	}
	bw.WriteString("\n")
	return bw.Flush()
}

// Save writes the curve to path: WKT when it ends in .wkt, an SVG image otherwise.
func Save(path string, degree zcurve.Degree, buf zcurve.Buffer, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	if strings.EqualFold(filepath.Ext(path), ".wkt") {
		return WriteWKT(f, degree, buf, opts)
	}
	return Write(f, degree, buf, opts)
}
