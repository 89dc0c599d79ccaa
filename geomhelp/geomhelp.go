package geomhelp

import (
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/muesli/reflow/truncate"

	"github.com/pdok/zcurve/zcurve"
)

// CurveLineString connects the first n points of buf in order. Every
// coordinate c becomes (c+offset)*scale.
func CurveLineString(buf zcurve.Buffer, n int, offset, scale float64) geom.LineString {
	n = min(n, buf.Len())
	ls := make(geom.LineString, n)
	for i := range ls {
		ls[i] = [2]float64{
			(float64(buf.X[i]) + offset) * scale,
			(float64(buf.Y[i]) + offset) * scale,
		}
	}
	return ls
}

// WktMustEncode encodes g, cut off after maxLen characters. maxLen 0 means no limit.
func WktMustEncode(g geom.Geometry, maxLen uint) string {
	if maxLen == 0 {
		return wkt.MustEncode(g)
	}
	return truncate.StringWithTail(wkt.MustEncode(g), maxLen, "...")
}
