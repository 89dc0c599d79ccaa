package geomhelp

import (
	"strings"
	"testing"

	"github.com/go-spatial/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdok/zcurve/zcurve"
)

func TestCurveLineString(t *testing.T) {
	buf := zcurve.MustNewBuffer(1)
	require.NoError(t, zcurve.Generate(1, buf))

	tests := []struct {
		name   string
		n      int
		offset float64
		scale  float64
		want   geom.LineString
	}{
		{name: "plain", n: 4, offset: 0, scale: 1, want: geom.LineString{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
		{name: "scaled", n: 4, offset: 2, scale: 10, want: geom.LineString{{20, 20}, {30, 20}, {20, 30}, {30, 30}}},
		{name: "prefix", n: 2, offset: 0, scale: 1, want: geom.LineString{{0, 0}, {1, 0}}},
		{name: "more than there is", n: 9, offset: 0, scale: 1, want: geom.LineString{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurveLineString(buf, tt.n, tt.offset, tt.scale))
		})
	}
}

func TestWktMustEncode(t *testing.T) {
	ls := geom.LineString{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {3, 0}, {2, 1}, {3, 1}}
	full := WktMustEncode(ls, 0)
	assert.True(t, strings.HasPrefix(full, "LINESTRING"), full)

	short := WktMustEncode(ls, 16)
	assert.LessOrEqual(t, len(short), 16)
	assert.True(t, strings.HasSuffix(short, "..."), short)
}
