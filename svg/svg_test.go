package svg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-spatial/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdok/zcurve/geomhelp"
	"github.com/pdok/zcurve/zcurve"
)

func curve(t *testing.T, degree zcurve.Degree) zcurve.Buffer {
	buf := zcurve.MustNewBuffer(degree)
	require.NoError(t, zcurve.Generate(degree, buf))
	return buf
}

func TestWritePath(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePath(&out, 1, curve(t, 1), DefaultOptions()))
	want := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="50" height="50" xmlns="http://www.w3.org/2000/svg">
<g>
<rect x="0" y="0" width="100%" height="100%" fill="none" stroke="black" stroke-width="1.000000"/>
<path d="M20,20 L30,20 L20,30 L30,30 " fill="none" stroke="black" stroke-width="0.500000"/>
</g>
</svg>
`
	assert.Equal(t, want, out.String())
}

func TestWriteLines(t *testing.T) {
	var out bytes.Buffer
	opts := Options{Scale: 1, Offset: 0, Style: StyleLine, StrokeScale: 10}
	require.NoError(t, Write(&out, 1, curve(t, 1), opts))
	want := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="1" height="1" xmlns="http://www.w3.org/2000/svg">
<g>
<line x1="0" y1="0" x2="1" y2="0" stroke="black" stroke-width="1.000000"/>
<line x1="1" y1="0" x2="0" y2="1" stroke="black" stroke-width="1.000000"/>
<line x1="0" y1="1" x2="1" y2="1" stroke="black" stroke-width="1.000000"/>
</g>
</svg>
`
	assert.Equal(t, want, out.String())
}

func TestWrite_sizes(t *testing.T) {
	for degree := zcurve.Degree(1); degree <= 6; degree++ {
		var path, lines bytes.Buffer
		buf := curve(t, degree)
		require.NoError(t, WritePath(&path, degree, buf, DefaultOptions()))
		require.NoError(t, WriteLines(&lines, degree, buf, DefaultOptions()))
		size := int(zcurve.Size(degree))
		assert.Equal(t, size-1, strings.Count(path.String(), "L"), "degree %d", degree)
		assert.Equal(t, size-1, strings.Count(lines.String(), "<line "), "degree %d", degree)
	}
}

func TestWrite_errors(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, WritePath(&out, 0, zcurve.Buffer{}, DefaultOptions()), zcurve.ErrInvalidDegree)
	assert.ErrorIs(t, WriteLines(&out, 3, curve(t, 2), DefaultOptions()), zcurve.ErrBufferSize)
	assert.Error(t, WritePath(&out, 1, curve(t, 1), Options{Scale: 0, Style: StylePath, StrokeScale: 1}))
	assert.Error(t, WritePath(&out, 1, curve(t, 1), Options{Scale: 1, Style: "dots", StrokeScale: 1}))
	assert.Zero(t, out.Len())
}

func TestLineString(t *testing.T) {
	got, err := LineString(1, curve(t, 1), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, geom.LineString{{20, 20}, {30, 20}, {20, 30}, {30, 30}}, got)

	var out bytes.Buffer
	require.NoError(t, WriteWKT(&out, 1, curve(t, 1), DefaultOptions()))
	assert.True(t, strings.HasPrefix(out.String(), "LINESTRING"), out.String())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestPreview(t *testing.T) {
	for _, degree := range []zcurve.Degree{1, 3, 8} {
		buf := curve(t, degree)
		full, err := LineString(degree, buf, DefaultOptions())
		require.NoError(t, err)

		got, err := Preview(degree, buf, DefaultOptions(), 120)
		require.NoError(t, err)
		assert.Equal(t, geomhelp.WktMustEncode(full, 120), got, "degree %d", degree)
		assert.LessOrEqual(t, len(got), 120)
	}

	got, err := Preview(8, curve(t, 8), DefaultOptions(), 120)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "..."), got)

	_, err = Preview(3, curve(t, 2), DefaultOptions(), 120)
	require.ErrorIs(t, err, zcurve.ErrBufferSize)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	buf := curve(t, 2)

	svgPath := filepath.Join(dir, "zcurve.svg")
	require.NoError(t, Save(svgPath, 2, buf, DefaultOptions()))
	content, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<path d=")

	wktPath := filepath.Join(dir, "zcurve.WKT")
	require.NoError(t, Save(wktPath, 2, buf, DefaultOptions()))
	content, err = os.ReadFile(wktPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "LINESTRING"))

	require.Error(t, Save(filepath.Join(dir, "missing", "zcurve.svg"), 2, buf, DefaultOptions()))
}
