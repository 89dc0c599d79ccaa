package vector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdok/zcurve/lookup"
	"github.com/pdok/zcurve/zcurve"
)

var (
	backends = []Backend{BackendScalar, BackendLanes}
	set      = lookup.MustNewSet()
)

func generators(t *testing.T, backend Backend) map[string]zcurve.Generator {
	l, err := NewLookup16(set, backend)
	require.NoError(t, err)
	return map[string]zcurve.Generator{
		"naive":    NewNaive(backend),
		"magic":    NewMagic(backend),
		"lookup16": l,
	}
}

func TestGenerate_matchesScalar(t *testing.T) {
	for _, backend := range backends {
		for name, gen := range generators(t, backend) {
			for degree := zcurve.MinDegree; degree <= 10; degree++ {
				t.Run(fmt.Sprintf("%s/%s/degree %d", backend, name, degree), func(t *testing.T) {
					want := zcurve.MustNewBuffer(degree)
					require.NoError(t, zcurve.Generate(degree, want))
					got := zcurve.MustNewBuffer(degree)
					require.NoError(t, gen.Generate(degree, got))
					assert.Equal(t, want, got)
				})
			}
		}
	}
}

func TestGenerate_degreeOne(t *testing.T) {
	want := []zcurve.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	for _, backend := range backends {
		for name, gen := range generators(t, backend) {
			buf := zcurve.MustNewBuffer(1)
			require.NoError(t, gen.Generate(1, buf), name)
			for i, p := range want {
				assert.Equal(t, p, buf.At(i), "%s/%s point %d", backend, name, i)
			}
		}
	}
}

func TestGenerate_errors(t *testing.T) {
	for _, backend := range backends {
		for name, gen := range generators(t, backend) {
			assert.ErrorIs(t, gen.Generate(0, zcurve.Buffer{}), zcurve.ErrInvalidDegree, name)
			assert.ErrorIs(t, gen.Generate(17, zcurve.Buffer{}), zcurve.ErrInvalidDegree, name)
			assert.ErrorIs(t, gen.Generate(4, zcurve.MustNewBuffer(3)), zcurve.ErrBufferSize, name)
		}
	}
}

func TestLookup16_Decode(t *testing.T) {
	tests := []struct {
		degree zcurve.Degree
		idx    zcurve.Index
		want   zcurve.Point
	}{
		{degree: 1, idx: 3, want: zcurve.Point{X: 1, Y: 1}},
		{degree: 2, idx: 6, want: zcurve.Point{X: 2, Y: 1}},
		{degree: 9, idx: 1337, want: zcurve.Point{X: 53, Y: 6}},
		{degree: 16, idx: 0xffffffff, want: zcurve.Point{X: 0xffff, Y: 0xffff}},
		{degree: 16, idx: 0xaaaaaaaa, want: zcurve.Point{X: 0, Y: 0xffff}},
		{degree: 16, idx: 0x10007, want: zcurve.Point{X: 0x103, Y: 1}},
	}
	for _, backend := range backends {
		l, err := NewLookup16(set, backend)
		require.NoError(t, err)
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%d@%d", backend, tt.idx, tt.degree), func(t *testing.T) {
				assert.Equal(t, tt.want, l.Decode(tt.degree, tt.idx))
			})
		}
	}
}

func TestLookup16_DecodeSampled(t *testing.T) {
	for _, backend := range backends {
		l, err := NewLookup16(set, backend)
		require.NoError(t, err)
		for _, degree := range []zcurve.Degree{3, 7, 8, 9, 12, 16} {
			size := zcurve.Size(degree)
			step := max(size>>14, 1) | 1
			for idx := zcurve.Index(0); idx < size; idx += step {
				require.Equal(t, zcurve.Decode(degree, idx), l.Decode(degree, idx), "%s degree %d idx %d", backend, degree, idx)
			}
		}
	}
}

func TestKernels_highDegreeGroups(t *testing.T) {
	l, err := NewLookup16(set, BackendLanes)
	require.NoError(t, err)
	for _, base := range []uint32{0, 0xfff0, 0x10000, 0x12345670, 0xfffffff0} {
		for _, k := range []kernel{lanesKernel{}, scalarKernel{}} {
			nx, ny := k.naive(16, base)
			lx, ly := k.lookup16(l, 16, base)
			x0, y0, x1, y1 := k.magic(base)
			for i := range nx {
				want := zcurve.Decode(16, zcurve.Index(base)+zcurve.Index(i))
				assert.Equal(t, want, zcurve.Point{X: nx[i], Y: ny[i]}, "naive %x+%d", base, i)
				assert.Equal(t, want, zcurve.Point{X: lx[i], Y: ly[i]}, "lookup16 %x+%d", base, i)
				assert.Equal(t, want, zcurve.Point{X: x0[i], Y: y0[i]}, "magic %x+%d", base, i)
				want = zcurve.Decode(16, zcurve.Index(base)+8+zcurve.Index(i))
				assert.Equal(t, want, zcurve.Point{X: x1[i], Y: y1[i]}, "magic %x+%d", base, 8+i)
			}
		}
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{in: "", want: BackendDetect},
		{in: "auto", want: BackendDetect},
		{in: "Scalar", want: BackendScalar},
		{in: " lanes ", want: BackendLanes},
		{in: "simd", want: BackendLanes},
		{in: "avx512", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, zcurve.ErrUnsupportedVariant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectBackend(t *testing.T) {
	t.Setenv(backendEnvVar, "scalar")
	assert.Equal(t, BackendScalar, DetectBackend())
	assert.Equal(t, BackendScalar, NewNaive(BackendDetect).Backend())
	t.Setenv(backendEnvVar, "lanes")
	assert.Equal(t, BackendLanes, DetectBackend())
	t.Setenv(backendEnvVar, "bogus")
	assert.Equal(t, backendFromCPUFeatures(), DetectBackend())
	assert.Equal(t, BackendLanes, BackendLanes.Resolve())
	assert.Equal(t, "Backend(9)", Backend(9).String())
}

func BenchmarkGenerate(b *testing.B) {
	const degree = 10
	buf := zcurve.MustNewBuffer(degree)
	for _, backend := range backends {
		l, _ := NewLookup16(set, backend)
		for name, gen := range map[string]zcurve.Generator{"naive": NewNaive(backend), "magic": NewMagic(backend), "lookup16": l} {
			b.Run(fmt.Sprintf("%s/%s", backend, name), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = gen.Generate(degree, buf)
				}
			})
		}
	}
}
