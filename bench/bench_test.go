package bench

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdok/zcurve/dispatch"
	"github.com/pdok/zcurve/lookup"
	"github.com/pdok/zcurve/vector"
	"github.com/pdok/zcurve/zcurve"
)

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	d, err := dispatch.New(dispatch.WithTables(lookup.MustNewSet()), dispatch.WithBackend(vector.BackendScalar))
	require.NoError(t, err)
	return d
}

func TestRunner_Run(t *testing.T) {
	d := newDispatcher(t)
	var pauses []time.Duration
	r := NewRunner(d, 4, time.Second)
	r.sleep = func(p time.Duration) { pauses = append(pauses, p) }

	result, err := r.Run(dispatch.Request{Mode: dispatch.Decode, Variant: "lookup-8bit", Degree: 9, Index: 91186}, zcurve.Buffer{})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.RunID)
	assert.Equal(t, dispatch.Lookup8, result.Variant)
	assert.Equal(t, dispatch.Decode, result.Mode)
	assert.Equal(t, uint(4), result.Iterations)
	assert.Equal(t, zcurve.Decode(9, 91186), result.Last.Point)
	assert.LessOrEqual(t, result.Min, result.Mean)
	assert.LessOrEqual(t, result.Mean, result.Max)
	assert.Equal(t, result.Total/4, result.Mean)
	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, pauses)
}

func TestRunner_RunFullCurve(t *testing.T) {
	r := NewRunner(newDispatcher(t), 2, 0)
	buf := zcurve.MustNewBuffer(5)
	result, err := r.Run(dispatch.Request{Mode: dispatch.FullCurve, Variant: "parallel", Degree: 5}, buf)
	require.NoError(t, err)
	assert.Equal(t, dispatch.Parallel, result.Variant)
	assert.Equal(t, zcurve.Point{X: 31, Y: 31}, buf.At(buf.Len()-1))
}

func TestRunner_errors(t *testing.T) {
	d := newDispatcher(t)
	req := dispatch.Request{Mode: dispatch.Encode, Degree: 3, X: 1, Y: 1}

	_, err := NewRunner(d, 0, 0).Run(req, zcurve.Buffer{})
	assert.ErrorIs(t, err, ErrIterations)
	_, err = NewRunner(d, MaxIterations+1, 0).Run(req, zcurve.Buffer{})
	assert.ErrorIs(t, err, ErrIterations)

	req.Variant = "lookup-4bit"
	_, err = NewRunner(d, 1, 0).Run(req, zcurve.Buffer{})
	assert.ErrorIs(t, err, zcurve.ErrUnsupportedVariant)
}

func TestRunner_Compare(t *testing.T) {
	d := newDispatcher(t)
	r := NewRunner(d, 2, 0)
	results, err := r.Compare(dispatch.Request{Mode: dispatch.FullCurve, Degree: 6}, zcurve.MustNewBuffer(6))
	require.NoError(t, err)
	require.Len(t, results, len(d.Variants(dispatch.FullCurve)))

	seen := map[dispatch.Variant]bool{}
	for i, result := range results {
		seen[result.Variant] = true
		assert.Equal(t, results[0].RunID, result.RunID)
		if i > 0 {
			assert.LessOrEqual(t, results[i-1].Mean, result.Mean)
		}
	}
	assert.Len(t, seen, len(results))

	_, err = r.Compare(dispatch.Request{Mode: dispatch.FullCurve, Degree: 6}, zcurve.MustNewBuffer(5))
	assert.ErrorIs(t, err, zcurve.ErrBufferSize)
}

func TestResult_String(t *testing.T) {
	r := Result{Variant: dispatch.Magic, Iterations: 3, Mean: 1500 * time.Millisecond}
	assert.Equal(t, "Benchmarking implementation magic for 3 iterations took 1.500000 seconds on average", r.String())
}
