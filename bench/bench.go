// Package bench times repeated dispatcher calls. It only measures, the calls
// behave exactly as they do outside a benchmark.
package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/umpc/go-sortedmap"

	"github.com/pdok/zcurve/dispatch"
	"github.com/pdok/zcurve/mapslicehelp"
	"github.com/pdok/zcurve/zcurve"
)

const (
	DefaultIterations = 10
	MaxIterations     = 1_000_000
)

var ErrIterations = errors.New("invalid number of iterations")

// Result sums up the iterations of one variant.
type Result struct {
	RunID      uuid.UUID
	Variant    dispatch.Variant
	Mode       dispatch.Mode
	Degree     zcurve.Degree
	Iterations uint
	Total      time.Duration
	Mean       time.Duration
	Min        time.Duration
	Max        time.Duration
	// Last is what the final iteration returned
	Last dispatch.Result
}

func (r Result) String() string {
	return fmt.Sprintf("Benchmarking implementation %s for %d iterations took %f seconds on average",
		r.Variant, r.Iterations, r.Mean.Seconds())
}

// Runner repeats calls on a dispatcher.
type Runner struct {
	Dispatcher *dispatch.Dispatcher
	Iterations uint
	// Pause is waited between two iterations
	Pause time.Duration

	sleep func(time.Duration)
}

func NewRunner(d *dispatch.Dispatcher, iterations uint, pause time.Duration) *Runner {
	return &Runner{Dispatcher: d, Iterations: iterations, Pause: pause, sleep: time.Sleep}
}

// Run times r.Iterations calls of req. buf is only used for full curve requests.
func (r *Runner) Run(req dispatch.Request, buf zcurve.Buffer) (Result, error) {
	return r.run(uuid.New(), req, buf)
}

func (r *Runner) run(runID uuid.UUID, req dispatch.Request, buf zcurve.Buffer) (Result, error) {
	if r.Iterations < 1 || r.Iterations > MaxIterations {
		return Result{}, fmt.Errorf("%w: %d, should be 1 to %d", ErrIterations, r.Iterations, MaxIterations)
	}
	result := Result{
		RunID:      runID,
		Mode:       req.Mode,
		Degree:     req.Degree,
		Iterations: r.Iterations,
	}
	for i := uint(0); i < r.Iterations; i++ {
		if i > 0 && r.Pause > 0 {
			r.sleep(r.Pause)
		}
		start := time.Now()
		last, err := r.Dispatcher.Run(req, buf)
		elapsed := time.Since(start)
		if err != nil {
			return Result{}, err
		}
		result.Last = last
		result.Total += elapsed
		if i == 0 || elapsed < result.Min {
			result.Min = elapsed
		}
		if elapsed > result.Max {
			result.Max = elapsed
		}
	}
	result.Variant = result.Last.Variant
	result.Mean = result.Total / time.Duration(r.Iterations)
	return result, nil
}

// Compare runs every variant that supports req.Mode and returns the results,
// fastest mean first. req.Variant is ignored.
func (r *Runner) Compare(req dispatch.Request, buf zcurve.Buffer) ([]Result, error) {
	runID := uuid.New()
	entries := r.Dispatcher.Variants(req.Mode)
	ranking := sortedmap.New(len(entries), func(x, y interface{}) bool {
		return x.(Result).Mean < y.(Result).Mean
	})
	for _, e := range entries {
		req.Variant = string(e.Variant)
		result, err := r.run(runID, req, buf)
		if err != nil {
			return nil, fmt.Errorf("benchmarking %s: %w", e.Variant, err)
		}
		ranking.Insert(e.Variant, result)
	}
	return mapslicehelp.SortedMapValues[Result](ranking), nil
}
