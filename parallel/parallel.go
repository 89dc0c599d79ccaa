// Package parallel generates a full curve with several goroutines, each
// decoding its own contiguous part of the buffer.
package parallel

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdok/zcurve/zcurve"
)

const (
	DefaultWorkers = 3
	// blockSize is how many indices a worker decodes between cancellation checks
	blockSize = 1 << 12
)

// Starter starts run for the given worker. When it returns an error run must
// not have been started.
type Starter func(worker int, run func()) error

// GoStarter runs every worker in its own goroutine.
func GoStarter(_ int, run func()) error {
	go run()
	return nil
}

// Generator is a zcurve.Generator that spreads the work over Workers goroutines.
type Generator struct {
	Workers int
	Start   Starter
}

func New(workers int) *Generator {
	return &Generator{Workers: workers, Start: GoStarter}
}

// Generate writes the full curve into buf using the given number of workers.
func Generate(degree zcurve.Degree, buf zcurve.Buffer, workers int) error {
	return New(workers).Generate(degree, buf)
}

// Generate returns once every started worker is done. If a worker cannot be
// started the others are cancelled and the contents of buf are undefined.
func (g *Generator) Generate(degree zcurve.Degree, buf zcurve.Buffer) error {
	if err := zcurve.ValidateDegree(degree); err != nil {
		return err
	}
	if err := buf.Fits(degree); err != nil {
		return err
	}
	start := g.Start
	if start == nil {
		start = GoStarter
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ranges := Partition(zcurve.Size(degree), g.Workers)
	wg := sync.WaitGroup{}
	for i, r := range ranges {
		wg.Add(1)
		err := start(i, func(r Range) func() {
			return func() {
				defer wg.Done()
				fill(ctx, degree, buf, r)
			}
		}(r))
		if err != nil {
			wg.Done()
			cancel()
			wg.Wait()
			return fmt.Errorf("worker %d of %d: %w: %v", i+1, len(ranges), zcurve.ErrThreadStart, err)
		}
	}
	wg.Wait()
	return nil
}

// fill decodes r into buf block by block and gives up once ctx is done.
func fill(ctx context.Context, degree zcurve.Degree, buf zcurve.Buffer, r Range) {
	for from := r.From; from < r.To; from += blockSize {
		if ctx.Err() != nil {
			return
		}
		to := min(from+blockSize, r.To)
		zcurve.Fill(degree, buf.Slice(int(from), int(to)), from, to)
	}
}
