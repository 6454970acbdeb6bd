package probe

import (
	"github.com/ValentinKolb/wlconn/lib/display"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rcrowley/go-metrics"
	"sync"
	"sync/atomic"
	"time"
)

// Attempt is the outcome of a single connect attempt
type Attempt struct {
	Duration time.Duration
	Err      error
}

// Result collects the attempts of a probe run
type Result struct {
	Attempts []Attempt
	// Timer holds the attempt latencies in nanoseconds
	Timer    metrics.Timer
	failures *xsync.MapOf[display.Kind, *xsync.Counter]
}

// Succeeded returns the number of attempts without error
func (r *Result) Succeeded() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Err == nil {
			n++
		}
	}
	return n
}

// Failures returns the number of failed attempts per error kind
func (r *Result) Failures() map[display.Kind]int64 {
	out := make(map[display.Kind]int64)
	r.failures.Range(func(kind display.Kind, c *xsync.Counter) bool {
		out[kind] = c.Value()
		return true
	})
	return out
}

// Run makes count connect attempts with c, spread over threads goroutines.
// Every established connection is closed immediately.
func Run(c *display.Connector, name string, count, threads int) *Result {
	r := &Result{
		Attempts: make([]Attempt, count),
		Timer:    metrics.NewTimer(),
		failures: xsync.NewMapOf[display.Kind, *xsync.Counter](),
	}

	var next int64 = -1 // Atomic index of the next attempt
	var wg sync.WaitGroup

	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= count {
					return
				}

				start := time.Now()
				conn, err := c.Connect(name)
				r.Timer.UpdateSince(start)
				r.Attempts[i] = Attempt{Duration: time.Since(start), Err: err}

				if err != nil {
					counter, _ := r.failures.LoadOrCompute(display.KindOf(err), func() *xsync.Counter {
						return xsync.NewCounter()
					})
					counter.Inc()
					continue
				}
				conn.Close()
			}
		}()
	}

	wg.Wait()
	return r
}
