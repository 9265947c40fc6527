// Package fuzz drives lists with random operations and checks them against a
// slice model after every step.
package fuzz

import (
	"context"
	"fmt"
	"maps"
	"math/rand"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/percona-lab/percona-dlist/config"
	"github.com/percona-lab/percona-dlist/errors"
	"github.com/percona-lab/percona-dlist/list"
	"github.com/percona-lab/percona-dlist/log"
	"github.com/percona-lab/percona-dlist/metrics"
	"github.com/percona-lab/percona-dlist/tracked"
)

// ErrDiverged is returned when a list disagrees with its model.
var ErrDiverged = errors.New("list diverged from model")

// ctxCheckInterval is how many steps a worker applies between context checks.
const ctxCheckInterval = 256

// Options configure a fuzz run. Zero fields take the config defaults.
type Options struct {
	Steps    int
	Workers  int
	Seed     int64
	MaxValue int
	Kind     list.Kind
}

func (o Options) withDefaults() Options {
	if o.Steps <= 0 {
		o.Steps = config.DefaultFuzzSteps
	}
	if o.Workers <= 0 {
		o.Workers = config.DefaultFuzzWorkers
	}
	if o.MaxValue <= 0 {
		o.MaxValue = config.DefaultFuzzMaxValue
	}

	return o
}

// Report summarizes a fuzz run.
type Report struct {
	Seed    int64
	Workers int
	// Steps is the number of steps applied and verified across all workers.
	Steps int64
	// Ops counts applied steps by operation name.
	Ops     map[string]int64
	Elapsed time.Duration
}

func (r Report) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s steps across %d workers (seed %d) in %s",
		humanize.Comma(r.Steps), r.Workers, r.Seed, r.Elapsed.Round(time.Millisecond))

	for _, op := range slices.Sorted(maps.Keys(r.Ops)) {
		fmt.Fprintf(&sb, "\n  %-10s %s", op, humanize.Comma(r.Ops[op]))
	}

	return sb.String()
}

// Run fuzzes opts.Workers independent lists concurrently. Worker i seeds its
// generator with opts.Seed+i, so a run is reproducible from its seed. The
// first divergence or structural defect stops the run.
func Run(ctx context.Context, opts Options) (Report, error) {
	opts = opts.withDefaults()
	startedAt := time.Now()

	rep := Report{
		Seed:    opts.Seed,
		Workers: opts.Workers,
		Ops:     make(map[string]int64),
	}

	mu := sync.Mutex{}
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.NumCPU())

	for id := range opts.Workers {
		grp.Go(func() error {
			ops, err := runWorker(grpCtx, id, opts)

			mu.Lock()
			for op, n := range ops {
				rep.Ops[op] += n
				rep.Steps += n
			}
			mu.Unlock()

			return err
		})
	}

	err := grp.Wait()
	rep.Elapsed = time.Since(startedAt)

	return rep, errors.Wrap(err, "fuzz")
}

func runWorker(ctx context.Context, id int, opts Options) (map[string]int64, error) {
	ctx = log.WithAttrs(ctx, log.Scope("fuzz"), log.Worker(id))
	lg := log.Ctx(ctx)

	l, err := tracked.New[int](ctx, fmt.Sprintf("fuzz-%d", id), opts.Kind)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	w := &worker{
		rnd:      rand.New(rand.NewSource(opts.Seed + int64(id))), //nolint:gosec
		list:     l,
		model:    []int{},
		maxValue: opts.MaxValue,
	}

	ops := make(map[string]int64)
	done := 0

	defer func() { metrics.AddFuzzSteps(done) }()

	for step := range opts.Steps {
		if step%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ops, err //nolint:wrapcheck
			}
		}

		op, err := w.step()
		ops[op]++
		if err != nil {
			return ops, errors.Wrapf(err, "worker %d, step %d, seed %d", id, step, opts.Seed)
		}
		done++
	}

	lg.Debugf("%s steps verified, final size %d", humanize.Comma(int64(done)), l.Size())

	return ops, nil
}

type worker struct {
	rnd      *rand.Rand
	list     *tracked.List[int]
	model    []int
	maxValue int
}

// step applies one random operation to both the list and the model and
// compares them.
func (w *worker) step() (string, error) {
	v := w.rnd.Intn(w.maxValue)
	i := w.rnd.Intn(len(w.model)+3) - 1

	var op string

	switch w.rnd.Intn(7) {
	case 0, 1:
		op = tracked.OpAppend
		w.list.Append(v)
		w.model = append(w.model, v)

	case 2:
		op = tracked.OpInsertAt
		w.list.InsertAt(i, v)
		w.model = slices.Insert(w.model, min(max(i, 0), len(w.model)), v)

	case 3:
		op = tracked.OpRemoveAt
		want := i >= 1 && i < len(w.model)
		if want {
			w.model = slices.Delete(w.model, i, i+1)
		}

		if got := w.list.RemoveAt(i); got != want {
			return op, errors.Wrapf(ErrDiverged, "remove at %d: want %t, got %t", i, want, got)
		}

	case 4:
		op = tracked.OpRemove
		want := slices.Contains(w.model, v)
		w.model = slices.DeleteFunc(w.model, func(x int) bool { return x == v })

		if got := w.list.Remove(v); got != want {
			return op, errors.Wrapf(ErrDiverged, "remove %d: want %t, got %t", v, want, got)
		}

	case 5:
		op = tracked.OpContains
		want := slices.Contains(w.model, v)

		if got := w.list.Contains(v); got != want {
			return op, errors.Wrapf(ErrDiverged, "contains %d: want %t, got %t", v, want, got)
		}

	case 6:
		op = tracked.OpGet
		val, ok := w.list.Get(i)
		inRange := i >= 0 && i < len(w.model)

		if ok != inRange || (ok && val != w.model[i]) {
			return op, errors.Wrapf(ErrDiverged, "get %d: got %d (found %t)", i, val, ok)
		}
	}

	return op, w.verify()
}

func (w *worker) verify() error {
	err := w.list.Check()
	if err != nil {
		return err //nolint:wrapcheck
	}

	if size := w.list.Size(); size != len(w.model) {
		return errors.Wrapf(ErrDiverged, "size: want %d, got %d", len(w.model), size)
	}

	if vals := w.list.Values(); !slices.Equal(vals, w.model) {
		return errors.Wrapf(ErrDiverged, "content: want %v, got %v", w.model, vals)
	}

	return nil
}
