// Package tracked wraps a guarded list with operation logging and metrics.
// The list package itself never logs.
package tracked

import (
	"context"

	"github.com/percona-lab/percona-dlist/errors"
	"github.com/percona-lab/percona-dlist/list"
	"github.com/percona-lab/percona-dlist/log"
	"github.com/percona-lab/percona-dlist/metrics"
)

// Operation names used for log attributes and metric labels.
const (
	OpAppend   = "append"
	OpInsertAt = "insert_at"
	OpRemoveAt = "remove_at"
	OpRemove   = "remove"
	OpContains = "contains"
	OpGet      = "get"
	OpClear    = "clear"
)

// List is a goroutine-safe list that logs every operation at trace level and
// counts it in metrics.
type List[T comparable] struct {
	name string
	list *list.Locked[T]
	lg   *log.Logger
}

// New creates an empty tracked list. The logger is taken from ctx.
func New[T comparable](ctx context.Context, name string, kind list.Kind) (*List[T], error) {
	l, err := list.NewLocked[T](kind)
	if err != nil {
		return nil, errors.Wrapf(err, "new list %q", name)
	}

	t := &List[T]{
		name: name,
		list: l,
		lg:   log.Ctx(ctx).With(log.Scope("list"), log.Name(name)),
	}
	metrics.SetElements(name, 0)

	return t, nil
}

// Name returns the name the list was created with.
func (t *List[T]) Name() string {
	return t.name
}

func (t *List[T]) Append(val T) {
	var size int
	t.list.Do(func(l *list.LinkedList[T]) {
		l.Append(val)
		size = l.Size()
	})

	t.mutated(OpAppend, true, size)
	t.lg.Tracef("append %v: size %d", val, size)
}

func (t *List[T]) InsertAt(index int, val T) {
	var size int
	t.list.Do(func(l *list.LinkedList[T]) {
		l.InsertAt(index, val)
		size = l.Size()
	})

	t.mutated(OpInsertAt, true, size)
	t.lg.Tracef("insert %v at %d: size %d", val, index, size)
}

func (t *List[T]) RemoveAt(index int) bool {
	var removed bool
	var size int
	t.list.Do(func(l *list.LinkedList[T]) {
		removed = l.RemoveAt(index)
		size = l.Size()
	})

	t.mutated(OpRemoveAt, removed, size)
	t.lg.Tracef("remove at %d: removed %t, size %d", index, removed, size)

	return removed
}

func (t *List[T]) Remove(val T) bool {
	var removed bool
	var size int
	t.list.Do(func(l *list.LinkedList[T]) {
		removed = l.Remove(val)
		size = l.Size()
	})

	t.mutated(OpRemove, removed, size)
	t.lg.Tracef("remove %v: removed %t, size %d", val, removed, size)

	return removed
}

func (t *List[T]) Contains(val T) bool {
	found := t.list.Contains(val)
	metrics.AddOperation(OpContains, found)

	return found
}

func (t *List[T]) Get(index int) (T, bool) { //nolint:ireturn
	val, ok := t.list.Get(index)
	metrics.AddOperation(OpGet, ok)

	return val, ok
}

func (t *List[T]) Size() int {
	return t.list.Size()
}

func (t *List[T]) Clear() {
	t.list.Clear()
	t.mutated(OpClear, true, 0)
	t.lg.Trace("clear")
}

func (t *List[T]) Values() []T {
	return t.list.Values()
}

func (t *List[T]) String() string {
	return t.list.String()
}

// Check verifies the structure of the underlying list. Failures are logged
// and counted as invariant violations.
func (t *List[T]) Check() error {
	err := t.list.Check()
	if err != nil {
		metrics.AddInvariantViolation()
		t.lg.Error(err, "structural check")

		return errors.Wrapf(err, "list %q", t.name)
	}

	return nil
}

// Close drops the list's metrics.
func (t *List[T]) Close() {
	metrics.ForgetList(t.name)
}

func (t *List[T]) mutated(op string, ok bool, size int) {
	metrics.AddOperation(op, ok)
	metrics.SetElements(t.name, size)
}
