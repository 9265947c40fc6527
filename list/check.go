package list

import "github.com/percona-lab/percona-dlist/errors"

// ErrBrokenLink is returned by Check when the node chain is inconsistent.
var ErrBrokenLink = errors.New("broken link")

// Check walks the chain forward from head and backward from tail and returns
// the first structural inconsistency it finds. A non-nil result always means
// a defect in this package.
func (l *LinkedList[T]) Check() error {
	if l.head == nil || l.tail == nil {
		if l.head != l.tail {
			return errors.Wrap(ErrBrokenLink, "only one of head and tail is set")
		}

		if l.count != 0 {
			return errors.Wrapf(ErrBrokenLink, "empty chain with count %d", l.count)
		}

		return nil
	}

	if l.head.prev != nil {
		return errors.Wrap(ErrBrokenLink, "head has a predecessor")
	}

	if l.tail.next != nil {
		return errors.Wrap(ErrBrokenLink, "tail has a successor")
	}

	var last *node[T]
	n := 0

	for elem := l.head; elem != nil; elem = elem.next {
		if n == l.count {
			return errors.Wrapf(ErrBrokenLink, "forward walk exceeds count %d", l.count)
		}

		if elem.prev != last {
			return errors.Wrapf(ErrBrokenLink, "node %d: prev does not mirror the forward chain", n)
		}

		last = elem
		n++
	}

	if n != l.count {
		return errors.Wrapf(ErrBrokenLink, "forward walk visited %d nodes, count is %d", n, l.count)
	}

	if last != l.tail {
		return errors.Wrap(ErrBrokenLink, "forward walk does not end at tail")
	}

	n = 0
	for elem := l.tail; elem != nil; elem = elem.prev {
		if n == l.count {
			return errors.Wrapf(ErrBrokenLink, "backward walk exceeds count %d", l.count)
		}

		last = elem
		n++
	}

	if last != l.head {
		return errors.Wrap(ErrBrokenLink, "backward walk does not end at head")
	}

	return nil
}
