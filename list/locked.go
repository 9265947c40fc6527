package list

import "sync"

// Locked guards a LinkedList with a single mutex. Every method holds the lock
// for the whole operation. The zero value is an empty list.
type Locked[T comparable] struct {
	mu   sync.Mutex
	list LinkedList[T]
}

// NewLocked creates an empty guarded list of the given kind.
func NewLocked[T comparable](kind Kind) (*Locked[T], error) {
	l, err := New[T](kind)
	if err != nil {
		return nil, err
	}

	return &Locked[T]{list: *l}, nil
}

// Do runs fn with the lock held. fn must not retain l after it returns.
func (s *Locked[T]) Do(fn func(l *LinkedList[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.list)
}

func (s *Locked[T]) Append(val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.Append(val)
}

func (s *Locked[T]) InsertAt(index int, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.InsertAt(index, val)
}

func (s *Locked[T]) RemoveAt(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.RemoveAt(index)
}

func (s *Locked[T]) Remove(val T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.Remove(val)
}

func (s *Locked[T]) Contains(val T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.Contains(val)
}

func (s *Locked[T]) Get(index int) (T, bool) { //nolint:ireturn
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.Get(index)
}

func (s *Locked[T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.Size()
}

func (s *Locked[T]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.IsEmpty()
}

func (s *Locked[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.Clear()
}

// Values returns a snapshot of the elements in order.
func (s *Locked[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.Values()
}

func (s *Locked[T]) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.Check()
}

func (s *Locked[T]) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list.String()
}
