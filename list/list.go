// Package list provides a generic doubly linked list.
//
// LinkedList is not safe for concurrent use. Wrap it in a Locked when more
// than one goroutine touches the same instance.
package list

import (
	"fmt"
	"iter"
	"strings"
)

// LinkedList is a doubly linked list. The zero value is an empty list.
type LinkedList[T comparable] struct {
	head  *node[T]
	tail  *node[T]
	count int
}

// node is an element in the doubly linked list. The next links form the only
// ownership chain; prev always mirrors it.
type node[T comparable] struct {
	prev *node[T]
	next *node[T]
	val  T
}

// Append adds a new element to the end of the list.
func (l *LinkedList[T]) Append(val T) {
	elem := &node[T]{val: val}
	l.count++

	if l.head == nil {
		l.head = elem
		l.tail = elem
		return
	}

	l.tail.next = elem
	elem.prev = l.tail
	l.tail = elem
}

// InsertAt inserts val so that it becomes the element at index, shifting the
// following elements back by one. An index at or past the end appends, a
// negative index inserts at the front.
func (l *LinkedList[T]) InsertAt(index int, val T) {
	if l.head == nil || index >= l.count {
		l.Append(val)
		return
	}

	at := l.head
	for range max(index, 0) {
		at = at.next
	}

	elem := &node[T]{prev: at.prev, next: at, val: val}
	if at.prev == nil {
		l.head = elem
	} else {
		at.prev.next = elem
	}

	at.prev = elem
	l.count++
}

// RemoveAt removes the element at index and reports whether anything was
// removed. Index 0 is never removed: RemoveAt(0) always returns false.
func (l *LinkedList[T]) RemoveAt(index int) bool {
	if index < 1 {
		return false
	}

	elem := l.head
	for i := 0; elem != nil && i < index; i++ {
		elem = elem.next
	}

	if elem == nil {
		return false
	}

	l.unlink(elem)
	return true
}

// Remove removes every element equal to val. It reports whether at least one
// element was removed.
func (l *LinkedList[T]) Remove(val T) bool {
	removed := false

	for elem := l.head; elem != nil; {
		next := elem.next
		if elem.val == val {
			l.unlink(elem)
			removed = true
		}
		elem = next
	}

	return removed
}

// unlink detaches elem from the chain, fixes the boundary link of the new
// head or tail and clears elem's own links.
func (l *LinkedList[T]) unlink(elem *node[T]) {
	if elem.prev == nil {
		l.head = elem.next
	} else {
		elem.prev.next = elem.next
	}

	if elem.next == nil {
		l.tail = elem.prev
	} else {
		elem.next.prev = elem.prev
	}

	elem.prev = nil
	elem.next = nil
	l.count--
}

// Contains reports whether the list holds an element equal to val.
func (l *LinkedList[T]) Contains(val T) bool {
	for elem := l.head; elem != nil; elem = elem.next {
		if elem.val == val {
			return true
		}
	}

	return false
}

// Get returns the element at index. The second value is false when index is
// outside of the list.
func (l *LinkedList[T]) Get(index int) (T, bool) { //nolint:ireturn
	if index < 0 {
		var zero T
		return zero, false
	}

	elem := l.head
	for i := 0; elem != nil && i < index; i++ {
		elem = elem.next
	}

	if elem == nil {
		var zero T
		return zero, false
	}

	return elem.val, true
}

// Size returns the number of elements.
func (l *LinkedList[T]) Size() int {
	return l.count
}

// IsEmpty checks if the list is empty.
func (l *LinkedList[T]) IsEmpty() bool {
	return l.head == nil
}

// Clear removes all elements from the list.
func (l *LinkedList[T]) Clear() {
	for elem := l.head; elem != nil; {
		next := elem.next
		elem.prev = nil
		elem.next = nil
		elem = next
	}

	l.head = nil
	l.tail = nil
	l.count = 0
}

// Values returns the elements in order.
func (l *LinkedList[T]) Values() []T {
	vals := make([]T, 0, l.count)
	for elem := l.head; elem != nil; elem = elem.next {
		vals = append(vals, elem.val)
	}

	return vals
}

// All returns an iterator for all elements in the list.
func (l *LinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := l.head; e != nil; e = e.next {
			if !yield(e.val) {
				return
			}
		}
	}
}

// Backward returns an iterator for all elements in the list in reverse order.
func (l *LinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := l.tail; e != nil; e = e.prev {
			if !yield(e.val) {
				return
			}
		}
	}
}

// String renders the elements in order, separated by commas.
func (l *LinkedList[T]) String() string {
	var sb strings.Builder

	for elem := l.head; elem != nil; elem = elem.next {
		if elem != l.head {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, elem.val)
	}

	return sb.String()
}
