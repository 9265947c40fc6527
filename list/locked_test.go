package list_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/percona-lab/percona-dlist/list"
)

func TestLockedConcurrent(t *testing.T) {
	t.Parallel()

	l, err := list.NewLocked[int](list.KindLinked)
	require.NoError(t, err)

	const (
		writers = 8
		perW    = 200
	)

	var grp errgroup.Group
	for w := range writers {
		grp.Go(func() error {
			for i := range perW {
				if i%2 == 0 {
					l.Append(w)
				} else {
					l.InsertAt(i, w)
				}
				l.Contains(w)
				l.Get(i)
			}
			return l.Check()
		})
	}
	require.NoError(t, grp.Wait())

	assert.Equal(t, writers*perW, l.Size())
	require.NoError(t, l.Check())

	for w := range writers {
		require.True(t, l.Remove(w))
	}
	assert.True(t, l.IsEmpty())
	require.NoError(t, l.Check())
}

func TestLockedDo(t *testing.T) {
	t.Parallel()

	var l list.Locked[string]
	l.Append("b")
	l.InsertAt(0, "a")

	var size int
	l.Do(func(l *list.LinkedList[string]) {
		l.Append("c")
		size = l.Size()
	})

	assert.Equal(t, 3, size)
	assert.Equal(t, []string{"a", "b", "c"}, l.Values())
	assert.Equal(t, "a, b, c", l.String())
	assert.False(t, l.RemoveAt(0))
	assert.True(t, l.RemoveAt(2))

	v, ok := l.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	l.Clear()
	assert.True(t, l.IsEmpty())
}
