package list_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percona-lab/percona-dlist/list"
)

func TestKind(t *testing.T) {
	t.Parallel()

	t.Run("parse", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"linked", "LinkedList", "LINKED"} {
			kind, err := list.ParseKind(s)
			require.NoError(t, err, s)
			assert.Equal(t, list.KindLinked, kind)
		}

		_, err := list.ParseKind("array")
		require.ErrorIs(t, err, list.ErrUnknownKind)
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "linked", list.KindLinked.String())
		assert.Equal(t, "Kind(7)", list.Kind(7).String())
	})

	t.Run("new", func(t *testing.T) {
		t.Parallel()

		l, err := list.New[string](list.KindLinked)
		require.NoError(t, err)
		assert.True(t, l.IsEmpty())

		_, err = list.New[string](list.Kind(7))
		require.ErrorIs(t, err, list.ErrUnknownKind)

		_, err = list.NewLocked[string](list.Kind(7))
		require.ErrorIs(t, err, list.ErrUnknownKind)
	})
}
