package errors_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percona-lab/percona-dlist/errors"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.NoError(t, errors.Wrap(nil, "read"))
	assert.NoError(t, errors.Wrapf(nil, "read %d", 1))

	err := errors.Wrapf(errors.Wrap(io.EOF, "decode"), "step %d", 3)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "step 3: decode: EOF", err.Error())
	assert.Equal(t, "decode: EOF", errors.Unwrap(err).Error())

	joined := errors.Join(err, errors.New("other"))
	assert.True(t, errors.Is(joined, io.EOF))
}
