package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("compare by code", func(t *testing.T) {
		err := New(NotFound, "member %s not found", "1")
		require.Equal(t, "member 1 not found", err.Error())
		require.True(t, errors.Is(err, Error{Code: NotFound}))
		require.False(t, errors.Is(err, Error{Code: MalformedEntity}))
	})

	t.Run("wrapped error", func(t *testing.T) {
		err := fmt.Errorf("cannot add channel: %w", ErrMissingID)
		require.True(t, IsCode(err, MalformedEntity))
		require.False(t, IsCode(err, InvalidArgument))
		require.False(t, IsCode(errors.New("plain"), MalformedEntity))
	})
}
