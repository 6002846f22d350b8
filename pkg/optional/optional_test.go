package optional

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	data := map[string]any{
		"name":      "general",
		"position":  float64(3),
		"nsfw":      false,
		"parent_id": nil,
		"allow":     "1024",
	}

	t.Run("absent key", func(t *testing.T) {
		v, err := Decode[string](data, "topic")
		require.NoError(t, err)
		require.False(t, v.Present())

		topic := "old"
		v.Apply(&topic)
		require.Equal(t, "old", topic)
		require.Equal(t, "fallback", v.OrElse("fallback"))
	})

	t.Run("present zero value", func(t *testing.T) {
		v, err := Decode[bool](data, "nsfw")
		require.NoError(t, err)
		require.True(t, v.Present())

		nsfw := true
		v.Apply(&nsfw)
		require.False(t, nsfw)
	})

	t.Run("explicit null", func(t *testing.T) {
		v, err := Decode[*string](data, "parent_id")
		require.NoError(t, err)

		old := "1"
		parentID := &old
		v.Apply(&parentID)
		require.Nil(t, parentID)
	})

	t.Run("numeric conversion", func(t *testing.T) {
		position, err := Decode[int](data, "position")
		require.NoError(t, err)
		require.Equal(t, 3, position.OrElse(0))

		allow, err := Decode[uint64](data, "allow")
		require.NoError(t, err)
		require.Equal(t, uint64(1024), allow.OrElse(0))
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := Decode[int](map[string]any{"position": []any{1}}, "position")
		require.Error(t, err)
	})
}
