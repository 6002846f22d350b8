package idutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreatedAt(t *testing.T) {
	t.Run("valid snowflake", func(t *testing.T) {
		// (175928847299117063 >> 22) + 1420070400000 = 1462015105796
		ms, ok := Timestamp("175928847299117063")
		require.True(t, ok)
		require.Equal(t, int64(1462015105796), ms)
		require.Equal(t, time.UnixMilli(1462015105796).UTC(), CreatedAt("175928847299117063"))
	})

	t.Run("epoch", func(t *testing.T) {
		require.Equal(t, time.UnixMilli(PlatformEpoch).UTC(), CreatedAt("0"))
	})

	t.Run("invalid snowflake", func(t *testing.T) {
		_, ok := Timestamp("abc")
		require.False(t, ok)
		require.True(t, CreatedAt("").IsZero())
		require.True(t, CreatedAt("-5").IsZero())
	})
}
