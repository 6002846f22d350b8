package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	type subject string
	type wireType int

	role := New(subject("role"), "role")
	member := New(subject("member"), "member")
	text := New(wireType(0), "GUILD_TEXT")
	voice := New(wireType(2), "GUILD_VOICE")

	tests := []struct {
		name   string
		lookup func() (any, error)
		want   any
	}{
		{
			name:   "string value by name",
			lookup: func() (any, error) { return ToEnum[subject]("member") },
			want:   member,
		},
		{
			name:   "int value by name",
			lookup: func() (any, error) { return ToEnum[wireType]("GUILD_VOICE") },
			want:   voice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.lookup()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("names are case sensitive", func(t *testing.T) {
		_, err := ToEnum[wireType]("guild_text")
		require.Error(t, err)
	})

	t.Run("to string", func(t *testing.T) {
		require.Equal(t, "GUILD_TEXT", ToString(text))
		require.Equal(t, "role", ToString(role))
		require.Empty(t, ToString(wireType(42)))
	})

	t.Run("values keep registration order", func(t *testing.T) {
		require.Equal(t, []subject{role, member}, Values[subject]())

		// Registering a known value again renames it without duplicating it.
		New(wireType(0), "TEXT")
		require.Equal(t, []wireType{text, voice}, Values[wireType]())
		require.Equal(t, "TEXT", ToString(text))
	})

	t.Run("unregistered type", func(t *testing.T) {
		type unknown string

		_, err := ToEnum[unknown]("x")
		require.Error(t, err)
		require.Nil(t, Values[unknown]())
	})
}
