package entity

import (
	"testing"

	"github.com/questx-lab/guildstate/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func TestUserRegistry(t *testing.T) {
	users := NewUserRegistry()

	u, err := users.Add(userData(testMemberID, "first"))
	require.NoError(t, err)
	require.Equal(t, "first#1337", u.Tag())
	require.Equal(t, "<@"+testMemberID+">", u.Mention())
	require.Equal(t, "2", u.DefaultAvatar())
	require.Nil(t, u.Avatar())

	// Adding a known id keeps the registered user untouched.
	again, err := users.Add(userData(testMemberID, "second"))
	require.NoError(t, err)
	require.Same(t, u, again)
	require.Equal(t, "first", again.Username())

	_, found, err := users.Update("unknown", map[string]any{"username": "x"})
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = users.Update(testMemberID, map[string]any{"bot": true})
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, u.Bot())
	require.Equal(t, "first", u.Username())

	_, err = users.Add(map[string]any{"username": "anonymous"})
	require.True(t, errorx.IsCode(err, errorx.MalformedEntity))

	removed, ok := users.Remove(testMemberID)
	require.True(t, ok)
	require.Same(t, u, removed)
	require.Equal(t, 0, users.Len())
}

func TestUser_ToMap(t *testing.T) {
	u, err := NewUser(userData(testMemberID, "someone"))
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"id":            testMemberID,
		"createdAt":     int64(1462015105796),
		"username":      "someone",
		"discriminator": "1337",
		"avatar":        (*string)(nil),
		"bot":           false,
	}, u.ToMap())
}

func TestRole(t *testing.T) {
	r, err := NewRole(roleData(testRoleID, 8), testGuildID)
	require.NoError(t, err)
	require.False(t, r.IsDefault())
	require.Equal(t, "<@&"+testRoleID+">", r.Mention())
	require.True(t, r.Permissions().HasName("administrator"))

	require.NoError(t, r.UpdateData(map[string]any{"color": 0xff0000, "hoist": true}))
	require.Equal(t, 0xff0000, r.Color())
	require.True(t, r.Hoist())
	require.Equal(t, "role-"+testRoleID, r.Name())
	require.Equal(t, uint64(8), r.Permissions().Allow())
}
