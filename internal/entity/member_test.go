package entity

import (
	"testing"

	"github.com/questx-lab/guildstate/internal/permission"
	"github.com/questx-lab/guildstate/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	users := NewUserRegistry()
	g := newTestGuild(t, users)

	t.Run("user from payload", func(t *testing.T) {
		m, ok := g.Member(testMemberID)
		require.True(t, ok)
		require.Equal(t, "offline", m.Status())
		require.Equal(t, "user-"+testMemberID, m.DisplayName())
		require.Equal(t, "user-"+testMemberID+"#1337", m.Tag())
		require.Equal(t, "<@!"+testMemberID+">", m.Mention())
		require.Equal(t, []string{testRoleID}, m.Roles())
		require.NotNil(t, m.JoinedAt())
		require.Equal(t, int64(1462104000000), m.JoinedAt().UnixMilli())
	})

	t.Run("user already registered", func(t *testing.T) {
		_, err := users.Add(userData("600000000000000000", "known"))
		require.NoError(t, err)

		m, err := NewMember(map[string]any{"id": "600000000000000000", "roles": []string{}}, g, users)
		require.NoError(t, err)
		require.Equal(t, "known", m.Username())
	})

	t.Run("unresolved user", func(t *testing.T) {
		_, err := NewMember(map[string]any{"id": "700000000000000000"}, g, users)
		require.True(t, errorx.IsCode(err, errorx.MalformedEntity))
		require.Contains(t, err.Error(), "user associated with member not found")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := NewMember(map[string]any{"nick": "ghost"}, g, users)
		require.ErrorIs(t, err, errorx.ErrMissingID)
	})

	t.Run("missing guild", func(t *testing.T) {
		_, err := NewMember(memberData(testMemberID), nil, users)
		require.True(t, errorx.IsCode(err, errorx.BadRequest))
	})
}

func TestMember_Update(t *testing.T) {
	users := NewUserRegistry()
	g := newTestGuild(t, users)
	m, _ := g.Member(testMemberID)

	require.NoError(t, m.UpdateData(map[string]any{
		"nick":          "nicky",
		"status":        "online",
		"client_status": map[string]any{"desktop": "online"},
	}))
	require.Equal(t, "nicky", m.DisplayName())
	require.Equal(t, "online", m.Status())
	require.Equal(t, map[string]string{"web": "offline", "desktop": "online", "mobile": "offline"}, m.ClientStatus())
	require.Equal(t, []string{testRoleID}, m.Roles())

	// An explicit null clears the nickname.
	require.NoError(t, m.UpdateData(map[string]any{"nick": nil}))
	require.Equal(t, "", m.Nick())
	require.Equal(t, "user-"+testMemberID, m.DisplayName())

	// An explicit empty list clears the roles.
	require.NoError(t, m.UpdateData(map[string]any{"roles": []string{}}))
	require.Empty(t, m.Roles())
	require.Equal(t, bits(permission.ViewChannel), m.Permission().Allow())

	require.NoError(t, m.UpdateData(map[string]any{
		"user": map[string]any{"id": testMemberID, "username": "renamed"},
	}))
	u, _ := users.Get(testMemberID)
	require.Equal(t, "renamed", u.Username())
	require.Equal(t, "1337", u.Discriminator())
}

func TestMember_UpdateStatus(t *testing.T) {
	g := newTestGuild(t, NewUserRegistry())
	m, _ := g.Member(testMemberID)

	require.NoError(t, m.UpdateData(map[string]any{"status": "dnd"}))
	require.Equal(t, "dnd", m.Status())

	require.NoError(t, m.UpdateData(map[string]any{"nick": "busy"}))
	require.Equal(t, "dnd", m.Status())

	// An explicit null resets to offline.
	require.NoError(t, m.UpdateData(map[string]any{"status": nil}))
	require.Equal(t, "offline", m.Status())
}

func TestMember_UpdateUnregisteredUser(t *testing.T) {
	users := NewUserRegistry()
	g := newTestGuild(t, users)
	m, _ := g.Member(testMemberID)

	_, ok := users.Remove(testMemberID)
	require.True(t, ok)
	_, ok = m.User()
	require.False(t, ok)

	require.NoError(t, m.UpdateData(map[string]any{
		"user": userData(testMemberID, "returned"),
	}))

	u, ok := users.Get(testMemberID)
	require.True(t, ok)
	require.Equal(t, "returned", u.Username())
	require.Equal(t, "returned", m.Username())

	err := m.UpdateData(map[string]any{
		"nick": "ignored",
		"user": map[string]any{"username": "anonymous"},
	})
	require.ErrorIs(t, err, errorx.ErrMissingID)
	require.Equal(t, "", m.Nick())
}

func TestMember_VoiceState(t *testing.T) {
	g := newTestGuild(t, NewUserRegistry())
	m, _ := g.Member(testMemberID)

	require.NoError(t, m.UpdateData(map[string]any{"nick": "quiet"}))
	require.False(t, m.VoiceState().Mute())

	require.NoError(t, m.UpdateData(map[string]any{
		"mute":       true,
		"self_deaf":  true,
		"channel_id": "800000000000000000",
	}))
	require.True(t, m.VoiceState().Mute())
	require.True(t, m.VoiceState().SelfDeaf())
	require.False(t, m.VoiceState().Deaf())
	require.Equal(t, "800000000000000000", m.VoiceState().ChannelID())
}

func TestMember_Permission(t *testing.T) {
	g := newTestGuild(t, NewUserRegistry())

	owner, _ := g.Owner()
	require.Equal(t, uint64(permission.All), owner.Permission().Allow())
	require.False(t, owner.Permission().Resolved())

	m, _ := g.Member(testMemberID)
	require.Equal(t, bits(permission.ViewChannel, permission.SendMessages), m.Permission().Allow())
	require.True(t, m.HasRole(testGuildID))

	_, err := g.UpsertRole(roleData("900000000000000000", bits(permission.Administrator)))
	require.NoError(t, err)
	require.NoError(t, m.UpdateData(map[string]any{"roles": []string{"900000000000000000"}}))
	require.Equal(t, uint64(permission.All), m.Permission().Allow())
}

func TestMember_SharedUser(t *testing.T) {
	users := NewUserRegistry()
	first := newTestGuild(t, users)

	second, err := NewGuild(map[string]any{
		"id":      "100000000000000000",
		"roles":   []map[string]any{roleData("100000000000000000", 0)},
		"members": []map[string]any{memberData(testMemberID)},
	}, users, first.cfg)
	require.NoError(t, err)

	_, _, err = users.Update(testMemberID, map[string]any{"username": "everywhere"})
	require.NoError(t, err)

	for _, g := range []*Guild{first, second} {
		m, ok := g.Member(testMemberID)
		require.True(t, ok)
		require.Equal(t, "everywhere", m.Username())
	}
	require.Equal(t, 2, users.Len())
}
