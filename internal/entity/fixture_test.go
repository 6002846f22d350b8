package entity

import (
	"testing"

	"github.com/questx-lab/guildstate/config"
	"github.com/questx-lab/guildstate/internal/permission"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID   = "81384788765712384"
	testOwnerID   = "80351110224678912"
	testMemberID  = "175928847299117063"
	testRoleID    = "222078108977594368"
	testChannelID = "381870553235193857"
)

func bits(flags ...permission.Flag) uint64 {
	var allow uint64
	for _, f := range flags {
		allow |= uint64(f)
	}
	return allow
}

func userData(id, username string) map[string]any {
	return map[string]any{
		"id":            id,
		"username":      username,
		"discriminator": "1337",
		"avatar":        nil,
	}
}

func roleData(id string, allow uint64) map[string]any {
	return map[string]any{
		"id":          id,
		"name":        "role-" + id,
		"permissions": allow,
	}
}

func memberData(id string, roles ...string) map[string]any {
	if roles == nil {
		roles = []string{}
	}
	return map[string]any{
		"user":      userData(id, "user-"+id),
		"roles":     roles,
		"joined_at": "2016-05-01T12:00:00.000000+00:00",
	}
}

func overwriteData(id, typ string, allow, deny uint64) map[string]any {
	return map[string]any{
		"id":    id,
		"type":  typ,
		"allow": allow,
		"deny":  deny,
	}
}

func textChannelData(id, name string, overwrites ...map[string]any) map[string]any {
	if overwrites == nil {
		overwrites = []map[string]any{}
	}
	return map[string]any{
		"id":                    id,
		"type":                  0,
		"name":                  name,
		"position":              1,
		"permission_overwrites": overwrites,
	}
}

// newTestGuild builds a guild whose default role allows viewing channels and
// whose only other role allows sending messages.
func newTestGuild(t *testing.T, users *UserRegistry) *Guild {
	t.Helper()

	g, err := NewGuild(map[string]any{
		"id":       testGuildID,
		"name":     "test guild",
		"owner_id": testOwnerID,
		"roles": []map[string]any{
			roleData(testGuildID, bits(permission.ViewChannel)),
			roleData(testRoleID, bits(permission.SendMessages)),
		},
		"members": []map[string]any{
			memberData(testOwnerID),
			memberData(testMemberID, testRoleID),
		},
	}, users, config.Default().Cache)
	require.NoError(t, err)
	return g
}
