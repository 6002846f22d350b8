package testutil

import "github.com/questx-lab/guildstate/internal/model"

const (
	GuildID        = "81384788765712384"
	OwnerID        = "80351110224678912"
	MemberID       = "175928847299117063"
	ModeratorRole  = "222078108977594368"
	GeneralChannel = "381870553235193857"
	RulesChannel   = "381870553235193858"
	VoiceChannel   = "381870553235193859"
)

// Bits of the chat platform permission mask used by the fixtures.
const (
	viewChannel  = 1 << 10
	sendMessages = 1 << 11
	kickMembers  = 1 << 1
)

func User(id, username string) map[string]any {
	return map[string]any{
		"id":            id,
		"username":      username,
		"discriminator": "0001",
		"avatar":        nil,
		"bot":           false,
	}
}

// GuildCreate returns the snapshot of a small guild. The default role can
// view channels, moderators can also send messages and kick members. The
// rules channel denies sending messages to everyone.
func GuildCreate() model.Event {
	return model.Event{
		Type: model.GuildCreate,
		Data: map[string]any{
			"id":       GuildID,
			"name":     "fixture guild",
			"owner_id": OwnerID,
			"roles": []any{
				map[string]any{"id": GuildID, "name": "@everyone", "permissions": viewChannel},
				map[string]any{"id": ModeratorRole, "name": "moderator", "permissions": sendMessages | kickMembers, "hoist": true},
			},
			"members": []any{
				map[string]any{"user": User(OwnerID, "owner"), "roles": []any{}},
				map[string]any{"user": User(MemberID, "member"), "roles": []any{ModeratorRole}, "nick": "mod"},
			},
			"channels": []any{
				map[string]any{
					"id":                    GeneralChannel,
					"type":                  0,
					"name":                  "general",
					"position":              0,
					"permission_overwrites": []any{},
				},
				map[string]any{
					"id":       RulesChannel,
					"type":     0,
					"name":     "rules",
					"position": 1,
					"permission_overwrites": []any{
						map[string]any{"id": GuildID, "type": "role", "allow": 0, "deny": sendMessages},
					},
				},
				map[string]any{
					"id":      VoiceChannel,
					"type":    2,
					"name":    "Lounge",
					"bitrate": 64000,
				},
			},
		},
	}
}
