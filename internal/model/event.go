package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/guildstate/pkg/collection"
	"github.com/questx-lab/guildstate/pkg/enum"
)

type EventType string

var (
	GuildCreate       = enum.New(EventType("GUILD_CREATE"), "GUILD_CREATE")
	GuildUpdate       = enum.New(EventType("GUILD_UPDATE"), "GUILD_UPDATE")
	GuildDelete       = enum.New(EventType("GUILD_DELETE"), "GUILD_DELETE")
	GuildRoleCreate   = enum.New(EventType("GUILD_ROLE_CREATE"), "GUILD_ROLE_CREATE")
	GuildRoleUpdate   = enum.New(EventType("GUILD_ROLE_UPDATE"), "GUILD_ROLE_UPDATE")
	GuildRoleDelete   = enum.New(EventType("GUILD_ROLE_DELETE"), "GUILD_ROLE_DELETE")
	GuildMemberAdd    = enum.New(EventType("GUILD_MEMBER_ADD"), "GUILD_MEMBER_ADD")
	GuildMemberUpdate = enum.New(EventType("GUILD_MEMBER_UPDATE"), "GUILD_MEMBER_UPDATE")
	GuildMemberRemove = enum.New(EventType("GUILD_MEMBER_REMOVE"), "GUILD_MEMBER_REMOVE")
	ChannelCreate     = enum.New(EventType("CHANNEL_CREATE"), "CHANNEL_CREATE")
	ChannelUpdate     = enum.New(EventType("CHANNEL_UPDATE"), "CHANNEL_UPDATE")
	ChannelDelete     = enum.New(EventType("CHANNEL_DELETE"), "CHANNEL_DELETE")
	MessageCreate     = enum.New(EventType("MESSAGE_CREATE"), "MESSAGE_CREATE")
	MessageDelete     = enum.New(EventType("MESSAGE_DELETE"), "MESSAGE_DELETE")
	UserUpdate        = enum.New(EventType("USER_UPDATE"), "USER_UPDATE")
	PresenceUpdate    = enum.New(EventType("PRESENCE_UPDATE"), "PRESENCE_UPDATE")
	VoiceStateUpdate  = enum.New(EventType("VOICE_STATE_UPDATE"), "VOICE_STATE_UPDATE")
)

// Event is one dispatch delivered by the transport layer, with its payload
// already decoded from JSON.
type Event struct {
	Type EventType      `mapstructure:"t" json:"t"`
	Data map[string]any `mapstructure:"d" json:"d"`
}

// EventRefs holds the ids that route an event payload to the entity it
// targets. Ids missing from the payload are empty.
type EventRefs struct {
	ID        string         `mapstructure:"id"`
	GuildID   string         `mapstructure:"guild_id"`
	ChannelID string         `mapstructure:"channel_id"`
	RoleID    string         `mapstructure:"role_id"`
	UserID    string         `mapstructure:"user_id"`
	Role      map[string]any `mapstructure:"role"`
	User      map[string]any `mapstructure:"user"`
}

func DecodeEventRefs(data map[string]any) (EventRefs, error) {
	var refs EventRefs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &refs,
	})
	if err != nil {
		return EventRefs{}, err
	}

	if err := decoder.Decode(data); err != nil {
		return EventRefs{}, fmt.Errorf("invalid event payload: %w", err)
	}

	if refs.UserID == "" && refs.User != nil {
		if id, err := collection.IDOf(refs.User); err == nil {
			refs.UserID = id
		}
	}

	return refs, nil
}
