package model

import (
	"time"

	"github.com/questx-lab/guildstate/pkg/optional"
)

type ChannelPatch struct {
	Type    optional.Value[int]
	GuildID optional.Value[string]

	// Guild channels.
	Name                 optional.Value[string]
	Position             optional.Value[int]
	ParentID             optional.Value[*string]
	NSFW                 optional.Value[bool]
	PermissionOverwrites optional.Value[[]map[string]any]

	// Text and news channels.
	Topic            optional.Value[*string]
	RateLimitPerUser optional.Value[int]
	LastMessageID    optional.Value[*string]
	LastPinTimestamp optional.Value[*time.Time]

	// Voice channels.
	Bitrate   optional.Value[int]
	UserLimit optional.Value[int]

	// Private channels.
	Recipients optional.Value[[]map[string]any]
	OwnerID    optional.Value[string]
}

func DecodeChannelPatch(data map[string]any) (ChannelPatch, error) {
	d := newFieldDecoder(data)
	patch := ChannelPatch{
		Type:                 field[int](d, "type"),
		GuildID:              field[string](d, "guild_id"),
		Name:                 field[string](d, "name"),
		Position:             field[int](d, "position"),
		ParentID:             field[*string](d, "parent_id"),
		NSFW:                 field[bool](d, "nsfw"),
		PermissionOverwrites: field[[]map[string]any](d, "permission_overwrites"),
		Topic:                field[*string](d, "topic"),
		RateLimitPerUser:     field[int](d, "rate_limit_per_user"),
		LastMessageID:        field[*string](d, "last_message_id"),
		LastPinTimestamp:     timeField(d, "last_pin_timestamp"),
		Bitrate:              field[int](d, "bitrate"),
		UserLimit:            field[int](d, "user_limit"),
		Recipients:           field[[]map[string]any](d, "recipients"),
		OwnerID:              field[string](d, "owner_id"),
	}
	return patch, d.err
}
