package model

import "github.com/questx-lab/guildstate/pkg/optional"

type GuildPatch struct {
	Name     optional.Value[string]
	OwnerID  optional.Value[string]
	Roles    optional.Value[[]map[string]any]
	Members  optional.Value[[]map[string]any]
	Channels optional.Value[[]map[string]any]
}

func DecodeGuildPatch(data map[string]any) (GuildPatch, error) {
	d := newFieldDecoder(data)
	patch := GuildPatch{
		Name:     field[string](d, "name"),
		OwnerID:  field[string](d, "owner_id"),
		Roles:    field[[]map[string]any](d, "roles"),
		Members:  field[[]map[string]any](d, "members"),
		Channels: field[[]map[string]any](d, "channels"),
	}
	return patch, d.err
}
