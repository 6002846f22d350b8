package model

import "github.com/questx-lab/guildstate/pkg/optional"

type UserPatch struct {
	Username      optional.Value[string]
	Discriminator optional.Value[string]
	Avatar        optional.Value[*string]
	Bot           optional.Value[bool]
}

func DecodeUserPatch(data map[string]any) (UserPatch, error) {
	d := newFieldDecoder(data)
	patch := UserPatch{
		Username:      field[string](d, "username"),
		Discriminator: field[string](d, "discriminator"),
		Avatar:        field[*string](d, "avatar"),
		Bot:           field[bool](d, "bot"),
	}
	return patch, d.err
}
