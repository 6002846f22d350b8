package model

import "github.com/questx-lab/guildstate/pkg/optional"

type RolePatch struct {
	Name        optional.Value[string]
	Permissions optional.Value[uint64]
	Position    optional.Value[int]
	Color       optional.Value[int]
	Hoist       optional.Value[bool]
	Managed     optional.Value[bool]
	Mentionable optional.Value[bool]
}

func DecodeRolePatch(data map[string]any) (RolePatch, error) {
	d := newFieldDecoder(data)
	patch := RolePatch{
		Name:        field[string](d, "name"),
		Permissions: field[uint64](d, "permissions"),
		Position:    field[int](d, "position"),
		Color:       field[int](d, "color"),
		Hoist:       field[bool](d, "hoist"),
		Managed:     field[bool](d, "managed"),
		Mentionable: field[bool](d, "mentionable"),
	}
	return patch, d.err
}
