package entity

import (
	"fmt"

	"github.com/fatih/structs"
	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/internal/permission"
	"github.com/questx-lab/guildstate/pkg/collection"
)

type roleFields struct {
	Name        string `structs:"name"`
	Permissions uint64 `structs:"permissions"`
	Position    int    `structs:"position"`
	Color       int    `structs:"color"`
	Hoist       bool   `structs:"hoist"`
	Managed     bool   `structs:"managed"`
	Mentionable bool   `structs:"mentionable"`
}

// Role grants permissions guild-wide. Roles only allow; they never deny. The
// role whose id equals the guild id is the default (@everyone) role.
type Role struct {
	Base
	guildID string
	fields  roleFields
}

func NewRole(data map[string]any, guildID string) (*Role, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	r := &Role{Base: newBase(id), guildID: guildID}
	if err := r.UpdateData(data); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Role) Update(patch model.RolePatch) {
	patch.Name.Apply(&r.fields.Name)
	patch.Permissions.Apply(&r.fields.Permissions)
	patch.Position.Apply(&r.fields.Position)
	patch.Color.Apply(&r.fields.Color)
	patch.Hoist.Apply(&r.fields.Hoist)
	patch.Managed.Apply(&r.fields.Managed)
	patch.Mentionable.Apply(&r.fields.Mentionable)
}

func (r *Role) UpdateData(data map[string]any) error {
	patch, err := model.DecodeRolePatch(data)
	if err != nil {
		return fmt.Errorf("cannot decode role %s: %w", r.ID(), err)
	}

	r.Update(patch)
	return nil
}

func (r *Role) GuildID() string   { return r.guildID }
func (r *Role) Name() string      { return r.fields.Name }
func (r *Role) Position() int     { return r.fields.Position }
func (r *Role) Color() int        { return r.fields.Color }
func (r *Role) Hoist() bool       { return r.fields.Hoist }
func (r *Role) Managed() bool     { return r.fields.Managed }
func (r *Role) Mentionable() bool { return r.fields.Mentionable }

func (r *Role) Permissions() permission.Permission {
	return permission.New(r.fields.Permissions)
}

func (r *Role) IsDefault() bool {
	return r.ID() == r.guildID
}

func (r *Role) Mention() string {
	if r.IsDefault() {
		return "@everyone"
	}

	return fmt.Sprintf("<@&%s>", r.ID())
}

func (r *Role) ToMap() map[string]any {
	return mergeMaps(r.Base.toMap(), structs.Map(r.fields))
}
