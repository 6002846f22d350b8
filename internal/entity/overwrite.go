package entity

import (
	"fmt"

	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/pkg/collection"
	"github.com/questx-lab/guildstate/pkg/enum"
)

type OverwriteType string

var (
	OverwriteRole   = enum.New(OverwriteType("role"), "role")
	OverwriteMember = enum.New(OverwriteType("member"), "member")
)

// PermissionOverwrite adjusts the permissions of one role or member in one
// channel. Allow and deny are stored as received, even if they overlap.
type PermissionOverwrite struct {
	Base
	typ   OverwriteType
	allow uint64
	deny  uint64
}

func NewPermissionOverwrite(data map[string]any) (*PermissionOverwrite, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	raw, err := model.DecodeOverwriteData(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode overwrite %s: %w", id, err)
	}

	return &PermissionOverwrite{
		Base:  newBase(id),
		typ:   parseOverwriteType(raw.Type),
		allow: raw.Allow,
		deny:  raw.Deny,
	}, nil
}

// parseOverwriteType accepts the named and the numeric wire forms. Unknown
// values are kept verbatim.
func parseOverwriteType(s string) OverwriteType {
	switch s {
	case "0":
		return OverwriteRole
	case "1":
		return OverwriteMember
	}

	if t, err := enum.ToEnum[OverwriteType](s); err == nil {
		return t
	}

	return OverwriteType(s)
}

func (o *PermissionOverwrite) Type() OverwriteType { return o.typ }
func (o *PermissionOverwrite) Allow() uint64       { return o.allow }
func (o *PermissionOverwrite) Deny() uint64        { return o.deny }

func (o *PermissionOverwrite) ToMap() map[string]any {
	return mergeMaps(o.Base.toMap(), map[string]any{
		"type":  string(o.typ),
		"allow": o.allow,
		"deny":  o.deny,
	})
}
