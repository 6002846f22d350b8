package entity

import (
	"github.com/questx-lab/guildstate/internal/permission"
	"github.com/questx-lab/guildstate/pkg/collection"
	"github.com/questx-lab/guildstate/pkg/errorx"
)

// PermissionsOf computes the permissions of a guild member in this channel
// from the current state. The member must be in the guild member cache;
// otherwise a NotFound error is returned.
func (c *Channel) PermissionsOf(memberID string) (permission.Permission, error) {
	if c.guild == nil || c.guildFields == nil {
		return permission.Permission{}, errorx.ErrNotGuildChannel
	}

	member, ok := c.guild.members.Get(memberID)
	if !ok {
		return permission.Permission{}, errorx.New(errorx.NotFound,
			"member %s not found in guild %s", memberID, c.guild.ID())
	}

	return resolvePermissions(c.guild.ID(), member, c.guildFields.overwrites), nil
}

// resolvePermissions merges, from lowest to highest precedence: the guild-wide
// permission of the member, the @everyone overwrite, the union of the role
// overwrites, and the overwrite of the member. Administrators skip every
// overwrite.
//
// Role overwrites are unioned before being applied, so the outcome does not
// depend on role order. A bit allowed by one role overwrite and denied by
// another ends up allowed, since the allow union is applied after the deny
// union.
func resolvePermissions(
	guildID string,
	member *Member,
	overwrites *collection.Collection[*PermissionOverwrite],
) permission.Permission {
	allow := member.Permission().Allow()
	if allow&uint64(permission.Administrator) != 0 {
		return permission.NewResolved(uint64(permission.All))
	}

	if everyone, ok := overwrites.Get(guildID); ok {
		allow = permission.ApplyOverwrite(allow, everyone.allow, everyone.deny)
	}

	var roleAllow, roleDeny uint64
	for _, roleID := range member.roles {
		if o, ok := overwrites.Get(roleID); ok {
			roleAllow |= o.allow
			roleDeny |= o.deny
		}
	}
	allow = permission.ApplyOverwrite(allow, roleAllow, roleDeny)

	if own, ok := overwrites.Get(member.ID()); ok {
		allow = permission.ApplyOverwrite(allow, own.allow, own.deny)
	}

	return permission.NewResolved(allow)
}
