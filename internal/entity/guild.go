package entity

import (
	"fmt"

	"github.com/questx-lab/guildstate/config"
	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/internal/permission"
	"github.com/questx-lab/guildstate/pkg/collection"
	"github.com/questx-lab/guildstate/pkg/errorx"
)

// Guild owns its roles, members and channels. Members and channels refer back
// to it without owning it.
type Guild struct {
	Base
	name    string
	ownerID string

	roles    *collection.Collection[*Role]
	members  *collection.Collection[*Member]
	channels *collection.Collection[*Channel]

	users *UserRegistry
	cfg   config.CacheConfigs
}

// NewGuild builds a guild from a snapshot payload, including the roles,
// members and channels it carries.
func NewGuild(data map[string]any, users *UserRegistry, cfg config.CacheConfigs) (*Guild, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	g := &Guild{Base: newBase(id), users: users, cfg: cfg}
	g.roles = collection.New[*Role](0, func(data map[string]any) (*Role, error) {
		return NewRole(data, g.ID())
	})
	g.members = collection.New[*Member](cfg.MemberLimit, func(data map[string]any) (*Member, error) {
		return NewMember(data, g, g.users)
	})
	g.channels = collection.New[*Channel](0, func(data map[string]any) (*Channel, error) {
		return NewChannel(data, g, g.users, g.cfg.MessageLimit)
	})

	if err := g.UpdateData(data); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Guild) UpdateData(data map[string]any) error {
	patch, err := model.DecodeGuildPatch(data)
	if err != nil {
		return fmt.Errorf("cannot decode guild %s: %w", g.ID(), err)
	}

	return g.Update(patch)
}

// Update applies a partial update. Roles, members and channels carried by the
// payload are added or updated in place; entities missing from the payload
// are kept. Every listed entity is checked first, so a failed update leaves
// the guild unchanged.
func (g *Guild) Update(patch model.GuildPatch) error {
	roles := patch.Roles.OrElse(nil)
	channels := patch.Channels.OrElse(nil)
	members := patch.Members.OrElse(nil)

	if err := g.check(roles, channels, members); err != nil {
		return fmt.Errorf("invalid guild %s: %w", g.ID(), err)
	}

	patch.Name.Apply(&g.name)
	patch.OwnerID.Apply(&g.ownerID)

	// Roles go first so that members and channels see them.
	for _, data := range roles {
		if _, err := g.UpsertRole(data); err != nil {
			return err
		}
	}

	for _, data := range channels {
		if _, err := g.UpsertChannel(data); err != nil {
			return err
		}
	}

	for _, data := range members {
		if _, err := g.UpsertMember(data); err != nil {
			return err
		}
	}

	return nil
}

func (g *Guild) check(roles, channels, members []map[string]any) error {
	for _, data := range roles {
		if _, err := collection.IDOf(data); err != nil {
			return err
		}
		if _, err := model.DecodeRolePatch(data); err != nil {
			return err
		}
	}

	for _, data := range channels {
		if _, err := collection.IDOf(data); err != nil {
			return err
		}

		patch, err := model.DecodeChannelPatch(data)
		if err != nil {
			return err
		}
		if _, err := overwritesOf(patch); err != nil {
			return err
		}
		if err := checkRecipients(patch); err != nil {
			return err
		}
	}

	for _, data := range members {
		if err := g.checkMember(data); err != nil {
			return err
		}
	}

	return nil
}

// checkMember reports whether data can add or update a member of g.
func (g *Guild) checkMember(data map[string]any) error {
	id, err := memberIDOf(data)
	if err != nil {
		return err
	}

	patch, err := model.DecodeMemberPatch(data)
	if err != nil {
		return err
	}

	if user, ok := patch.User.Get(); ok && user != nil {
		return checkUserData(user)
	}

	if _, ok := g.members.Get(id); ok {
		return nil
	}
	if _, ok := g.users.Get(id); ok {
		return nil
	}

	return errorx.New(errorx.MalformedEntity, "user associated with member not found: %s", id)
}

func (g *Guild) Name() string    { return g.name }
func (g *Guild) OwnerID() string { return g.ownerID }

func (g *Guild) Roles() *collection.Collection[*Role]       { return g.roles }
func (g *Guild) Members() *collection.Collection[*Member]   { return g.members }
func (g *Guild) Channels() *collection.Collection[*Channel] { return g.channels }

func (g *Guild) Role(id string) (*Role, bool)       { return g.roles.Get(id) }
func (g *Guild) Member(id string) (*Member, bool)   { return g.members.Get(id) }
func (g *Guild) Channel(id string) (*Channel, bool) { return g.channels.Get(id) }

// DefaultRole returns the @everyone role, whose id is the guild id.
func (g *Guild) DefaultRole() (*Role, bool) {
	return g.roles.Get(g.ID())
}

func (g *Guild) Owner() (*Member, bool) {
	return g.members.Get(g.ownerID)
}

// UpsertRole adds the role described by data, or updates it in place if it
// is already cached.
func (g *Guild) UpsertRole(data map[string]any) (*Role, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	if role, ok := g.roles.Get(id); ok {
		return role, role.UpdateData(data)
	}

	return g.roles.AddData(data)
}

func (g *Guild) RemoveRole(id string) (*Role, bool) {
	return g.roles.Remove(id)
}

// UpsertMember adds the member described by data, or updates it in place if
// it is already cached.
func (g *Guild) UpsertMember(data map[string]any) (*Member, error) {
	id, err := memberIDOf(data)
	if err != nil {
		return nil, err
	}

	if member, ok := g.members.Get(id); ok {
		return member, member.UpdateData(data)
	}

	member, err := NewMember(data, g, g.users)
	if err != nil {
		return nil, err
	}

	return g.members.Add(member), nil
}

func (g *Guild) RemoveMember(id string) (*Member, bool) {
	return g.members.Remove(id)
}

// UpsertChannel adds the channel described by data, or updates it in place
// if it is already cached.
func (g *Guild) UpsertChannel(data map[string]any) (*Channel, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	if channel, ok := g.channels.Get(id); ok {
		return channel, channel.UpdateData(data)
	}

	return g.channels.AddData(data)
}

func (g *Guild) RemoveChannel(id string) (*Channel, bool) {
	return g.channels.Remove(id)
}

// ChannelsIn returns the channels whose parent is the category parentID, in
// cache order.
func (g *Guild) ChannelsIn(parentID string) []*Channel {
	var children []*Channel
	g.channels.Range(func(c *Channel) bool {
		if c.ParentID() == parentID {
			children = append(children, c)
		}
		return true
	})
	return children
}

// PermissionsOf resolves the permissions of a member in a channel of this
// guild.
func (g *Guild) PermissionsOf(channelID, memberID string) (permission.Permission, error) {
	channel, ok := g.channels.Get(channelID)
	if !ok {
		return permission.Permission{}, errorx.New(errorx.NotFound,
			"channel %s not found in guild %s", channelID, g.ID())
	}

	return channel.PermissionsOf(memberID)
}

func (g *Guild) ToMap() map[string]any {
	return mergeMaps(g.Base.toMap(), map[string]any{
		"name":     g.name,
		"ownerID":  g.ownerID,
		"roles":    g.roles.ToMap(),
		"members":  g.members.ToMap(),
		"channels": g.channels.ToMap(),
	})
}
