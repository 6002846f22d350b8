package domain

import (
	"context"
	"fmt"

	"github.com/questx-lab/guildstate/internal/entity"
	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/internal/permission"
	"github.com/questx-lab/guildstate/pkg/collection"
	"github.com/questx-lab/guildstate/pkg/errorx"
	"github.com/questx-lab/guildstate/pkg/xcontext"
)

// StateDomain keeps the cached state of every guild and private channel
// up to date from transport events. Events must be applied from a single
// goroutine, in the order they were received.
type StateDomain interface {
	Apply(ctx context.Context, event model.Event) error
	Guild(id string) (*entity.Guild, bool)
	Guilds() []*entity.Guild
	Channel(id string) (*entity.Channel, bool)
	Users() *entity.UserRegistry
	PermissionsOf(channelID, memberID string) (permission.Permission, error)
}

type eventHandler func(ctx context.Context, data map[string]any, refs model.EventRefs) error

type stateDomain struct {
	users           *entity.UserRegistry
	guilds          *collection.Collection[*entity.Guild]
	privateChannels *collection.Collection[*entity.Channel]
	handlers        map[model.EventType]eventHandler
}

func NewStateDomain(users *entity.UserRegistry) *stateDomain {
	d := &stateDomain{
		users:           users,
		guilds:          collection.New[*entity.Guild](0, nil),
		privateChannels: collection.New[*entity.Channel](0, nil),
	}

	d.handlers = map[model.EventType]eventHandler{
		model.GuildCreate:       d.guildCreate,
		model.GuildUpdate:       d.guildUpdate,
		model.GuildDelete:       d.guildDelete,
		model.GuildRoleCreate:   d.roleUpsert,
		model.GuildRoleUpdate:   d.roleUpsert,
		model.GuildRoleDelete:   d.roleDelete,
		model.GuildMemberAdd:    d.memberAdd,
		model.GuildMemberUpdate: d.memberUpdate,
		model.GuildMemberRemove: d.memberRemove,
		model.ChannelCreate:     d.channelCreate,
		model.ChannelUpdate:     d.channelUpdate,
		model.ChannelDelete:     d.channelDelete,
		model.MessageCreate:     d.messageCreate,
		model.MessageDelete:     d.messageDelete,
		model.UserUpdate:        d.userUpdate,
		model.PresenceUpdate:    d.presenceUpdate,
		model.VoiceStateUpdate:  d.voiceStateUpdate,
	}

	return d
}

// Apply routes one event to its handler. Events of unknown types, and events
// targeting entities that are not cached, are skipped.
func (d *stateDomain) Apply(ctx context.Context, event model.Event) error {
	handler, ok := d.handlers[event.Type]
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip unhandled event %s", event.Type)
		return nil
	}

	if event.Data == nil {
		return errorx.New(errorx.BadRequest, "event %s has no payload", event.Type)
	}

	refs, err := model.DecodeEventRefs(event.Data)
	if err != nil {
		return err
	}

	if err := handler(ctx, event.Data, refs); err != nil {
		return fmt.Errorf("cannot apply %s: %w", event.Type, err)
	}

	return nil
}

func (d *stateDomain) Guild(id string) (*entity.Guild, bool) {
	return d.guilds.Get(id)
}

func (d *stateDomain) Guilds() []*entity.Guild {
	return d.guilds.Values()
}

// Channel looks up a private channel or a channel of any cached guild.
func (d *stateDomain) Channel(id string) (*entity.Channel, bool) {
	if c, ok := d.privateChannels.Get(id); ok {
		return c, true
	}

	var found *entity.Channel
	d.guilds.Range(func(g *entity.Guild) bool {
		found, _ = g.Channel(id)
		return found == nil
	})

	return found, found != nil
}

func (d *stateDomain) Users() *entity.UserRegistry {
	return d.users
}

func (d *stateDomain) PermissionsOf(channelID, memberID string) (permission.Permission, error) {
	c, ok := d.Channel(channelID)
	if !ok {
		return permission.Permission{}, errorx.New(errorx.NotFound, "channel %s not found", channelID)
	}

	return c.PermissionsOf(memberID)
}

// guildOf returns the guild an event targets. A miss is logged and reported
// as false so the caller can skip the event.
func (d *stateDomain) guildOf(ctx context.Context, refs model.EventRefs) (*entity.Guild, bool) {
	g, ok := d.guilds.Get(refs.GuildID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip event for unknown guild %q", refs.GuildID)
	}

	return g, ok
}

func (d *stateDomain) guildCreate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	if g, ok := d.guilds.Get(refs.ID); ok {
		return g.UpdateData(data)
	}

	g, err := entity.NewGuild(data, d.users, xcontext.Configs(ctx).Cache)
	if err != nil {
		return err
	}

	d.guilds.Add(g)
	xcontext.Logger(ctx).Infof("Guild %s is cached with %d members and %d channels",
		g.ID(), g.Members().Len(), g.Channels().Len())
	return nil
}

func (d *stateDomain) guildUpdate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	g, ok := d.guilds.Get(refs.ID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip update of unknown guild %q", refs.ID)
		return nil
	}

	return g.UpdateData(data)
}

func (d *stateDomain) guildDelete(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	if _, ok := d.guilds.Remove(refs.ID); !ok {
		xcontext.Logger(ctx).Debugf("Skip delete of unknown guild %q", refs.ID)
	}

	return nil
}

func (d *stateDomain) roleUpsert(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	if refs.Role == nil {
		return errorx.New(errorx.BadRequest, "role event for guild %s has no role", g.ID())
	}

	_, err := g.UpsertRole(refs.Role)
	return err
}

func (d *stateDomain) roleDelete(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	if _, ok := g.RemoveRole(refs.RoleID); !ok {
		xcontext.Logger(ctx).Debugf("Skip delete of unknown role %q in guild %s", refs.RoleID, g.ID())
	}

	return nil
}

func (d *stateDomain) memberAdd(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	_, err := g.UpsertMember(data)
	return err
}

// memberUpdate only updates cached members. Members evicted by the member
// limit come back with the next add.
func (d *stateDomain) memberUpdate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	m, ok := g.Member(refs.UserID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip update of unknown member %q in guild %s", refs.UserID, g.ID())
		return nil
	}

	return m.UpdateData(data)
}

func (d *stateDomain) memberRemove(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	if _, ok := g.RemoveMember(refs.UserID); !ok {
		xcontext.Logger(ctx).Debugf("Skip removal of unknown member %q in guild %s", refs.UserID, g.ID())
	}

	return nil
}

func (d *stateDomain) channelCreate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	if refs.GuildID == "" {
		if c, ok := d.privateChannels.Get(refs.ID); ok {
			return c.UpdateData(data)
		}

		c, err := entity.NewChannel(data, nil, d.users, xcontext.Configs(ctx).Cache.MessageLimit)
		if err != nil {
			return err
		}

		d.privateChannels.Add(c)
		return nil
	}

	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	_, err := g.UpsertChannel(data)
	return err
}

func (d *stateDomain) channelUpdate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	c, ok := d.Channel(refs.ID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip update of unknown channel %q", refs.ID)
		return nil
	}

	return c.UpdateData(data)
}

func (d *stateDomain) channelDelete(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	if _, ok := d.privateChannels.Remove(refs.ID); ok {
		return nil
	}

	if g, ok := d.guilds.Get(refs.GuildID); ok {
		if _, ok := g.RemoveChannel(refs.ID); ok {
			return nil
		}
	}

	xcontext.Logger(ctx).Debugf("Skip delete of unknown channel %q", refs.ID)
	return nil
}

func (d *stateDomain) messageCreate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	c, ok := d.Channel(refs.ChannelID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip message for unknown channel %q", refs.ChannelID)
		return nil
	}

	_, err := c.AddMessage(data)
	return err
}

func (d *stateDomain) messageDelete(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	c, ok := d.Channel(refs.ChannelID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip message delete for unknown channel %q", refs.ChannelID)
		return nil
	}

	if messages, ok := c.Messages(); ok {
		messages.Remove(refs.ID)
	}

	return nil
}

// userUpdate registers the user if it is not known yet.
func (d *stateDomain) userUpdate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	_, found, err := d.users.Update(refs.ID, data)
	if err != nil || found {
		return err
	}

	_, err = d.users.Add(data)
	return err
}

// presenceUpdate refreshes the shared user and the status of the member.
func (d *stateDomain) presenceUpdate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	if refs.User != nil {
		if _, _, err := d.users.Update(refs.UserID, refs.User); err != nil {
			return err
		}
	}

	if refs.GuildID == "" {
		return nil
	}

	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	m, ok := g.Member(refs.UserID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip presence of unknown member %q in guild %s", refs.UserID, g.ID())
		return nil
	}

	return m.UpdateData(data)
}

func (d *stateDomain) voiceStateUpdate(ctx context.Context, data map[string]any, refs model.EventRefs) error {
	g, ok := d.guildOf(ctx, refs)
	if !ok {
		return nil
	}

	m, ok := g.Member(refs.UserID)
	if !ok {
		xcontext.Logger(ctx).Debugf("Skip voice state of unknown member %q in guild %s", refs.UserID, g.ID())
		return nil
	}

	patch, err := model.DecodeVoiceStatePatch(data)
	if err != nil {
		return err
	}

	m.VoiceState().Update(patch)
	return nil
}
