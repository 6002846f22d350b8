package entity

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/pkg/collection"
	"github.com/questx-lab/guildstate/pkg/errorx"
)

// Channel is a tagged variant over the channel types. Fields common to all
// guild channels live in guildFields, which is nil for private channels.
// Fields specific to one kind live in payload: *TextChannel for text and
// news, *VoiceChannel for voice, *PrivateChannel for DMs and group DMs, and
// nil for categories and other guild channels.
type Channel struct {
	Base
	typ ChannelType

	// guild is a non-owning relation; the guild channel cache owns the
	// channel. It is nil for private channels and for guild channels built
	// before their guild, in which case only guildID is known.
	guild   *Guild
	guildID string

	guildFields *guildChannel
	payload     any

	users        *UserRegistry
	messageLimit int
}

type guildChannel struct {
	name       string
	position   int
	parentID   *string
	nsfw       bool
	overwrites *collection.Collection[*PermissionOverwrite]
}

func newGuildChannel() *guildChannel {
	return &guildChannel{overwrites: newOverwriteCollection()}
}

func newOverwriteCollection() *collection.Collection[*PermissionOverwrite] {
	return collection.New[*PermissionOverwrite](0, NewPermissionOverwrite)
}

// NewChannel builds a channel from a create payload. guild may be nil.
// messageLimit bounds the message cache of text and private channels.
func NewChannel(
	data map[string]any,
	guild *Guild,
	users *UserRegistry,
	messageLimit int,
) (*Channel, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	c := &Channel{
		Base:         newBase(id),
		guild:        guild,
		users:        users,
		messageLimit: messageLimit,
	}
	if guild != nil {
		c.guildID = guild.ID()
	}

	if err := c.UpdateData(data); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Channel) UpdateData(data map[string]any) error {
	patch, err := model.DecodeChannelPatch(data)
	if err != nil {
		return fmt.Errorf("cannot decode channel %s: %w", c.ID(), err)
	}

	return c.Update(patch)
}

// Update applies a partial update in place. Absent fields keep their value.
// A present permission_overwrites list replaces all overwrites. The patch is
// checked before anything is applied, so a failed update leaves the channel
// unchanged.
func (c *Channel) Update(patch model.ChannelPatch) error {
	overwrites, err := overwritesOf(patch)
	if err != nil {
		return fmt.Errorf("invalid overwrite in channel %s: %w", c.ID(), err)
	}

	if err := checkRecipients(patch); err != nil {
		return fmt.Errorf("invalid recipient in channel %s: %w", c.ID(), err)
	}

	if t, ok := patch.Type.Get(); ok {
		c.typ = ChannelType(t)
	}

	if c.guild == nil {
		patch.GuildID.Apply(&c.guildID)
	}

	c.reshape()

	if g := c.guildFields; g != nil {
		patch.Name.Apply(&g.name)
		patch.Position.Apply(&g.position)
		patch.ParentID.Apply(&g.parentID)
		patch.NSFW.Apply(&g.nsfw)

		if overwrites != nil {
			g.overwrites = overwrites
		}
	}

	switch p := c.payload.(type) {
	case *TextChannel:
		p.update(patch)
	case *VoiceChannel:
		p.update(patch)
	case *PrivateChannel:
		if err := p.update(patch, c.users); err != nil {
			return fmt.Errorf("invalid recipient in channel %s: %w", c.ID(), err)
		}
	}

	return nil
}

// overwritesOf builds the overwrite cache carried by patch, or returns nil if
// the patch has no overwrite list.
func overwritesOf(patch model.ChannelPatch) (*collection.Collection[*PermissionOverwrite], error) {
	list, ok := patch.PermissionOverwrites.Get()
	if !ok {
		return nil, nil
	}

	overwrites := newOverwriteCollection()
	for _, data := range list {
		if _, err := overwrites.AddData(data); err != nil {
			return nil, err
		}
	}

	return overwrites, nil
}

// checkRecipients reports the first recipient that could not be registered.
func checkRecipients(patch model.ChannelPatch) error {
	for _, data := range patch.Recipients.OrElse(nil) {
		if err := checkUserData(data); err != nil {
			return err
		}
	}

	return nil
}

// reshape makes the variant payload agree with the current type. A payload
// that still fits is kept, so a text channel turned into a news channel keeps
// its messages.
func (c *Channel) reshape() {
	kind := kindOf(c.typ)
	if kind == kindPrivate {
		c.guildFields = nil
		if _, ok := c.payload.(*PrivateChannel); !ok {
			c.payload = &PrivateChannel{messages: newMessageCollection(c.messageLimit, c.users)}
		}
		return
	}

	if c.guildFields == nil {
		c.guildFields = newGuildChannel()
	}

	switch kind {
	case kindText:
		if _, ok := c.payload.(*TextChannel); !ok {
			c.payload = &TextChannel{messages: newMessageCollection(c.messageLimit, c.users)}
		}
	case kindVoice:
		if _, ok := c.payload.(*VoiceChannel); !ok {
			c.payload = &VoiceChannel{}
		}
	default:
		c.payload = nil
	}
}

func (c *Channel) Type() ChannelType {
	return c.typ
}

// FriendlyType returns the lowercase type name, or "unknown channel type".
func (c *Channel) FriendlyType() string {
	return c.typ.Friendly()
}

// IsType reports whether t names the type of this channel. t is either a
// number holding the wire type or a string holding the wire name (GUILD_TEXT)
// or the friendly name (text). Any other kind of value, or NaN, is an
// InvalidArgument error.
func (c *Channel) IsType(t any) (bool, error) {
	if s, ok := t.(string); ok {
		named, found := channelTypeByName(s)
		return found && named == c.typ, nil
	}

	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == int64(c.typ), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == uint64(c.typ), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) {
			return false, invalidTypeArgument("NaN")
		}
		return f == float64(c.typ), nil
	}

	return false, invalidTypeArgument(fmt.Sprintf("%T", t))
}

func invalidTypeArgument(received string) error {
	return errorx.New(errorx.InvalidArgument,
		`expected parameter "type" to be of either type "string" or type "number", received type %q`,
		received)
}

func (c *Channel) Mention() string {
	return fmt.Sprintf("<#%s>", c.ID())
}

// Guild returns the owning guild, or nil.
func (c *Channel) Guild() *Guild {
	return c.guild
}

func (c *Channel) GuildID() string {
	return c.guildID
}

// IsGuildChannel reports whether the channel carries guild channel fields.
func (c *Channel) IsGuildChannel() bool {
	return c.guildFields != nil
}

func (c *Channel) Text() (*TextChannel, bool) {
	p, ok := c.payload.(*TextChannel)
	return p, ok
}

func (c *Channel) Voice() (*VoiceChannel, bool) {
	p, ok := c.payload.(*VoiceChannel)
	return p, ok
}

func (c *Channel) Private() (*PrivateChannel, bool) {
	p, ok := c.payload.(*PrivateChannel)
	return p, ok
}

func (c *Channel) Name() string {
	if c.guildFields != nil {
		return c.guildFields.name
	}

	if p, ok := c.payload.(*PrivateChannel); ok {
		return p.name
	}

	return ""
}

func (c *Channel) Position() int {
	if c.guildFields == nil {
		return 0
	}
	return c.guildFields.position
}

// ParentID returns the id of the category of the channel, or an empty
// string.
func (c *Channel) ParentID() string {
	if c.guildFields == nil || c.guildFields.parentID == nil {
		return ""
	}
	return *c.guildFields.parentID
}

// NSFW is true if the flag was set explicitly or the name is "nsfw" or
// starts with "nsfw-".
func (c *Channel) NSFW() bool {
	if c.guildFields == nil {
		return false
	}

	name := c.guildFields.name
	return c.guildFields.nsfw || name == "nsfw" || strings.HasPrefix(name, "nsfw-")
}

// PermissionOverwrites returns the overwrites of a guild channel, or nil for
// private channels.
func (c *Channel) PermissionOverwrites() *collection.Collection[*PermissionOverwrite] {
	if c.guildFields == nil {
		return nil
	}
	return c.guildFields.overwrites
}

// Messages returns the message cache of text and private channels.
func (c *Channel) Messages() (*collection.Collection[*Message], bool) {
	switch p := c.payload.(type) {
	case *TextChannel:
		return p.messages, true
	case *PrivateChannel:
		return p.messages, true
	}
	return nil, false
}

// AddMessage caches a created message and records it as the last message of
// the channel.
func (c *Channel) AddMessage(data map[string]any) (*Message, error) {
	messages, ok := c.Messages()
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "channel %s of type %s does not hold messages", c.ID(), c.FriendlyType())
	}

	m, err := messages.AddData(data)
	if err != nil {
		return nil, err
	}

	id := m.ID()
	switch p := c.payload.(type) {
	case *TextChannel:
		p.lastMessageID = &id
	case *PrivateChannel:
		p.lastMessageID = &id
	}

	return m, nil
}

func (c *Channel) ToMap() map[string]any {
	m := mergeMaps(c.Base.toMap(), map[string]any{"type": int(c.typ)})

	if g := c.guildFields; g != nil {
		mergeMaps(m, map[string]any{
			"guildID":              c.guildID,
			"name":                 g.name,
			"nsfw":                 c.NSFW(),
			"parentID":             g.parentID,
			"permissionOverwrites": g.overwrites.ToMap(),
			"position":             g.position,
		})
	}

	switch p := c.payload.(type) {
	case *TextChannel:
		mergeMaps(m, p.toMap())
	case *VoiceChannel:
		mergeMaps(m, p.toMap())
	case *PrivateChannel:
		mergeMaps(m, p.toMap())
	}

	return m
}
