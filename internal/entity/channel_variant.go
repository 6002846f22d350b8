package entity

import (
	"time"

	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/pkg/collection"
)

func newMessageCollection(limit int, users *UserRegistry) *collection.Collection[*Message] {
	return collection.New[*Message](limit, func(data map[string]any) (*Message, error) {
		return NewMessage(data, users)
	})
}

// TextChannel holds the fields of guild text and news channels.
type TextChannel struct {
	topic            *string
	rateLimitPerUser int
	lastMessageID    *string
	lastPinTimestamp *time.Time
	messages         *collection.Collection[*Message]
}

func (t *TextChannel) update(patch model.ChannelPatch) {
	patch.Topic.Apply(&t.topic)
	patch.RateLimitPerUser.Apply(&t.rateLimitPerUser)
	patch.LastMessageID.Apply(&t.lastMessageID)
	patch.LastPinTimestamp.Apply(&t.lastPinTimestamp)
}

func (t *TextChannel) Topic() string {
	if t.topic == nil {
		return ""
	}
	return *t.topic
}

// RateLimitPerUser is the slowmode delay in seconds; zero disables it.
func (t *TextChannel) RateLimitPerUser() int {
	return t.rateLimitPerUser
}

func (t *TextChannel) LastMessageID() string {
	if t.lastMessageID == nil {
		return ""
	}
	return *t.lastMessageID
}

func (t *TextChannel) LastPinTimestamp() *time.Time {
	return t.lastPinTimestamp
}

func (t *TextChannel) Messages() *collection.Collection[*Message] {
	return t.messages
}

func (t *TextChannel) toMap() map[string]any {
	return map[string]any{
		"topic":            t.topic,
		"rateLimitPerUser": t.rateLimitPerUser,
		"lastMessageID":    t.lastMessageID,
		"lastPinTimestamp": unixMilli(t.lastPinTimestamp),
		"messages":         t.messages.ToMap(),
	}
}

// VoiceChannel holds the fields of guild voice channels.
type VoiceChannel struct {
	bitrate   int
	userLimit int
}

func (v *VoiceChannel) update(patch model.ChannelPatch) {
	patch.Bitrate.Apply(&v.bitrate)
	patch.UserLimit.Apply(&v.userLimit)
}

func (v *VoiceChannel) Bitrate() int {
	return v.bitrate
}

// UserLimit is the maximum number of connected members; zero means no
// limit.
func (v *VoiceChannel) UserLimit() int {
	return v.userLimit
}

func (v *VoiceChannel) toMap() map[string]any {
	return map[string]any{
		"bitrate":   v.bitrate,
		"userLimit": v.userLimit,
	}
}

// PrivateChannel holds the fields of DMs and group DMs. Recipients are
// registered in the user registry and referenced by id.
type PrivateChannel struct {
	name          string
	ownerID       string
	recipients    []string
	lastMessageID *string
	messages      *collection.Collection[*Message]
}

func (p *PrivateChannel) update(patch model.ChannelPatch, users *UserRegistry) error {
	if recipients, ok := patch.Recipients.Get(); ok {
		ids := make([]string, 0, len(recipients))
		for _, data := range recipients {
			u, err := users.Add(data)
			if err != nil {
				return err
			}
			ids = append(ids, u.ID())
		}
		p.recipients = ids
	}

	patch.Name.Apply(&p.name)
	patch.OwnerID.Apply(&p.ownerID)
	patch.LastMessageID.Apply(&p.lastMessageID)
	return nil
}

func (p *PrivateChannel) OwnerID() string {
	return p.ownerID
}

func (p *PrivateChannel) Recipients() []string {
	return append([]string(nil), p.recipients...)
}

func (p *PrivateChannel) LastMessageID() string {
	if p.lastMessageID == nil {
		return ""
	}
	return *p.lastMessageID
}

func (p *PrivateChannel) Messages() *collection.Collection[*Message] {
	return p.messages
}

func (p *PrivateChannel) toMap() map[string]any {
	m := map[string]any{
		"recipients":    p.Recipients(),
		"lastMessageID": p.lastMessageID,
		"messages":      p.messages.ToMap(),
	}
	if p.ownerID != "" {
		m["name"] = p.name
		m["ownerID"] = p.ownerID
	}
	return m
}
