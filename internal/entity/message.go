package entity

import (
	"fmt"
	"time"

	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/pkg/collection"
)

// Message is a cached chat message. Only the fields needed to identify and
// display it are kept; attachments and embeds are not modelled.
type Message struct {
	Base
	channelID       string
	authorID        string
	content         string
	timestamp       *time.Time
	editedTimestamp *time.Time
	pinned          bool
	mentionEveryone bool
}

// NewMessage builds a message. The author, if present, is registered in
// users.
func NewMessage(data map[string]any, users *UserRegistry) (*Message, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	m := &Message{Base: newBase(id)}
	if err := m.UpdateData(data, users); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Message) UpdateData(data map[string]any, users *UserRegistry) error {
	patch, err := model.DecodeMessagePatch(data)
	if err != nil {
		return fmt.Errorf("cannot decode message %s: %w", m.ID(), err)
	}

	if author, ok := patch.Author.Get(); ok && author != nil {
		u, err := users.Add(author)
		if err != nil {
			return fmt.Errorf("cannot add author of message %s: %w", m.ID(), err)
		}
		m.authorID = u.ID()
	}

	patch.ChannelID.Apply(&m.channelID)
	patch.Content.Apply(&m.content)
	patch.Timestamp.Apply(&m.timestamp)
	patch.EditedTimestamp.Apply(&m.editedTimestamp)
	patch.Pinned.Apply(&m.pinned)
	patch.MentionEveryone.Apply(&m.mentionEveryone)
	return nil
}

func (m *Message) ChannelID() string           { return m.channelID }
func (m *Message) AuthorID() string            { return m.authorID }
func (m *Message) Content() string             { return m.content }
func (m *Message) Timestamp() *time.Time       { return m.timestamp }
func (m *Message) EditedTimestamp() *time.Time { return m.editedTimestamp }
func (m *Message) Pinned() bool                { return m.pinned }
func (m *Message) MentionEveryone() bool       { return m.mentionEveryone }

func (m *Message) ToMap() map[string]any {
	return mergeMaps(m.Base.toMap(), map[string]any{
		"channelID":       m.channelID,
		"authorID":        m.authorID,
		"content":         m.content,
		"timestamp":       unixMilli(m.timestamp),
		"editedTimestamp": unixMilli(m.editedTimestamp),
		"pinned":          m.pinned,
		"mentionEveryone": m.mentionEveryone,
	})
}

// unixMilli returns the time in milliseconds since the Unix epoch, or nil.
func unixMilli(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}
