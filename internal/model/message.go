package model

import (
	"time"

	"github.com/questx-lab/guildstate/pkg/optional"
)

type MessagePatch struct {
	ChannelID       optional.Value[string]
	Author          optional.Value[map[string]any]
	Content         optional.Value[string]
	Timestamp       optional.Value[*time.Time]
	EditedTimestamp optional.Value[*time.Time]
	Pinned          optional.Value[bool]
	MentionEveryone optional.Value[bool]
}

func DecodeMessagePatch(data map[string]any) (MessagePatch, error) {
	d := newFieldDecoder(data)
	patch := MessagePatch{
		ChannelID:       field[string](d, "channel_id"),
		Author:          field[map[string]any](d, "author"),
		Content:         field[string](d, "content"),
		Timestamp:       timeField(d, "timestamp"),
		EditedTimestamp: timeField(d, "edited_timestamp"),
		Pinned:          field[bool](d, "pinned"),
		MentionEveryone: field[bool](d, "mention_everyone"),
	}
	return patch, d.err
}
