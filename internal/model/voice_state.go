package model

import "github.com/questx-lab/guildstate/pkg/optional"

type VoiceStatePatch struct {
	ChannelID optional.Value[*string]
	SessionID optional.Value[*string]
	Mute      optional.Value[bool]
	Deaf      optional.Value[bool]
	SelfMute  optional.Value[bool]
	SelfDeaf  optional.Value[bool]
	Suppress  optional.Value[bool]
}

func DecodeVoiceStatePatch(data map[string]any) (VoiceStatePatch, error) {
	d := newFieldDecoder(data)
	patch := VoiceStatePatch{
		ChannelID: field[*string](d, "channel_id"),
		SessionID: field[*string](d, "session_id"),
		Mute:      field[bool](d, "mute"),
		Deaf:      field[bool](d, "deaf"),
		SelfMute:  field[bool](d, "self_mute"),
		SelfDeaf:  field[bool](d, "self_deaf"),
		Suppress:  field[bool](d, "suppress"),
	}
	return patch, d.err
}
