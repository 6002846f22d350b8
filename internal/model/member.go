package model

import (
	"time"

	"github.com/questx-lab/guildstate/pkg/optional"
)

type MemberPatch struct {
	User         optional.Value[map[string]any]
	Roles        optional.Value[[]string]
	Nick         optional.Value[*string]
	Status       optional.Value[string]
	Game         optional.Value[map[string]any]
	Activities   optional.Value[[]map[string]any]
	ClientStatus optional.Value[map[string]string]
	JoinedAt     optional.Value[*time.Time]
	PremiumSince optional.Value[*time.Time]

	// VoiceState is decoded from the same payload. It is only applied when
	// the payload carries voice fields, which the mute flag marks.
	VoiceState    VoiceStatePatch
	HasVoiceState bool
}

func DecodeMemberPatch(data map[string]any) (MemberPatch, error) {
	d := newFieldDecoder(data)
	patch := MemberPatch{
		User:         field[map[string]any](d, "user"),
		Roles:        field[[]string](d, "roles"),
		Nick:         field[*string](d, "nick"),
		Status:       field[string](d, "status"),
		Game:         field[map[string]any](d, "game"),
		Activities:   field[[]map[string]any](d, "activities"),
		ClientStatus: field[map[string]string](d, "client_status"),
		JoinedAt:     timeField(d, "joined_at"),
		PremiumSince: timeField(d, "premium_since"),
	}
	if d.err != nil {
		return MemberPatch{}, d.err
	}

	if _, ok := data["mute"]; ok {
		voiceState, err := DecodeVoiceStatePatch(data)
		if err != nil {
			return MemberPatch{}, err
		}

		patch.VoiceState = voiceState
		patch.HasVoiceState = true
	}

	return patch, nil
}
