package entity

import (
	"github.com/fatih/structs"
	"github.com/questx-lab/guildstate/internal/model"
)

type voiceStateFields struct {
	ChannelID *string `structs:"channelID"`
	SessionID *string `structs:"sessionID"`
	Mute      bool    `structs:"mute"`
	Deaf      bool    `structs:"deaf"`
	SelfMute  bool    `structs:"selfMute"`
	SelfDeaf  bool    `structs:"selfDeaf"`
	Suppress  bool    `structs:"suppress"`
}

// VoiceState is the voice connection state of one member. It is owned by the
// member and identified by the member id.
type VoiceState struct {
	Base
	fields voiceStateFields
}

func newVoiceState(id string) *VoiceState {
	return &VoiceState{Base: newBase(id)}
}

func (v *VoiceState) Update(patch model.VoiceStatePatch) {
	patch.ChannelID.Apply(&v.fields.ChannelID)
	patch.SessionID.Apply(&v.fields.SessionID)
	patch.Mute.Apply(&v.fields.Mute)
	patch.Deaf.Apply(&v.fields.Deaf)
	patch.SelfMute.Apply(&v.fields.SelfMute)
	patch.SelfDeaf.Apply(&v.fields.SelfDeaf)
	patch.Suppress.Apply(&v.fields.Suppress)
}

// ChannelID returns the voice channel the member is connected to, or an
// empty string.
func (v *VoiceState) ChannelID() string {
	if v.fields.ChannelID == nil {
		return ""
	}
	return *v.fields.ChannelID
}

func (v *VoiceState) SessionID() string {
	if v.fields.SessionID == nil {
		return ""
	}
	return *v.fields.SessionID
}

func (v *VoiceState) Mute() bool     { return v.fields.Mute }
func (v *VoiceState) Deaf() bool     { return v.fields.Deaf }
func (v *VoiceState) SelfMute() bool { return v.fields.SelfMute }
func (v *VoiceState) SelfDeaf() bool { return v.fields.SelfDeaf }
func (v *VoiceState) Suppress() bool { return v.fields.Suppress }

func (v *VoiceState) ToMap() map[string]any {
	return mergeMaps(v.Base.toMap(), structs.Map(v.fields))
}
