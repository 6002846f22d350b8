// Package permission wraps a capability bitmask and names its bits.
package permission

import (
	"fmt"
	"strings"

	"github.com/questx-lab/guildstate/pkg/enum"
)

type Flag uint64

const (
	CreateInstantInvite Flag = 1 << iota
	KickMembers
	BanMembers
	Administrator
	ManageChannels
	ManageGuild
	AddReactions
	ViewAuditLogs
	VoicePrioritySpeaker
	Stream
	ViewChannel
	SendMessages
	SendTTSMessages
	ManageMessages
	EmbedLinks
	AttachFiles
	ReadMessageHistory
	MentionEveryone
	UseExternalEmojis
	ViewGuildInsights
	VoiceConnect
	VoiceSpeak
	VoiceMuteMembers
	VoiceDeafenMembers
	VoiceMoveMembers
	VoiceUseVAD
	ChangeNickname
	ManageNicknames
	ManageRoles
	ManageWebhooks
	ManageEmojis
)

// All grants every known capability.
const All = ManageEmojis<<1 - 1

func init() {
	for _, f := range []struct {
		flag Flag
		name string
	}{
		{CreateInstantInvite, "createInstantInvite"},
		{KickMembers, "kickMembers"},
		{BanMembers, "banMembers"},
		{Administrator, "administrator"},
		{ManageChannels, "manageChannels"},
		{ManageGuild, "manageGuild"},
		{AddReactions, "addReactions"},
		{ViewAuditLogs, "viewAuditLogs"},
		{VoicePrioritySpeaker, "voicePrioritySpeaker"},
		{Stream, "stream"},
		{ViewChannel, "viewChannel"},
		{SendMessages, "sendMessages"},
		{SendTTSMessages, "sendTTSMessages"},
		{ManageMessages, "manageMessages"},
		{EmbedLinks, "embedLinks"},
		{AttachFiles, "attachFiles"},
		{ReadMessageHistory, "readMessageHistory"},
		{MentionEveryone, "mentionEveryone"},
		{UseExternalEmojis, "useExternalEmojis"},
		{ViewGuildInsights, "viewGuildInsights"},
		{VoiceConnect, "voiceConnect"},
		{VoiceSpeak, "voiceSpeak"},
		{VoiceMuteMembers, "voiceMuteMembers"},
		{VoiceDeafenMembers, "voiceDeafenMembers"},
		{VoiceMoveMembers, "voiceMoveMembers"},
		{VoiceUseVAD, "voiceUseVAD"},
		{ChangeNickname, "changeNickname"},
		{ManageNicknames, "manageNicknames"},
		{ManageRoles, "manageRoles"},
		{ManageWebhooks, "manageWebhooks"},
		{ManageEmojis, "manageEmojis"},
	} {
		enum.New(f.flag, f.name)
	}
}

func (f Flag) String() string {
	if name := enum.ToString(f); name != "" {
		return name
	}

	return fmt.Sprintf("Flag(%d)", uint64(f))
}

// ParseFlag returns the flag registered under name, e.g. "sendMessages".
func ParseFlag(name string) (Flag, error) {
	return enum.ToEnum[Flag](name)
}

// Permission is an immutable capability mask. A new value must be created to
// change it.
type Permission struct {
	allow uint64

	// resolved is set for masks computed against a channel's overwrites
	// rather than guild-wide roles. It is descriptive only.
	resolved bool
}

func New(allow uint64) Permission {
	return Permission{allow: allow}
}

// NewResolved creates a permission resolved in the context of a channel.
func NewResolved(allow uint64) Permission {
	return Permission{allow: allow, resolved: true}
}

func (p Permission) Allow() uint64 {
	return p.allow
}

func (p Permission) Resolved() bool {
	return p.resolved
}

// Has returns true if every bit of f is set.
func (p Permission) Has(f Flag) bool {
	return p.allow&uint64(f) == uint64(f)
}

// HasName is Has for a flag given by name. Unknown names are never held.
func (p Permission) HasName(name string) bool {
	f, err := ParseFlag(name)
	if err != nil {
		return false
	}

	return p.Has(f)
}

// Flags returns the known flags set in the mask, lowest bit first.
func (p Permission) Flags() []Flag {
	var flags []Flag
	for _, f := range enum.Values[Flag]() {
		if p.Has(f) {
			flags = append(flags, f)
		}
	}
	return flags
}

// Names returns the names of the known flags set in the mask.
func (p Permission) Names() []string {
	flags := p.Flags()
	names := make([]string, 0, len(flags))
	for _, f := range flags {
		names = append(names, f.String())
	}
	return names
}

// ToMap returns every known flag name mapped to whether it is held, plus the
// raw mask under "allow".
func (p Permission) ToMap() map[string]any {
	m := map[string]any{"allow": p.allow}
	for _, f := range enum.Values[Flag]() {
		m[f.String()] = p.Has(f)
	}
	return m
}

func (p Permission) String() string {
	kind := "Permission"
	if p.resolved {
		kind = "ResolvedPermission"
	}

	return fmt.Sprintf("%s<%d>[%s]", kind, p.allow, strings.Join(p.Names(), ","))
}

// ApplyOverwrite clears the deny bits of base then sets the allow bits.
func ApplyOverwrite(base, allow, deny uint64) uint64 {
	return (base &^ deny) | allow
}
