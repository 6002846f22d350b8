package entity

import "github.com/questx-lab/guildstate/pkg/enum"

// ChannelType is the numeric channel type used on the wire.
type ChannelType int

var (
	ChannelGuildText     = enum.New(ChannelType(0), "GUILD_TEXT")
	ChannelDM            = enum.New(ChannelType(1), "DM")
	ChannelGuildVoice    = enum.New(ChannelType(2), "GUILD_VOICE")
	ChannelGroupDM       = enum.New(ChannelType(3), "GROUP_DM")
	ChannelGuildCategory = enum.New(ChannelType(4), "GUILD_CATEGORY")
	ChannelGuildNews     = enum.New(ChannelType(5), "GUILD_NEWS")
	ChannelGuildStore    = enum.New(ChannelType(6), "GUILD_STORE")
)

const unknownChannelType = "unknown channel type"

var friendlyChannelTypes = map[ChannelType]string{
	ChannelGuildText:     "text",
	ChannelDM:            "dm",
	ChannelGuildVoice:    "voice",
	ChannelGroupDM:       "group",
	ChannelGuildCategory: "category",
	ChannelGuildNews:     "news",
	ChannelGuildStore:    "store",
}

// Key returns the wire name of the type, e.g. GUILD_TEXT.
func (t ChannelType) Key() string {
	return enum.ToString(t)
}

// Friendly returns the lowercase name of the type, or "unknown channel type".
func (t ChannelType) Friendly() string {
	if name, ok := friendlyChannelTypes[t]; ok {
		return name
	}

	return unknownChannelType
}

// channelTypeByName resolves a wire name (GUILD_TEXT) or a friendly name
// (text).
func channelTypeByName(name string) (ChannelType, bool) {
	if t, err := enum.ToEnum[ChannelType](name); err == nil {
		return t, true
	}

	for t, friendly := range friendlyChannelTypes {
		if friendly == name {
			return t, true
		}
	}

	return 0, false
}

type channelKind int

const (
	kindGuild channelKind = iota
	kindText
	kindVoice
	kindCategory
	kindPrivate
)

func kindOf(t ChannelType) channelKind {
	switch t {
	case ChannelGuildText, ChannelGuildNews:
		return kindText
	case ChannelGuildVoice:
		return kindVoice
	case ChannelGuildCategory:
		return kindCategory
	case ChannelDM, ChannelGroupDM:
		return kindPrivate
	}

	return kindGuild
}
