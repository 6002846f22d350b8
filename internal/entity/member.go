package entity

import (
	"fmt"
	"time"

	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/internal/permission"
	"github.com/questx-lab/guildstate/pkg/collection"
	"github.com/questx-lab/guildstate/pkg/errorx"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const defaultStatus = "offline"

// Member is a user's membership in one guild. The guild member cache owns it;
// the user is shared with other guilds and resolved through the registry.
type Member struct {
	Base
	guild *Guild
	users *UserRegistry

	roles        []string
	nick         *string
	status       string
	game         map[string]any
	activities   []map[string]any
	clientStatus map[string]string
	joinedAt     *time.Time
	premiumSince *time.Time
	voiceState   *VoiceState
}

// memberIDOf returns the member id, which is the id of its user. Gateway
// payloads only carry it inside the user object.
func memberIDOf(data map[string]any) (string, error) {
	id, err := collection.IDOf(data)
	if err == nil {
		return id, nil
	}

	if user, ok := data["user"].(map[string]any); ok {
		return collection.IDOf(user)
	}

	return "", err
}

// NewMember builds a member of guild. Its user must either already be in
// users or be carried by the payload, otherwise construction fails.
func NewMember(data map[string]any, guild *Guild, users *UserRegistry) (*Member, error) {
	id, err := memberIDOf(data)
	if err != nil {
		return nil, err
	}

	if guild == nil {
		return nil, errorx.New(errorx.BadRequest, "member %s has no guild", id)
	}

	patch, err := model.DecodeMemberPatch(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode member %s: %w", id, err)
	}

	if _, ok := users.Get(id); !ok {
		if user, ok := patch.User.Get(); ok && user != nil {
			if _, err := users.Add(user); err != nil {
				return nil, fmt.Errorf("cannot add user of member %s: %w", id, err)
			}
		}
	}

	if _, ok := users.Get(id); !ok {
		return nil, errorx.New(errorx.MalformedEntity, "user associated with member not found: %s", id)
	}

	m := &Member{
		Base:       newBase(id),
		guild:      guild,
		users:      users,
		status:     defaultStatus,
		voiceState: newVoiceState(id),
	}
	m.apply(patch)
	return m, nil
}

func (m *Member) UpdateData(data map[string]any) error {
	patch, err := model.DecodeMemberPatch(data)
	if err != nil {
		return fmt.Errorf("cannot decode member %s: %w", m.ID(), err)
	}

	return m.Update(patch)
}

// Update applies a partial update in place. A user object in the payload
// updates the shared user, or registers it again if it left the registry.
func (m *Member) Update(patch model.MemberPatch) error {
	if user, ok := patch.User.Get(); ok && user != nil {
		if err := checkUserData(user); err != nil {
			return fmt.Errorf("invalid user of member %s: %w", m.ID(), err)
		}

		_, found, err := m.users.Update(m.ID(), user)
		if err != nil {
			return err
		}
		if !found {
			if _, err := m.users.Add(user); err != nil {
				return err
			}
		}
	}

	m.apply(patch)
	return nil
}

func (m *Member) apply(patch model.MemberPatch) {
	// An explicit null status resets it to offline.
	if status, ok := patch.Status.Get(); ok {
		if status == "" {
			status = defaultStatus
		}
		m.status = status
	}

	if clientStatus, ok := patch.ClientStatus.Get(); ok {
		m.clientStatus = map[string]string{"web": defaultStatus, "desktop": defaultStatus, "mobile": defaultStatus}
		maps.Copy(m.clientStatus, clientStatus)
	}

	patch.Game.Apply(&m.game)
	patch.Activities.Apply(&m.activities)
	patch.JoinedAt.Apply(&m.joinedAt)
	patch.PremiumSince.Apply(&m.premiumSince)
	patch.Nick.Apply(&m.nick)
	patch.Roles.Apply(&m.roles)

	if patch.HasVoiceState {
		m.voiceState.Update(patch.VoiceState)
	}
}

// Permission computes the guild-wide permission of the member from the
// current roles. The owner holds every permission; a role with the
// administrator bit grants every permission too. Role ids missing from the
// guild role cache are skipped.
func (m *Member) Permission() permission.Permission {
	g := m.guild
	if m.ID() == g.ownerID {
		return permission.New(uint64(permission.All))
	}

	var allow uint64
	if everyone, ok := g.roles.Get(g.ID()); ok {
		allow = everyone.fields.Permissions
	}

	for _, roleID := range m.roles {
		role, ok := g.roles.Get(roleID)
		if !ok {
			continue
		}

		perm := role.fields.Permissions
		if perm&uint64(permission.Administrator) != 0 {
			allow = uint64(permission.All)
			break
		}
		allow |= perm
	}

	return permission.New(allow)
}

func (m *Member) Guild() *Guild {
	return m.guild
}

// User resolves the shared user. It is absent only if the user was removed
// from the registry after the member was built.
func (m *Member) User() (*User, bool) {
	return m.users.Get(m.ID())
}

func (m *Member) Roles() []string {
	return slices.Clone(m.roles)
}

// HasRole reports whether the member holds roleID. The default role is held
// implicitly.
func (m *Member) HasRole(roleID string) bool {
	return roleID == m.guild.ID() || slices.Contains(m.roles, roleID)
}

func (m *Member) Nick() string {
	if m.nick == nil {
		return ""
	}
	return *m.nick
}

// DisplayName is the nickname if set, otherwise the username.
func (m *Member) DisplayName() string {
	if nick := m.Nick(); nick != "" {
		return nick
	}
	return m.Username()
}

func (m *Member) Status() string                  { return m.status }
func (m *Member) Game() map[string]any            { return m.game }
func (m *Member) Activities() []map[string]any    { return m.activities }
func (m *Member) ClientStatus() map[string]string { return maps.Clone(m.clientStatus) }
func (m *Member) JoinedAt() *time.Time            { return m.joinedAt }
func (m *Member) PremiumSince() *time.Time        { return m.premiumSince }
func (m *Member) VoiceState() *VoiceState         { return m.voiceState }

func (m *Member) Username() string {
	if u, ok := m.User(); ok {
		return u.Username()
	}
	return ""
}

func (m *Member) Discriminator() string {
	if u, ok := m.User(); ok {
		return u.Discriminator()
	}
	return ""
}

func (m *Member) Bot() bool {
	if u, ok := m.User(); ok {
		return u.Bot()
	}
	return false
}

func (m *Member) Tag() string {
	return fmt.Sprintf("%s#%s", m.Username(), m.Discriminator())
}

func (m *Member) Mention() string {
	return fmt.Sprintf("<@!%s>", m.ID())
}

func (m *Member) ToMap() map[string]any {
	var user any
	if u, ok := m.User(); ok {
		user = u.ToMap()
	}

	return mergeMaps(m.Base.toMap(), map[string]any{
		"game":         m.game,
		"activities":   m.activities,
		"clientStatus": m.clientStatus,
		"joinedAt":     unixMilli(m.joinedAt),
		"premiumSince": unixMilli(m.premiumSince),
		"nick":         m.nick,
		"roles":        m.Roles(),
		"status":       m.status,
		"user":         user,
		"voiceState":   m.voiceState.ToMap(),
	})
}
