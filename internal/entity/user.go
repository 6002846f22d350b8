package entity

import (
	"fmt"
	"strconv"

	"github.com/fatih/structs"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/pkg/collection"
)

type userFields struct {
	Username      string  `structs:"username"`
	Discriminator string  `structs:"discriminator"`
	Avatar        *string `structs:"avatar"`
	Bot           bool    `structs:"bot"`
}

// User is shared by every membership of the same person. Members keep only
// the user id and resolve it through a UserRegistry.
type User struct {
	Base
	fields userFields
}

func NewUser(data map[string]any) (*User, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	u := &User{Base: newBase(id)}
	if err := u.UpdateData(data); err != nil {
		return nil, err
	}

	return u, nil
}

// checkUserData reports whether data can build a user.
func checkUserData(data map[string]any) error {
	if _, err := collection.IDOf(data); err != nil {
		return err
	}

	if _, err := model.DecodeUserPatch(data); err != nil {
		return fmt.Errorf("cannot decode user: %w", err)
	}

	return nil
}

func (u *User) Update(patch model.UserPatch) {
	patch.Username.Apply(&u.fields.Username)
	patch.Discriminator.Apply(&u.fields.Discriminator)
	patch.Avatar.Apply(&u.fields.Avatar)
	patch.Bot.Apply(&u.fields.Bot)
}

func (u *User) UpdateData(data map[string]any) error {
	patch, err := model.DecodeUserPatch(data)
	if err != nil {
		return fmt.Errorf("cannot decode user %s: %w", u.ID(), err)
	}

	u.Update(patch)
	return nil
}

func (u *User) Username() string      { return u.fields.Username }
func (u *User) Discriminator() string { return u.fields.Discriminator }
func (u *User) Avatar() *string       { return u.fields.Avatar }
func (u *User) Bot() bool             { return u.fields.Bot }

func (u *User) Mention() string {
	return fmt.Sprintf("<@%s>", u.ID())
}

func (u *User) Tag() string {
	return fmt.Sprintf("%s#%s", u.fields.Username, u.fields.Discriminator)
}

// DefaultAvatar is the index of the built-in avatar used when none is set.
func (u *User) DefaultAvatar() string {
	discriminator, err := strconv.Atoi(u.fields.Discriminator)
	if err != nil {
		return "0"
	}

	return strconv.Itoa(discriminator % 5)
}

func (u *User) ToMap() map[string]any {
	return mergeMaps(u.Base.toMap(), structs.Map(u.fields))
}

// UserRegistry is the process-wide set of users. It is the only structure
// shared between guilds and is safe for concurrent use; the users it holds
// must still be written by a single ingest path.
type UserRegistry struct {
	users *xsync.MapOf[string, *User]
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{users: xsync.NewMapOf[*User]()}
}

// Add registers the user described by data, or returns the user already
// registered with the same id without modifying it.
func (r *UserRegistry) Add(data map[string]any) (*User, error) {
	id, err := collection.IDOf(data)
	if err != nil {
		return nil, err
	}

	if u, ok := r.users.Load(id); ok {
		return u, nil
	}

	u, err := NewUser(data)
	if err != nil {
		return nil, err
	}

	actual, _ := r.users.LoadOrStore(id, u)
	return actual, nil
}

func (r *UserRegistry) Get(id string) (*User, bool) {
	return r.users.Load(id)
}

// Update applies a partial payload to a registered user. It returns false if
// the user is unknown.
func (r *UserRegistry) Update(id string, data map[string]any) (*User, bool, error) {
	u, ok := r.users.Load(id)
	if !ok {
		return nil, false, nil
	}

	if err := u.UpdateData(data); err != nil {
		return u, true, err
	}

	return u, true, nil
}

func (r *UserRegistry) Remove(id string) (*User, bool) {
	return r.users.LoadAndDelete(id)
}

func (r *UserRegistry) Len() int {
	return r.users.Size()
}

func (r *UserRegistry) Range(fn func(u *User) bool) {
	r.users.Range(func(_ string, u *User) bool {
		return fn(u)
	})
}
