package entity

import (
	"time"

	"github.com/questx-lab/guildstate/pkg/idutil"
)

// Base is the identity shared by every cached entity. The id never changes
// after construction.
type Base struct {
	id string
}

func newBase(id string) Base {
	return Base{id: id}
}

func (b Base) ID() string {
	return b.id
}

// CreatedAt is derived from the timestamp embedded in the snowflake id.
func (b Base) CreatedAt() time.Time {
	return idutil.CreatedAt(b.id)
}

func (b Base) toMap() map[string]any {
	m := map[string]any{"id": b.id}
	if ms, ok := idutil.Timestamp(b.id); ok {
		m["createdAt"] = ms
	}
	return m
}

func mergeMaps(dst map[string]any, src map[string]any) map[string]any {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
