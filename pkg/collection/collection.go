// Package collection implements a keyed entity cache bounded by a maximum
// number of entries. When an insert makes the cache exceed its limit, the
// oldest inserted entries are evicted first. Reads never refresh an entry.
//
// A Collection is not safe for concurrent use.
package collection

import (
	"container/list"
	"math"
	"strconv"

	"github.com/questx-lab/guildstate/pkg/errorx"
)

// Entity is anything identified by a stable string id.
type Entity interface {
	ID() string
}

// Factory builds an entity from raw payload data whose id is already known to
// be valid.
type Factory[T Entity] func(data map[string]any) (T, error)

type Collection[T Entity] struct {
	limit   int
	factory Factory[T]

	items map[string]*list.Element
	order *list.List
}

// New creates a collection. A limit less than or equal to zero disables
// eviction. The factory may be nil if AddData is never called.
func New[T Entity](limit int, factory Factory[T]) *Collection[T] {
	return &Collection[T]{
		limit:   limit,
		factory: factory,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *Collection[T]) Limit() int {
	return c.limit
}

func (c *Collection[T]) Len() int {
	return c.order.Len()
}

// Add stores entity. If an entity with the same id already exists, the
// existing one is returned and neither the value nor the insertion order
// changes.
func (c *Collection[T]) Add(entity T) T {
	if e, ok := c.items[entity.ID()]; ok {
		return e.Value.(T)
	}

	c.items[entity.ID()] = c.order.PushBack(entity)
	c.evict()
	return entity
}

// AddData builds an entity from raw data with the collection factory and adds
// it. Data without a usable id fails with a MalformedEntity error and leaves
// the collection untouched. If the id already exists, the existing entity is
// returned without calling the factory.
func (c *Collection[T]) AddData(data map[string]any) (T, error) {
	var zero T

	id, err := IDOf(data)
	if err != nil {
		return zero, err
	}

	if existing, ok := c.Get(id); ok {
		return existing, nil
	}

	if c.factory == nil {
		return zero, errorx.New(errorx.Internal, "collection of %T has no factory", zero)
	}

	entity, err := c.factory(data)
	if err != nil {
		return zero, err
	}

	return c.Add(entity), nil
}

func (c *Collection[T]) Get(id string) (T, bool) {
	e, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}

	return e.Value.(T), true
}

func (c *Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

func (c *Collection[T]) Remove(id string) (T, bool) {
	e, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}

	delete(c.items, id)
	return c.order.Remove(e).(T), true
}

// Range calls fn for each entity in insertion order until fn returns false.
// The collection must not be modified from fn.
func (c *Collection[T]) Range(fn func(T) bool) {
	for e := c.order.Front(); e != nil; e = e.Next() {
		if !fn(e.Value.(T)) {
			return
		}
	}
}

// Values returns the entities in insertion order.
func (c *Collection[T]) Values() []T {
	values := make([]T, 0, c.order.Len())
	c.Range(func(v T) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Keys returns the ids in insertion order.
func (c *Collection[T]) Keys() []string {
	keys := make([]string, 0, c.order.Len())
	c.Range(func(v T) bool {
		keys = append(keys, v.ID())
		return true
	})
	return keys
}

// ToMap serializes the collection as id -> serialized entity. Entities
// implementing ToMap are serialized with it, others are stored as is.
func (c *Collection[T]) ToMap() map[string]any {
	m := make(map[string]any, c.order.Len())
	c.Range(func(v T) bool {
		if s, ok := any(v).(interface{ ToMap() map[string]any }); ok {
			m[v.ID()] = s.ToMap()
		} else {
			m[v.ID()] = v
		}
		return true
	})
	return m
}

func (c *Collection[T]) evict() {
	if c.limit <= 0 {
		return
	}

	for c.order.Len() > c.limit {
		oldest := c.order.Front()
		delete(c.items, oldest.Value.(T).ID())
		c.order.Remove(oldest)
	}
}

// IDOf extracts the id of raw entity data. Ids are strings on the wire, but
// integral numbers are accepted and formatted in base 10.
func IDOf(data map[string]any) (string, error) {
	raw, ok := data["id"]
	if !ok || raw == nil {
		return "", errorx.ErrMissingID
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", errorx.ErrMissingID
		}
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return "", errorx.New(errorx.MalformedEntity, "entity id %v is not an integer", v)
		}
		return strconv.FormatFloat(v, 'f', 0, 64), nil
	}

	return "", errorx.New(errorx.MalformedEntity, "entity id has invalid type %T", raw)
}
