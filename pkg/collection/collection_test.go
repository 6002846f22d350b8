package collection

import (
	"errors"
	"fmt"
	"testing"

	"github.com/questx-lab/guildstate/pkg/errorx"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    string
	value string
}

func (i *item) ID() string {
	return i.id
}

func (i *item) ToMap() map[string]any {
	return map[string]any{"id": i.id, "value": i.value}
}

func newItem(data map[string]any) (*item, error) {
	id, err := IDOf(data)
	if err != nil {
		return nil, err
	}

	value, _ := data["value"].(string)
	if value == "bad" {
		return nil, errors.New("bad value")
	}

	return &item{id: id, value: value}, nil
}

func TestCollection_Eviction(t *testing.T) {
	t.Run("evict the oldest inserted entry", func(t *testing.T) {
		c := New[*item](3, nil)
		for i := 1; i <= 4; i++ {
			c.Add(&item{id: fmt.Sprint(i)})
		}

		require.Equal(t, 3, c.Len())
		require.False(t, c.Has("1"))
		require.Equal(t, []string{"2", "3", "4"}, c.Keys())
	})

	t.Run("re-adding an id keeps its insertion order", func(t *testing.T) {
		c := New[*item](3, nil)
		c.Add(&item{id: "1"})
		c.Add(&item{id: "2"})
		c.Add(&item{id: "3"})

		got := c.Add(&item{id: "1", value: "new"})
		require.Equal(t, "", got.value)

		c.Add(&item{id: "4"})
		require.Equal(t, []string{"2", "3", "4"}, c.Keys())
	})

	t.Run("reads do not refresh entries", func(t *testing.T) {
		c := New[*item](2, nil)
		c.Add(&item{id: "1"})
		c.Add(&item{id: "2"})
		_, ok := c.Get("1")
		require.True(t, ok)

		c.Add(&item{id: "3"})
		require.Equal(t, []string{"2", "3"}, c.Keys())
	})

	t.Run("unlimited", func(t *testing.T) {
		for _, limit := range []int{0, -1} {
			c := New[*item](limit, nil)
			for i := 0; i < 1000; i++ {
				c.Add(&item{id: fmt.Sprint(i)})
			}
			require.Equal(t, 1000, c.Len())
		}
	})

	t.Run("remove then add goes to the back", func(t *testing.T) {
		c := New[*item](2, nil)
		c.Add(&item{id: "1"})
		c.Add(&item{id: "2"})

		removed, ok := c.Remove("1")
		require.True(t, ok)
		require.Equal(t, "1", removed.id)

		_, ok = c.Remove("1")
		require.False(t, ok)

		c.Add(&item{id: "1"})
		c.Add(&item{id: "3"})
		require.Equal(t, []string{"1", "3"}, c.Keys())
	})
}

func TestCollection_AddData(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		wantID   string
		wantCode errorx.Code
		wantErr  bool
	}{
		{name: "string id", data: map[string]any{"id": "10", "value": "a"}, wantID: "10"},
		{name: "numeric id", data: map[string]any{"id": float64(42)}, wantID: "42"},
		{name: "missing id", data: map[string]any{"value": "a"}, wantErr: true, wantCode: errorx.MalformedEntity},
		{name: "null id", data: map[string]any{"id": nil}, wantErr: true, wantCode: errorx.MalformedEntity},
		{name: "empty id", data: map[string]any{"id": ""}, wantErr: true, wantCode: errorx.MalformedEntity},
		{name: "fractional id", data: map[string]any{"id": 1.5}, wantErr: true, wantCode: errorx.MalformedEntity},
		{name: "invalid id type", data: map[string]any{"id": true}, wantErr: true, wantCode: errorx.MalformedEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New[*item](0, newItem)
			got, err := c.AddData(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errorx.IsCode(err, tt.wantCode))
				require.Equal(t, 0, c.Len())
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantID, got.ID())
			require.True(t, c.Has(tt.wantID))
		})
	}

	t.Run("existing id is not rebuilt", func(t *testing.T) {
		c := New[*item](0, newItem)
		first, err := c.AddData(map[string]any{"id": "1", "value": "a"})
		require.NoError(t, err)

		second, err := c.AddData(map[string]any{"id": "1", "value": "bad"})
		require.NoError(t, err)
		require.Same(t, first, second)
		require.Equal(t, "a", second.value)
	})

	t.Run("factory failure does not add", func(t *testing.T) {
		c := New[*item](0, newItem)
		_, err := c.AddData(map[string]any{"id": "1", "value": "bad"})
		require.Error(t, err)
		require.False(t, c.Has("1"))
	})

	t.Run("no factory", func(t *testing.T) {
		c := New[*item](0, nil)
		_, err := c.AddData(map[string]any{"id": "1"})
		require.True(t, errorx.IsCode(err, errorx.Internal))
	})
}

func TestCollection_Iteration(t *testing.T) {
	c := New[*item](0, nil)
	c.Add(&item{id: "b", value: "2"})
	c.Add(&item{id: "a", value: "1"})

	var seen []string
	c.Range(func(i *item) bool {
		seen = append(seen, i.id)
		return false
	})
	require.Equal(t, []string{"b"}, seen)

	require.Len(t, c.Values(), 2)
	require.Equal(t, map[string]any{
		"a": map[string]any{"id": "a", "value": "1"},
		"b": map[string]any{"id": "b", "value": "2"},
	}, c.ToMap())
}
