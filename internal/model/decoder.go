package model

import (
	"time"

	"github.com/questx-lab/guildstate/pkg/optional"
)

// fieldDecoder decodes optional fields of one payload and keeps the first
// error, so that patches can be decoded field after field without checking
// each error.
type fieldDecoder struct {
	data map[string]any
	err  error
}

func newFieldDecoder(data map[string]any) *fieldDecoder {
	return &fieldDecoder{data: data}
}

func field[T any](d *fieldDecoder, key string) optional.Value[T] {
	if d.err != nil {
		return optional.Value[T]{}
	}

	v, err := optional.Decode[T](d.data, key)
	if err != nil {
		d.err = err
		return optional.Value[T]{}
	}

	return v
}

// timeField decodes an ISO8601 timestamp. An explicit null or an empty string
// gives a present nil time.
func timeField(d *fieldDecoder, key string) optional.Value[*time.Time] {
	raw := field[*string](d, key)
	s, ok := raw.Get()
	if !ok {
		return optional.Value[*time.Time]{}
	}

	if s == nil || *s == "" {
		return optional.Of[*time.Time](nil)
	}

	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		if d.err == nil {
			d.err = err
		}
		return optional.Value[*time.Time]{}
	}

	return optional.Of(&t)
}
