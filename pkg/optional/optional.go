// Package optional carries the presence of a field in a partial update
// payload separately from its value, so that a zero value sent on purpose is
// not confused with a field that was left out.
package optional

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type Value[T any] struct {
	value   T
	present bool
}

func Of[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

func (v Value[T]) Present() bool {
	return v.present
}

func (v Value[T]) Get() (T, bool) {
	return v.value, v.present
}

// Apply overwrites *dst if the value is present.
func (v Value[T]) Apply(dst *T) {
	if v.present {
		*dst = v.value
	}
}

// OrElse returns the value if present, otherwise fallback.
func (v Value[T]) OrElse(fallback T) T {
	if v.present {
		return v.value
	}

	return fallback
}

// Decode looks up key in data. An absent key gives an absent value. A present
// key, including an explicit nil, gives a present value decoded into T; nil
// decodes to the zero value of T.
func Decode[T any](data map[string]any, key string) (Value[T], error) {
	raw, ok := data[key]
	if !ok {
		return Value[T]{}, nil
	}

	var v T
	if raw == nil {
		return Of(v), nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &v,
	})
	if err != nil {
		return Value[T]{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return Value[T]{}, fmt.Errorf("invalid field %s: %w", key, err)
	}

	return Of(v), nil
}
