package tags

import "fmt"

// Value holds a tag field that may be absent from the file.
type Value[T any] struct {
	value   T
	present bool
}

// Some returns a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

// Missing returns an absent value.
func Missing[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it was present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.present
}

// Present reports whether the tag existed in the file.
func (v Value[T]) Present() bool {
	return v.present
}

// Or returns the value when present and fallback otherwise.
func (v Value[T]) Or(fallback T) T {
	if !v.present {
		return fallback
	}
	return v.value
}

func (v Value[T]) String() string {
	if !v.present {
		return "<missing>"
	}
	return fmt.Sprint(v.value)
}
