// Package enum holds closed, ordered sets of wire tokens for status and type fields.
package enum

import "slices"

// Set is the read-only view validators need; every Registry satisfies it.
type Set interface {
	Name() string
	Strings() []string
	Contains(s string) bool
}

type Registry[T ~string] struct {
	name   string
	values []T
}

func New[T ~string](name string, values ...T) Registry[T] {
	return Registry[T]{name: name, values: slices.Clone(values)}
}

func (r Registry[T]) Name() string {
	return r.name
}

// Values returns the tokens in declaration order.
func (r Registry[T]) Values() []T {
	return slices.Clone(r.values)
}

func (r Registry[T]) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = string(v)
	}
	return out
}

// Contains is an exact, case-sensitive membership test.
func (r Registry[T]) Contains(s string) bool {
	return slices.Contains(r.values, T(s))
}

func (r Registry[T]) Parse(s string) (T, bool) {
	if !r.Contains(s) {
		var zero T
		return zero, false
	}
	return T(s), true
}
