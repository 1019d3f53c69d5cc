// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package frame

// Contains is a predicate over values of type T, used as an allow list.
type Contains[T any] interface {
	Contains(value T) bool
}

// ContainsFunc is a function implementing Contains.
type ContainsFunc[T any] func(value T) bool

// Contains returns f(value).
func (f ContainsFunc[T]) Contains(value T) bool { return f(value) }

// Everything contains every value.
type Everything[T any] struct{}

// Contains returns true.
func (Everything[T]) Contains(T) bool { return true }

// Nothing contains no value.
type Nothing[T any] struct{}

// Contains returns false.
func (Nothing[T]) Contains(T) bool { return false }

type and[T any] []Contains[T]

func (a and[T]) Contains(value T) bool {
	for _, c := range a {
		if !c.Contains(value) {
			return false
		}
	}
	return true
}

// And returns a predicate containing the values contained by all the
// predicates given.
func And[T any](predicates ...Contains[T]) Contains[T] {
	return and[T](predicates)
}
