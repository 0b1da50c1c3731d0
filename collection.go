// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
)

// Collection is an immutable ordered list of gateway records of one type
type Collection[T any] struct {
	items []T
}

// NewCollection creates a Collection holding a copy of items
func NewCollection[T any](items ...T) *Collection[T] {
	c := &Collection[T]{items: make([]T, len(items))}
	copy(c.items, items)
	return c
}

// CollectionOf creates a Collection from untyped values.
//
// Every element must have type T. The first element that does not fails the
// whole construction with an error naming both the expected type and the
// element's actual type.
//
// Example:
//
//	c, err := dinstar.CollectionOf[dinstar.CDRItem](dinstar.CDRItem{}, "oops")
//	// err: dinstar: collection of dinstar.CDRItem cannot hold element 1 of type string
func CollectionOf[T any](items ...any) (*Collection[T], error) {
	typed := make([]T, 0, len(items))
	for i, item := range items {
		v, ok := item.(T)
		if !ok {
			return nil, fmt.Errorf("dinstar: collection of %s cannot hold element %d of type %s",
				typeName[T](), i, actualTypeName(item))
		}
		typed = append(typed, v)
	}
	return &Collection[T]{items: typed}, nil
}

// Len returns the number of items
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// IsEmpty reports whether the collection has no items
func (c *Collection[T]) IsEmpty() bool {
	return c.Len() == 0
}

// At returns the item at index i. It panics if i is out of range, like a slice.
func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// Items returns a copy of the items
func (c *Collection[T]) Items() []T {
	if c == nil {
		return nil
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// All iterates over index/item pairs
//
// Example:
//
//	for i, cdr := range res.Data.All() {
//	    fmt.Println(i, *cdr.SourceNumber)
//	}
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if c == nil {
			return
		}
		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// MarshalJSON encodes the collection as a JSON array
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	if c == nil || c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func actualTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
