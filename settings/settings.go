// Package settings holds the user-configurable options of an auto-splitter
// script: the key/value store the host fills in before a runtime exists, and
// the setting declarations the script registers while it runs.
package settings

import (
	"maps"
	"slices"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	ValueBool ValueKind = iota + 1
)

// Value is a stored setting value.
type Value struct {
	kind ValueKind
	b    bool
}

// Bool returns a boolean Value.
func Bool(v bool) Value {
	return Value{kind: ValueBool, b: v}
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind {
	return v.kind
}

// AsBool returns the boolean held by v, or false and !ok if v is not a boolean.
func (v Value) AsBool() (value, ok bool) {
	if v.kind != ValueBool {
		return false, false
	}
	return v.b, true
}

// Store maps setting keys to values. Writes overwrite silently.
//
// Store is not safe for concurrent use. Once handed to a runtime the runtime
// owns it and the previous owner must not touch it again.
type Store struct {
	values map[string]Value
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]Value)}
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value Value) {
	s.values[key] = value
}

// SetBool stores a boolean under key, replacing any previous value.
func (s *Store) SetBool(key string, value bool) {
	s.Set(key, Bool(value))
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Bool returns the boolean stored under key. ok is false when the key is
// missing or holds another kind of value.
func (s *Store) Bool(key string) (value, ok bool) {
	v, found := s.values[key]
	if !found {
		return false, false
	}
	return v.AsBool()
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.values)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Clone returns an independent copy of s.
func (s *Store) Clone() *Store {
	return &Store{values: maps.Clone(s.values)}
}
