package handle

import (
	"sync"
)

// Table maps handles to values with a type tag per entry.
type Table struct {
	backend   *backend
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{backend: newBackend()}
}

// Insert adds a value and returns its handle, or 0 if the table is full.
func (t *Table) Insert(typeID uint32, value any) Handle {
	h, err := t.backend.create(typeID, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		TypeID: typeID,
		Value:  value,
	})
	return h
}

// GetTyped retrieves a value only if it was inserted with typeID.
func (t *Table) GetTyped(h Handle, typeID uint32) (any, bool) {
	v, tid, ok := t.backend.get(h)
	if !ok || tid != typeID {
		return nil, false
	}
	return v, true
}

// Take removes the value behind h without dropping it and hands ownership to
// the caller. The handle is invalid afterwards.
func (t *Table) Take(h Handle, typeID uint32) (any, bool) {
	v, tid, ok := t.backend.remove(h, typeID, true)
	if !ok {
		return nil, false
	}
	t.notify(Event{Type: EventTaken, Handle: h, TypeID: tid, Value: v})
	return v, true
}

// Release removes the value behind h and drops it if it implements Dropper.
// Releasing an unknown or already released handle reports false and does
// nothing.
func (t *Table) Release(h Handle, typeID uint32) bool {
	v, tid, ok := t.backend.remove(h, typeID, true)
	if !ok {
		return false
	}
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDropped, Handle: h, TypeID: tid, Value: v})
	return true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return t.backend.len()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}

// Typed gives type-safe access to the entries of one type in a Table.
type Typed[T any] struct {
	table  *Table
	typeID uint32
}

// NewTyped returns a view of table restricted to typeID.
func NewTyped[T any](table *Table, typeID uint32) Typed[T] {
	return Typed[T]{table: table, typeID: typeID}
}

// Insert adds value and returns its handle.
func (t Typed[T]) Insert(value T) Handle {
	return t.table.Insert(t.typeID, value)
}

// Get retrieves the value behind h.
func (t Typed[T]) Get(h Handle) (T, bool) {
	var zero T
	v, ok := t.table.GetTyped(h, t.typeID)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Take moves the value behind h out of the table.
func (t Typed[T]) Take(h Handle) (T, bool) {
	var zero T
	v, ok := t.table.Take(h, t.typeID)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Release drops the value behind h.
func (t Typed[T]) Release(h Handle) bool {
	return t.table.Release(h, t.typeID)
}
