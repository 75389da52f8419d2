package handle

import (
	"errors"
	"sync"
)

var ErrFull = errors.New("handle table full")

// backend is the slot storage behind a Table.
type backend struct {
	entries  []entry
	freeList []int
	mu       sync.RWMutex
}

type entry struct {
	value  any
	typeID uint32
	gen    uint16
	valid  bool
}

func newBackend() *backend {
	return &backend{
		entries:  make([]entry, 0, 16),
		freeList: make([]int, 0, 4),
	}
}

func (b *backend) create(typeID uint32, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.freeList); n > 0 {
		slot := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		e := &b.entries[slot]
		e.gen++
		e.typeID = typeID
		e.value = value
		e.valid = true
		return makeHandle(slot, e.gen), nil
	}

	if len(b.entries) >= maxSlots {
		return 0, ErrFull
	}
	b.entries = append(b.entries, entry{typeID: typeID, value: value, valid: true})
	return makeHandle(len(b.entries)-1, 0), nil
}

// lookup returns the live entry for h. Must be called with b.mu held.
func (b *backend) lookup(h Handle) *entry {
	if h == 0 {
		return nil
	}
	slot := h.slot()
	if slot < 0 || slot >= len(b.entries) {
		return nil
	}
	e := &b.entries[slot]
	if !e.valid || e.gen != h.gen() {
		return nil
	}
	return e
}

func (b *backend) get(h Handle) (value any, typeID uint32, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(h)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.typeID, true
}

// remove invalidates h and returns what it held.
func (b *backend) remove(h Handle, typeID uint32, checkType bool) (any, uint32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(h)
	if e == nil || (checkType && e.typeID != typeID) {
		return nil, 0, false
	}

	value, tid := e.value, e.typeID
	e.valid = false
	e.value = nil
	if e.gen < maxGen {
		b.freeList = append(b.freeList, h.slot())
	}
	return value, tid, true
}

func (b *backend) len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}
