// Package handle provides the handle tables behind objects that cross the
// foreign boundary.
//
// A host never sees Go memory. It holds small integer handles, and each
// handle resolves to a Go value through a Table:
//
//	table := handle.NewTable()
//
//	// Insert a value, get a handle
//	h := table.Insert(StoreType, store)
//
//	// Borrow it
//	v, ok := table.GetTyped(h, StoreType)
//
//	// Move it out (ownership transfer; h is dead afterwards)
//	v, ok = table.Take(h, StoreType)
//
//	// Or destroy it (calls Drop if the value implements Dropper)
//	table.Release(h, StoreType)
//
// # Lifecycle
//
// Every handle is created by exactly one Insert and ends with exactly one
// Take or Release. A second Release of the same handle reports false and
// does nothing. Slots are reused, but each reuse bumps a generation counter
// stored in the handle, so stale handles do not resolve to the new value.
//
// # Observers
//
// Observers see every created, taken and dropped event, which is how tests
// and debug logging check that nothing leaks:
//
//	table.Subscribe(handle.ObserverFunc(func(e handle.Event) {
//	    log.Printf("handle %d %s", e.Handle, e.Type)
//	}))
package handle
