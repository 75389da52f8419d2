package handle

import (
	"sync"
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnHandleEvent(e Event) {
	o.events = append(o.events, e)
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.GetTyped(h, 1)
	if !ok || val != "test" {
		t.Fatalf("Get() = %v, %v", val, ok)
	}

	if _, ok := table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with correct type failed")
	}
	if _, ok := table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	if table.Release(h, 2) {
		t.Fatal("Release with wrong type should fail")
	}
	if !table.Release(h, 1) {
		t.Fatal("Release failed")
	}
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Release")
	}
}

func TestTable_ZeroHandle(t *testing.T) {
	table := NewTable()
	if _, ok := table.GetTyped(0, 1); ok {
		t.Error("handle 0 must never resolve")
	}
	if table.Release(0, 1) {
		t.Error("handle 0 must never release")
	}
}

func TestTable_ReleaseTwice(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, d)
	if !table.Release(h, 1) {
		t.Fatal("first Release failed")
	}
	if table.Release(h, 1) {
		t.Fatal("second Release should report false")
	}
	if d.count != 1 {
		t.Fatalf("Drop() called %d times, want 1", d.count)
	}
}

func TestTable_TakeDoesNotDrop(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, d)
	v, ok := table.Take(h, 1)
	if !ok || v != d {
		t.Fatalf("Take() = %v, %v", v, ok)
	}
	if d.count != 0 {
		t.Fatal("Take must not drop the value")
	}
	if _, ok := table.GetTyped(h, 1); ok {
		t.Fatal("handle must be dead after Take")
	}
	if table.Release(h, 1) {
		t.Fatal("Release after Take must fail")
	}
}

func TestTable_StaleHandleAfterReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Insert(1, "first")
	table.Release(h1, 1)
	h2 := table.Insert(1, "second")

	if h1 == h2 {
		t.Fatal("reused slot must produce a different handle")
	}
	if h1.slot() != h2.slot() {
		t.Fatalf("expected slot reuse, got %d and %d", h1.slot(), h2.slot())
	}
	if _, ok := table.GetTyped(h1, 1); ok {
		t.Fatal("stale handle resolved to the new value")
	}
	if v, ok := table.GetTyped(h2, 1); !ok || v != "second" {
		t.Fatalf("Get(h2) = %v, %v", v, ok)
	}
}

func TestTable_StaleHandleAfterManyReuses(t *testing.T) {
	table := NewTable()

	first := table.Insert(1, 0)
	table.Release(first, 1)
	for i := 1; i <= 300; i++ {
		h := table.Insert(1, i)
		if h.slot() != first.slot() {
			t.Fatalf("expected slot reuse, got slot %d", h.slot())
		}
		if _, ok := table.GetTyped(first, 1); ok {
			t.Fatalf("stale handle resolved after %d reuses", i)
		}
		table.Release(h, 1)
	}
}

func TestTable_ExhaustedSlotIsRetired(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "old")
	table.backend.entries[h.slot()].gen = maxGen
	h = makeHandle(h.slot(), maxGen)
	if !table.Release(h, 1) {
		t.Fatal("Release failed")
	}

	next := table.Insert(1, "new")
	if next.slot() == h.slot() {
		t.Fatal("slot with an exhausted generation was reused")
	}
	if _, ok := table.GetTyped(makeHandle(h.slot(), 0), 1); ok {
		t.Fatal("wrapped generation resolved")
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(1, "a")
	table.Release(h, 1)
	h = table.Insert(2, "b")
	table.Take(h, 2)

	want := []EventType{EventCreated, EventDropped, EventCreated, EventTaken}
	if len(obs.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(obs.events), len(want))
	}
	for i, e := range obs.events {
		if e.Type != want[i] {
			t.Errorf("event %d = %s, want %s", i, e.Type, want[i])
		}
	}
	if obs.events[3].TypeID != 2 || obs.events[3].Value != "b" {
		t.Errorf("unexpected event payload: %+v", obs.events[3])
	}
}

func TestTyped(t *testing.T) {
	table := NewTable()
	strs := NewTyped[string](table, 1)
	ints := NewTyped[int](table, 2)

	hs := strs.Insert("x")
	hi := ints.Insert(7)

	if v, ok := strs.Get(hs); !ok || v != "x" {
		t.Errorf("strs.Get = %q, %v", v, ok)
	}
	if _, ok := strs.Get(hi); ok {
		t.Error("typed view resolved a handle of another type")
	}
	if v, ok := ints.Take(hi); !ok || v != 7 {
		t.Errorf("ints.Take = %d, %v", v, ok)
	}
	if !strs.Release(hs) {
		t.Error("strs.Release failed")
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d", table.Len())
	}
}

func TestTable_Concurrent(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				h := table.Insert(1, n)
				if v, ok := table.GetTyped(h, 1); !ok || v != n {
					t.Errorf("Get = %v, %v", v, ok)
					return
				}
				table.Release(h, 1)
			}
		}(i)
	}
	wg.Wait()

	if table.Len() != 0 {
		t.Fatalf("Len() = %d after concurrent churn", table.Len())
	}
}
