package handle

// Handle is an opaque reference to a value in a table.
// Handle 0 is reserved and always invalid.
//
// The low 16 bits hold the slot index plus one, the high 16 bits a
// generation counter bumped every time a slot is reused. A slot whose
// generation is exhausted is retired instead of wrapping, so a released
// handle never resolves to a later value.
type Handle uint32

const (
	indexBits = 16
	indexMask = 1<<indexBits - 1
	maxSlots  = indexMask
	maxGen    = 1<<(32-indexBits) - 1
)

func makeHandle(slot int, gen uint16) Handle {
	return Handle(uint32(gen)<<indexBits | uint32(slot+1))
}

func (h Handle) slot() int {
	return int(uint32(h)&indexMask) - 1
}

func (h Handle) gen() uint16 {
	return uint16(uint32(h) >> indexBits)
}

// Event types for lifecycle notifications.
type EventType uint8

const (
	EventCreated  EventType = iota
	EventDropped            // released by its owner
	EventTaken              // ownership moved out of the table
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventTaken:
		return "taken"
	default:
		return "unknown"
	}
}

// Event represents a lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnHandleEvent(e Event) { f(e) }

// Dropper is optionally implemented by values that need cleanup when they
// are released.
type Dropper interface {
	Drop()
}
