package jcpc

import "github.com/holoplot/go-evdev"

// Event is a single input event read from, or written to, an evdev node.
type Event = evdev.InputEvent

// Source is something that can become ready for reading. The channel
// receives a value each time new data is pending; spurious wakeups are
// allowed.
type Source interface {
	Ready() <-chan struct{}
}

// Physical is one hardware controller as exposed by the kernel driver: a
// single Joy-Con half or a standalone pad.
type Physical interface {
	Sources() []Source
	DevPath() string
	Name() string
	// Serial is the Bluetooth address when the driver reports one, or "".
	Serial() string
	Model() Model
	PairingState() PairingState

	// HandleEvents drains the events that are pending on the controller,
	// updates the pairing state, and returns the drained events so a
	// virtual controller can forward them.
	HandleEvents() []Event

	SetAllPlayerLights(on bool)
	SetPlayerLights(player int)
	// BlinkPlayerLights flashes every player light to identify the
	// controller.
	BlinkPlayerLights()

	Close() error
}

// Virtual is an OS-visible controller built from one or two Physical
// controllers.
type Virtual interface {
	// ID is a stable identifier for log output.
	ID() string
	Kind() string

	// NeedsModel reports the model missing for the virtual controller to be
	// complete. ok is false when nothing is missing.
	NeedsModel() (m Model, ok bool)
	// SupportsHotSwap reports whether members can be attached or detached
	// after creation.
	SupportsHotSwap() bool
	Members() []Physical
	Contains(s Source) bool
	HandleEvents(s Source)

	Attach(p Physical)
	Detach(p Physical)
	// Empty is true once every member has been detached.
	Empty() bool

	Close() error
}

// PhysicalFactory opens the physical controller at devpath.
type PhysicalFactory func(devpath, name string) (Physical, error)

// VirtualFactory creates the two kinds of virtual controller.
type VirtualFactory interface {
	Passthrough(p Physical) (Virtual, error)
	Combined(left, right Physical) (Virtual, error)
}

// Subscriber binds a set of sources to a callback. The callback receives
// the source that became ready.
type Subscriber struct {
	Sources  []Source
	Callback func(s Source)
}

// Multiplexer delivers readiness of subscribed sources. Callbacks for all
// subscribers run on a single goroutine.
type Multiplexer interface {
	AddSubscriber(s *Subscriber)
	RemoveSubscriber(s *Subscriber)
}

// Output represents an OS-level event sink for a combined controller.
type Output interface {
	WriteEvent(ev Event) error
	Close() error
}

// OutputFactory creates the sink for a new combined controller.
type OutputFactory func(name string) (Output, error)
