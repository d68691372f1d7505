package joycon

import (
	"sync"

	"github.com/holoplot/go-evdev"
	"github.com/jochenvg/go-udev"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/riking/joycon/joycond/jcpc"
)

// joyconEvdev is a controller driven by hid-nintendo, read through its
// evdev node. A reader goroutine queues events; HandleEvents drains them on
// the caller's goroutine.
type joyconEvdev struct {
	dev     *evdev.InputDevice
	devpath string
	name    string
	serial  string
	model   jcpc.Model
	leds    *playerLEDs

	ready chan struct{}

	// protected by mu
	mu      sync.Mutex
	queue   []jcpc.Event
	readErr error

	// owned by the HandleEvents caller
	buttons jcpc.PairButtons
	state   jcpc.PairingState
}

// Open opens the evdev node at devpath. u is used to find the controller's
// player lights and Bluetooth address; it may be nil.
func Open(u *udev.Udev, devpath, name string) (jcpc.Physical, error) {
	dev, err := evdev.Open(devpath)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", devpath)
	}
	id, err := dev.InputID()
	if err != nil {
		dev.Close()
		return nil, errors.Wrapf(err, "read input id of %s", devpath)
	}

	jc := newJoycon(devpath, name, jcpc.ModelFor(id.Vendor, id.Product, name))
	jc.dev = dev
	if u != nil {
		jc.serial, jc.leds = lookupUdev(u, devpath)
	}
	if jc.leds == nil {
		log.Warn().Str("devpath", devpath).Msg("no player lights found")
	}
	go jc.reader()
	return jc, nil
}

func newJoycon(devpath, name string, model jcpc.Model) *joyconEvdev {
	return &joyconEvdev{
		devpath: devpath,
		name:    name,
		model:   model,
		ready:   make(chan struct{}, 1),
	}
}

func (jc *joyconEvdev) Ready() <-chan struct{} {
	return jc.ready
}

func (jc *joyconEvdev) Sources() []jcpc.Source {
	return []jcpc.Source{jc}
}

func (jc *joyconEvdev) DevPath() string {
	return jc.devpath
}

func (jc *joyconEvdev) Name() string {
	return jc.name
}

func (jc *joyconEvdev) Serial() string {
	return jc.serial
}

func (jc *joyconEvdev) Model() jcpc.Model {
	return jc.model
}

func (jc *joyconEvdev) PairingState() jcpc.PairingState {
	return jc.state
}

func (jc *joyconEvdev) HandleEvents() []jcpc.Event {
	jc.mu.Lock()
	events := jc.queue
	jc.queue = nil
	readErr := jc.readErr
	jc.mu.Unlock()

	if jc.state == jcpc.StateDisconnected {
		return events
	}
	for _, ev := range events {
		if ev.Type != evdev.EV_KEY {
			continue
		}
		if b, ok := jcpc.PairButtonFor(jc.model, ev.Code); ok {
			jc.buttons = jc.buttons.Set(b, ev.Value != 0)
		}
	}

	if readErr != nil {
		if errors.Is(readErr, unix.ENODEV) {
			log.Debug().Str("devpath", jc.devpath).Msg("controller went away")
		} else {
			log.Warn().Err(readErr).Str("devpath", jc.devpath).Msg("controller read failed")
		}
		jc.state = jcpc.StateDisconnected
		return events
	}
	jc.state = jc.buttons.PairingState(jc.model)
	return events
}

func (jc *joyconEvdev) SetAllPlayerLights(on bool) {
	if on {
		jc.leds.apply(0x0F)
	} else {
		jc.leds.apply(jcpc.LightsOff)
	}
}

func (jc *joyconEvdev) SetPlayerLights(player int) {
	jc.leds.apply(jcpc.PlayerLights(player))
}

func (jc *joyconEvdev) BlinkPlayerLights() {
	jc.leds.apply(jcpc.LightsBlink)
}

func (jc *joyconEvdev) Close() error {
	if jc.dev == nil {
		return nil
	}
	return jc.dev.Close()
}

func (jc *joyconEvdev) reader() {
	for {
		ev, err := jc.dev.ReadOne()
		if err != nil {
			jc.fail(err)
			return
		}
		jc.push(*ev)
	}
}

func (jc *joyconEvdev) push(ev jcpc.Event) {
	jc.mu.Lock()
	jc.queue = append(jc.queue, ev)
	jc.mu.Unlock()
	jc.signal()
}

func (jc *joyconEvdev) fail(err error) {
	jc.mu.Lock()
	jc.readErr = err
	jc.mu.Unlock()
	jc.signal()
}

func (jc *joyconEvdev) signal() {
	select {
	case jc.ready <- struct{}{}:
	default:
	}
}
