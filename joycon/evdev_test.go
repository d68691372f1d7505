package joycon

import (
	"os"
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/riking/joycon/joycond/jcpc"
)

func key(code evdev.EvCode, value int32) jcpc.Event {
	return jcpc.Event{Type: evdev.EV_KEY, Code: code, Value: value}
}

func TestHandleEventsTracksGesture(t *testing.T) {
	jc := newJoycon("/dev/input/event3", "Nintendo Switch Left Joy-Con", jcpc.ModelLeft)
	assert.Equal(t, jcpc.StatePairing, jc.PairingState())

	jc.push(key(evdev.BTN_TL, 1))
	jc.push(jcpc.Event{Type: evdev.EV_SYN})
	select {
	case <-jc.Ready():
	default:
		t.Fatal("push did not signal readiness")
	}

	events := jc.HandleEvents()
	assert.Len(t, events, 2)
	assert.Equal(t, jcpc.StateWaiting, jc.PairingState())

	jc.push(key(evdev.BTN_TL, 0))
	jc.push(key(evdev.BTN_TR, 1))
	jc.push(key(evdev.BTN_TR2, 1))
	jc.HandleEvents()
	assert.Equal(t, jcpc.StateHorizontal, jc.PairingState())

	assert.Empty(t, jc.HandleEvents())
	assert.Equal(t, jcpc.StateHorizontal, jc.PairingState())
}

func TestHandleEventsIgnoresOtherKeys(t *testing.T) {
	jc := newJoycon("/dev/input/event4", "Nintendo Switch Right Joy-Con", jcpc.ModelRight)
	jc.push(key(evdev.BTN_SOUTH, 1))
	jc.HandleEvents()
	assert.Equal(t, jcpc.StatePairing, jc.PairingState())
}

func TestReadErrorDisconnects(t *testing.T) {
	for _, err := range []error{
		&os.PathError{Op: "read", Path: "/dev/input/event5", Err: unix.ENODEV},
		errors.New("short read"),
	} {
		jc := newJoycon("/dev/input/event5", "Pro Controller", jcpc.ModelStandalone)
		jc.push(key(evdev.BTN_TL, 1))
		jc.fail(err)

		assert.Len(t, jc.HandleEvents(), 1)
		assert.Equal(t, jcpc.StateDisconnected, jc.PairingState())

		// sticky
		jc.push(key(evdev.BTN_TR, 1))
		jc.HandleEvents()
		assert.Equal(t, jcpc.StateDisconnected, jc.PairingState())
	}
}

func TestLightsWithoutLEDs(t *testing.T) {
	jc := newJoycon("/dev/input/event6", "Pro Controller", jcpc.ModelStandalone)
	assert.NotPanics(t, func() {
		jc.BlinkPlayerLights()
		jc.SetAllPlayerLights(false)
		jc.SetPlayerLights(3)
	})
	assert.NoError(t, jc.Close())
}

func TestPlayerIndex(t *testing.T) {
	cases := map[string]struct {
		n  int
		ok bool
	}{
		"0005:057E:2006.0001:green:player-1": {0, true},
		"0005:057E:2006.0001:green:player-4": {3, true},
		"0005:057E:2006.0001:green:player-5": {0, false},
		"0005:057E:2006.0001:blue:home":      {0, false},
		"input3::capslock":                   {0, false},
	}
	for name, want := range cases {
		n, ok := playerIndex(name)
		assert.Equal(t, want.ok, ok, name)
		assert.Equal(t, want.n, n, name)
	}
}
