package output

import (
	"github.com/holoplot/go-evdev"

	"github.com/riking/joycon/joycond/jcpc"
)

const (
	busVirtual = 0x06
	// product ID the Switch itself uses for a pair of Joy-Cons in the grip
	productCombined = 0x2008
)

type keyRemap struct {
	From evdev.EvCode
	To   evdev.EvCode
}

// The rail buttons of each half collide with the shoulder buttons of the
// other half, so they move to the extra trigger range when merged.
var (
	remapLeft = []keyRemap{
		{evdev.BTN_TR, evdev.BTN_TRIGGER_HAPPY1},  // SL
		{evdev.BTN_TR2, evdev.BTN_TRIGGER_HAPPY2}, // SR
	}
	remapRight = []keyRemap{
		{evdev.BTN_TL, evdev.BTN_TRIGGER_HAPPY3},  // SL
		{evdev.BTN_TL2, evdev.BTN_TRIGGER_HAPPY4}, // SR
	}
)

// CombinedKeys are the buttons a combined controller can report.
var CombinedKeys = []evdev.EvCode{
	evdev.BTN_SOUTH,
	evdev.BTN_EAST,
	evdev.BTN_NORTH,
	evdev.BTN_WEST,
	evdev.BTN_TL,
	evdev.BTN_TR,
	evdev.BTN_TL2,
	evdev.BTN_TR2,
	evdev.BTN_SELECT,
	evdev.BTN_START,
	evdev.BTN_MODE,
	evdev.BTN_THUMBL,
	evdev.BTN_THUMBR,
	evdev.BTN_Z, // capture
	evdev.BTN_DPAD_UP,
	evdev.BTN_DPAD_DOWN,
	evdev.BTN_DPAD_LEFT,
	evdev.BTN_DPAD_RIGHT,
	evdev.BTN_TRIGGER_HAPPY1,
	evdev.BTN_TRIGGER_HAPPY2,
	evdev.BTN_TRIGGER_HAPPY3,
	evdev.BTN_TRIGGER_HAPPY4,
}

// CombinedAxes are the sticks: left half on X/Y, right half on RX/RY.
var CombinedAxes = []evdev.EvCode{
	evdev.ABS_X,
	evdev.ABS_Y,
	evdev.ABS_RX,
	evdev.ABS_RY,
}

// Stick ranges as hid-nintendo reports them on each half.
const (
	stickMax  = 32767
	stickFuzz = 250
	stickFlat = 500
)

// CombinedAxisInfo is the range of each axis in CombinedAxes.
func CombinedAxisInfo() map[evdev.EvCode]evdev.AbsInfo {
	r := make(map[evdev.EvCode]evdev.AbsInfo, len(CombinedAxes))
	for _, code := range CombinedAxes {
		r[code] = evdev.AbsInfo{
			Minimum: -stickMax,
			Maximum: stickMax,
			Fuzz:    stickFuzz,
			Flat:    stickFlat,
		}
	}
	return r
}

// userDevice is the uinput description of a combined controller.
func userDevice(name string) evdev.UinputUserDevice {
	dev := evdev.UinputUserDevice{
		ID: evdev.InputID{
			BusType: busVirtual,
			Vendor:  jcpc.VENDOR_NINTENDO,
			Product: productCombined,
			Version: 1,
		},
	}
	copy(dev.Name[:len(dev.Name)-1], name)
	for code, info := range CombinedAxisInfo() {
		dev.Absmin[code] = info.Minimum
		dev.Absmax[code] = info.Maximum
		dev.Absfuzz[code] = info.Fuzz
		dev.Absflat[code] = info.Flat
	}
	return dev
}

// CombinedCapabilities is the capability set passed to uinput.
func CombinedCapabilities() map[evdev.EvType][]evdev.EvCode {
	return map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: CombinedKeys,
		evdev.EV_ABS: CombinedAxes,
	}
}

// RemapCombined translates an event from one half into the combined
// controller's layout. ok is false for events the combined controller does
// not carry.
func RemapCombined(side jcpc.Model, ev jcpc.Event) (jcpc.Event, bool) {
	switch ev.Type {
	case evdev.EV_SYN, evdev.EV_ABS:
		return ev, true
	case evdev.EV_KEY:
	default:
		return ev, false
	}

	var table []keyRemap
	switch side {
	case jcpc.ModelLeft:
		table = remapLeft
	case jcpc.ModelRight:
		table = remapRight
	}
	for _, v := range table {
		if v.From == ev.Code {
			ev.Code = v.To
			return ev, true
		}
	}
	return ev, true
}
