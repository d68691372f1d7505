package jcpc

import "github.com/holoplot/go-evdev"

// PairButtons holds the shoulder buttons that take part in pairing
// gestures. Other buttons are not tracked.
type PairButtons uint8

const (
	ButtonL PairButtons = 1 << iota
	ButtonZL
	ButtonR
	ButtonZR
	// SL and SR are the rail buttons of a half; they are the same bits for
	// both halves.
	ButtonSL
	ButtonSR
)

// All button combinations that form a pairing gesture.
var (
	// Sideways single half
	ButtonsSLSR = ButtonSL | ButtonSR
	// Upright single half
	ButtonsLZL = ButtonL | ButtonZL
	ButtonsRZR = ButtonR | ButtonZR
	// Standalone pad
	ButtonsLR   = ButtonL | ButtonR
	ButtonsZLZR = ButtonZL | ButtonZR

	ButtonsAnyLeftTrigger  = ButtonL | ButtonZL
	ButtonsAnyRightTrigger = ButtonR | ButtonZR
)

type codeMapping struct {
	Code   evdev.EvCode
	Button PairButtons
}

// Shoulder key codes as reported by hid-nintendo. The left half reports its
// rail buttons where the right half reports R/ZR, and the other way around.
var (
	codesLeft = []codeMapping{
		{evdev.BTN_TL, ButtonL},
		{evdev.BTN_TL2, ButtonZL},
		{evdev.BTN_TR, ButtonSL},
		{evdev.BTN_TR2, ButtonSR},
	}
	codesRight = []codeMapping{
		{evdev.BTN_TR, ButtonR},
		{evdev.BTN_TR2, ButtonZR},
		{evdev.BTN_TL, ButtonSL},
		{evdev.BTN_TL2, ButtonSR},
	}
	codesStandalone = []codeMapping{
		{evdev.BTN_TL, ButtonL},
		{evdev.BTN_TL2, ButtonZL},
		{evdev.BTN_TR, ButtonR},
		{evdev.BTN_TR2, ButtonZR},
	}
)

// PairButtonFor translates a key code into a pairing button for the given
// model.
func PairButtonFor(m Model, code evdev.EvCode) (PairButtons, bool) {
	var table []codeMapping
	switch m {
	case ModelLeft:
		table = codesLeft
	case ModelRight:
		table = codesRight
	case ModelStandalone:
		table = codesStandalone
	default:
		return 0, false
	}
	for _, v := range table {
		if v.Code == code {
			return v.Button, true
		}
	}
	return 0, false
}

func (b PairButtons) Set(i PairButtons, state bool) PairButtons {
	b &^= i
	if state {
		b |= i
	}
	return b
}

func (b PairButtons) HasAll(mask PairButtons) bool {
	return b&mask == mask
}

func (b PairButtons) HasAny(mask PairButtons) bool {
	return b&mask != 0
}

// PairingState judges the gesture being held.
//
// A standalone pad pairs with L+R or ZL+ZR. A half goes sideways with
// SL+SR, upright alone with both of its triggers, and waits for its partner
// with one trigger.
func (b PairButtons) PairingState(m Model) PairingState {
	switch m {
	case ModelStandalone:
		if b.HasAll(ButtonsLR) || b.HasAll(ButtonsZLZR) {
			return StateLone
		}
	case ModelLeft:
		if b.HasAll(ButtonsSLSR) {
			return StateHorizontal
		}
		if b.HasAll(ButtonsLZL) {
			return StateLone
		}
		if b.HasAny(ButtonsAnyLeftTrigger) {
			return StateWaiting
		}
	case ModelRight:
		if b.HasAll(ButtonsSLSR) {
			return StateHorizontal
		}
		if b.HasAll(ButtonsRZR) {
			return StateLone
		}
		if b.HasAny(ButtonsAnyRightTrigger) {
			return StateWaiting
		}
	}
	return StatePairing
}
