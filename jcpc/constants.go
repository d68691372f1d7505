package jcpc

import "strings"

const (
	VENDOR_NINTENDO           = 0x057e
	JOYCON_PRODUCT_L          = 0x2006
	JOYCON_PRODUCT_R          = 0x2007
	JOYCON_PRODUCT_PRO        = 0x2009
	JOYCON_PRODUCT_CHARGEGRIP = 0x200e
	PRODUCT_SNES              = 0x2017
	PRODUCT_GENESIS           = 0x201e
	PRODUCT_N64               = 0x2019
)

// Model is the hardware class of a physical controller.
type Model int

const (
	ModelUnknown Model = iota
	ModelLeft
	ModelRight
	// ModelStandalone is a full controller: Pro Controller or one of the
	// retro pads.
	ModelStandalone
)

func (m Model) String() string {
	switch m {
	case ModelLeft:
		return "left"
	case ModelRight:
		return "right"
	case ModelStandalone:
		return "standalone"
	}
	return "unknown"
}

// IsHalf reports whether the model is one half of a pair.
func (m Model) IsHalf() bool {
	return m == ModelLeft || m == ModelRight
}

// ModelFor classifies a controller from its USB product ID, falling back to
// the device name. The charging grip reports one product ID for both
// halves, so the name decides there.
func ModelFor(vendor, product uint16, name string) Model {
	if vendor == VENDOR_NINTENDO {
		switch product {
		case JOYCON_PRODUCT_L:
			return ModelLeft
		case JOYCON_PRODUCT_R:
			return ModelRight
		case JOYCON_PRODUCT_PRO, PRODUCT_SNES, PRODUCT_GENESIS, PRODUCT_N64:
			return ModelStandalone
		}
	}
	switch {
	case strings.Contains(name, "Left Joy-Con"), strings.Contains(name, "Joy-Con (L)"):
		return ModelLeft
	case strings.Contains(name, "Right Joy-Con"), strings.Contains(name, "Joy-Con (R)"):
		return ModelRight
	case strings.Contains(name, "Pro Controller"):
		return ModelStandalone
	}
	return ModelUnknown
}

// PairingState is what the user has asked a controller to become, judged
// from the buttons held on it.
type PairingState int

const (
	// StatePairing means no pairing gesture is held.
	StatePairing PairingState = iota
	StateLone
	StateWaiting
	StateHorizontal
	StateDisconnected
)

func (s PairingState) String() string {
	switch s {
	case StatePairing:
		return "pairing"
	case StateLone:
		return "lone"
	case StateWaiting:
		return "waiting"
	case StateHorizontal:
		return "horizontal"
	case StateDisconnected:
		return "disconnected"
	}
	return "invalid"
}
