package jcpc

// Player light patterns. The low nibble turns a light on; the high nibble
// makes it flash, matching the layout of the controller's own 0x30
// subcommand.
const (
	LightsOff   byte = 0x00
	LightsBlink byte = 0xF0

	PlayerLightCount = 4
)

// PlayerForSlot maps a slot index to the player number shown on the lights.
// Player numbers cycle through 1..4.
func PlayerForSlot(slot int) int {
	return slot%PlayerLightCount + 1
}

// PlayerLights returns the pattern for a player number: light N for
// player N. Out of range players wrap the same way slots do.
func PlayerLights(player int) byte {
	if player < 1 {
		return LightsOff
	}
	return 1 << uint((player-1)%PlayerLightCount)
}

// LightOn reports whether light i (0-based) is steadily lit in pattern.
func LightOn(pattern byte, i int) bool {
	return pattern&(1<<uint(i)) != 0
}

// LightFlashing reports whether light i (0-based) flashes in pattern.
func LightFlashing(pattern byte, i int) bool {
	return pattern&(0x10<<uint(i)) != 0
}
