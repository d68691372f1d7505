package jcpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerForSlot(t *testing.T) {
	for slot, want := range []int{1, 2, 3, 4, 1, 2, 3, 4, 1} {
		assert.Equal(t, want, PlayerForSlot(slot), "slot %d", slot)
	}
}

func TestPlayerLights(t *testing.T) {
	assert.Equal(t, byte(0x1), PlayerLights(1))
	assert.Equal(t, byte(0x8), PlayerLights(4))
	assert.Equal(t, byte(0x1), PlayerLights(5))
	assert.Equal(t, LightsOff, PlayerLights(0))

	for i := 0; i < PlayerLightCount; i++ {
		assert.Equal(t, i == 2, LightOn(PlayerLights(3), i))
		assert.True(t, LightFlashing(LightsBlink, i))
		assert.False(t, LightOn(LightsBlink, i))
	}
}

func TestModelFor(t *testing.T) {
	assert.Equal(t, ModelLeft, ModelFor(VENDOR_NINTENDO, JOYCON_PRODUCT_L, ""))
	assert.Equal(t, ModelRight, ModelFor(VENDOR_NINTENDO, JOYCON_PRODUCT_R, ""))
	assert.Equal(t, ModelStandalone, ModelFor(VENDOR_NINTENDO, JOYCON_PRODUCT_PRO, ""))
	assert.Equal(t, ModelLeft, ModelFor(VENDOR_NINTENDO, JOYCON_PRODUCT_CHARGEGRIP, "Nintendo Switch Left Joy-Con"))
	assert.Equal(t, ModelRight, ModelFor(VENDOR_NINTENDO, JOYCON_PRODUCT_CHARGEGRIP, "Nintendo Switch Right Joy-Con"))
	assert.Equal(t, ModelUnknown, ModelFor(0x054c, 0x05c4, "Wireless Controller"))
	assert.False(t, ModelStandalone.IsHalf())
	assert.True(t, ModelRight.IsHalf())
}
