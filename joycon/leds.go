package joycon

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jochenvg/go-udev"
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/jcpc"
)

// playerLEDs are the LED class devices hid-nintendo registers under the
// controller's hid device, named "<hid>:<color>:player-N".
type playerLEDs struct {
	devs [jcpc.PlayerLightCount]*udev.Device
}

// lookupUdev finds the hid parent of the evdev node at devpath and returns
// its Bluetooth address and player lights.
func lookupUdev(u *udev.Udev, devpath string) (string, *playerLEDs) {
	input := u.NewDeviceFromSubsystemSysname("input", filepath.Base(devpath))
	if input == nil {
		return "", nil
	}
	hid := input.Parent()
	for hid != nil && hid.Subsystem() != "hid" {
		hid = hid.Parent()
	}
	if hid == nil {
		return "", nil
	}
	serial := strings.Trim(hid.PropertyValue("HID_UNIQ"), `"`)

	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("leds"); err != nil {
		return serial, nil
	}
	if err := e.AddMatchParent(hid); err != nil {
		return serial, nil
	}
	devs, err := e.Devices()
	if err != nil {
		log.Debug().Err(err).Str("devpath", devpath).Msg("enumerate leds")
		return serial, nil
	}

	leds := &playerLEDs{}
	found := false
	for _, d := range devs {
		if n, ok := playerIndex(filepath.Base(d.Syspath())); ok {
			leds.devs[n] = d
			found = true
		}
	}
	if !found {
		return serial, nil
	}
	return serial, leds
}

// playerIndex parses the 0-based light index from an LED name.
func playerIndex(name string) (int, bool) {
	i := strings.LastIndex(name, ":player-")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[i+len(":player-"):])
	if err != nil || n < 1 || n > jcpc.PlayerLightCount {
		return 0, false
	}
	return n - 1, true
}

func (l *playerLEDs) apply(pattern byte) {
	if l == nil {
		return
	}
	for i, d := range l.devs {
		if d == nil {
			continue
		}
		trigger, brightness := "none", "0"
		if jcpc.LightFlashing(pattern, i) {
			trigger = "timer"
		} else if jcpc.LightOn(pattern, i) {
			brightness = "1"
		}
		if err := d.SetSysattrValue("trigger", trigger); err != nil {
			log.Debug().Err(err).Str("led", d.Syspath()).Msg("set trigger")
		}
		if trigger == "none" {
			if err := d.SetSysattrValue("brightness", brightness); err != nil {
				log.Debug().Err(err).Str("led", d.Syspath()).Msg("set brightness")
			}
		}
	}
}
