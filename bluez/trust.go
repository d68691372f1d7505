package bluez

import (
	"strings"
	"sync"

	"github.com/godbus/dbus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/jcpc"
)

// Truster marks paired controllers as Trusted in BlueZ.
type Truster struct {
	busConn *dbus.Conn

	mu      sync.Mutex
	trusted map[string]bool
}

func NewTruster() (*Truster, error) {
	busConn, err := dbus.SystemBus()
	if err != nil {
		return nil, errors.Wrap(err, "connect to system bus")
	}
	return &Truster{
		busConn: busConn,
		trusted: make(map[string]bool),
	}, nil
}

// Paired is meant to be registered as the controller manager's paired
// hook. It returns immediately; the D-Bus calls happen in the background.
func (t *Truster) Paired(p jcpc.Physical, player int) {
	mac := normalizeMAC(p.Serial())
	if mac == "" {
		return
	}

	t.mu.Lock()
	done := t.trusted[mac]
	t.trusted[mac] = true
	t.mu.Unlock()
	if done {
		return
	}

	go func() {
		err := t.savePairingInfo(mac)
		if err != nil {
			log.Warn().Err(err).Str("mac", mac).Msg("failed to save bluetooth pairing info")
			t.mu.Lock()
			delete(t.trusted, mac)
			t.mu.Unlock()
			return
		}
		log.Debug().Str("mac", mac).Int("player", player).Msg("bluetooth device trusted")
	}()
}

func (t *Truster) savePairingInfo(mac string) error {
	var objects map[dbus.ObjectPath]dbusObjectNotify
	err := t.busConn.Object(BlueZBusName, "/").Call(GetManagedObjects, 0).Store(&objects)
	if err != nil {
		return errors.Wrap(err, "get current objects")
	}

	paths := untrustedDevices(objects, mac)
	if len(paths) == 0 {
		return nil
	}
	for _, path := range paths {
		c := t.busConn.Object(BlueZBusName, path).Call(PropertiesSet, 0,
			Device1Interface, "Trusted", dbus.MakeVariant(true))
		if c.Err != nil {
			return errors.Wrapf(c.Err, "set Trusted on %s", path)
		}
	}
	return nil
}

// untrustedDevices finds the Device1 objects with the given address that
// are not Trusted yet. There is one per adapter that has seen the device.
func untrustedDevices(objects map[dbus.ObjectPath]dbusObjectNotify, mac string) []dbus.ObjectPath {
	var paths []dbus.ObjectPath
	for path, ifaces := range objects {
		props, ok := ifaces[Device1Interface]
		if !ok {
			continue
		}
		addr, _ := props["Address"].Value().(string)
		if normalizeMAC(addr) != mac {
			continue
		}
		if trusted, _ := props["Trusted"].Value().(bool); trusted {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// normalizeMAC upper-cases a colon separated Bluetooth address. Anything
// that is not one, such as the serial of a USB controller, becomes "".
func normalizeMAC(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return ""
	}
	for _, p := range parts {
		if len(p) != 2 || strings.Trim(p, "0123456789ABCDEF") != "" {
			return ""
		}
	}
	return s
}
