package bluez

import "github.com/godbus/dbus"

const (
	// BlueZBusName is the well-known name of the bluetooth daemon.
	BlueZBusName = "org.bluez"

	//Device1Interface the bluez interface for Device1
	Device1Interface = "org.bluez.Device1"

	//ObjectManagerInterface the dbus object manager interface
	ObjectManagerInterface = "org.freedesktop.DBus.ObjectManager"
	//GetManagedObjects the DBus method listing every bluez object
	GetManagedObjects = ObjectManagerInterface + ".GetManagedObjects"

	//PropertiesInterface the DBus properties interface
	PropertiesInterface = "org.freedesktop.DBus.Properties"
	//PropertiesSet the DBus method for writing a property
	PropertiesSet = PropertiesInterface + ".Set"
)

// dbusObjectNotify is the interface->property map GetManagedObjects returns
// for each object.
type dbusObjectNotify map[string]map[string]dbus.Variant
