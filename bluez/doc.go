// Package bluez talks to the BlueZ daemon over the system D-Bus.
//
// When a Bluetooth controller gets a player number, its Device1 object is
// marked Trusted so the controller can reconnect on its own after it goes
// to sleep. Without this the user has to re-sync the controller from the
// Bluetooth settings every time.
//
// Controllers attached over USB have no Device1 object and are skipped.
package bluez
