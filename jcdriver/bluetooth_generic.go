//go:build !linux || nobluez

package main

import "github.com/riking/joycon/joycond/jcpc"

// getPairedHook returns no hook; the OS Bluetooth stack keeps its own
// pairing records.
func getPairedHook() (func(p jcpc.Physical, player int), error) {
	return nil, nil
}
