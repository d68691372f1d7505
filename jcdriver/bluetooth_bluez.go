//go:build linux && !nobluez

package main

import (
	"github.com/riking/joycon/joycond/bluez"
	"github.com/riking/joycon/joycond/jcpc"
)

func getPairedHook() (func(p jcpc.Physical, player int), error) {
	t, err := bluez.NewTruster()
	if err != nil {
		return nil, err
	}
	return t.Paired, nil
}
