//go:build linux

package main

import (
	"github.com/riking/joycon/joycond/config"
	"github.com/riking/joycon/joycond/jcpc"
	"github.com/riking/joycon/joycond/output"
)

func getOutputFactory(cfg *config.Config) jcpc.OutputFactory {
	if cfg.Output == config.OutputConsole {
		return output.NewConsole
	}
	return output.NewUInput
}
