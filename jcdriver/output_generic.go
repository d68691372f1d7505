//go:build !linux

package main

import (
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/config"
	"github.com/riking/joycon/joycond/jcpc"
	"github.com/riking/joycon/joycond/output"
)

func getOutputFactory(cfg *config.Config) jcpc.OutputFactory {
	if cfg.Output != config.OutputConsole {
		log.Warn().Msg("uinput is only available on linux, logging events instead")
	}
	return output.NewConsole
}
