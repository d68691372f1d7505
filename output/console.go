package output

import (
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/jcpc"
)

// consoleOutput logs what a combined controller would emit instead of
// creating a device.
type consoleOutput struct {
	name string
}

func NewConsole(name string) (jcpc.Output, error) {
	log.Info().Str("output", name).Msg("console output created")
	return &consoleOutput{name: name}, nil
}

func (c *consoleOutput) WriteEvent(ev jcpc.Event) error {
	if ev.Type == 0 {
		return nil
	}
	log.Debug().
		Str("output", c.name).
		Str("code", ev.CodeName()).
		Int32("value", ev.Value).
		Msg("event")
	return nil
}

func (c *consoleOutput) Close() error {
	log.Info().Str("output", c.name).Msg("console output closed")
	return nil
}
