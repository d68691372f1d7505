package controller

import (
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/jcpc"
)

// one exposes a single controller as it is. Programs read the kernel's
// device directly, so events only need draining here.
type one struct {
	base

	jc           jcpc.Physical
	disconnected bool
}

func Passthrough(jc jcpc.Physical) jcpc.Virtual {
	return &one{
		base: newBase(),
		jc:   jc,
	}
}

func (c *one) Kind() string {
	return "passthrough"
}

func (c *one) NeedsModel() (jcpc.Model, bool) {
	return jcpc.ModelUnknown, false
}

func (c *one) SupportsHotSwap() bool {
	return false
}

func (c *one) Members() []jcpc.Physical {
	return []jcpc.Physical{c.jc}
}

func (c *one) Contains(s jcpc.Source) bool {
	return owns(c.jc, s)
}

func (c *one) HandleEvents(s jcpc.Source) {
	if !owns(c.jc, s) {
		return
	}
	c.jc.HandleEvents()
	if !c.disconnected && c.jc.PairingState() == jcpc.StateDisconnected {
		c.disconnected = true
		log.Info().Str("virt", c.id).Str("devpath", c.jc.DevPath()).Msg("passthrough controller lost")
	}
}

// Attach and Detach do nothing; a passthrough controller lives and dies
// with its one member.
func (c *one) Attach(jc jcpc.Physical) {}
func (c *one) Detach(jc jcpc.Physical) {}

func (c *one) Empty() bool {
	return false
}

func (c *one) Close() error {
	return nil
}
