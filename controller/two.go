package controller

import (
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/jcpc"
	"github.com/riking/joycon/joycond/output"
)

// two merges a left and a right half into one output device. Either half
// may drop out and come back without the device being recreated.
type two struct {
	base

	left  jcpc.Physical
	right jcpc.Physical
	out   jcpc.Output

	writeFailed bool
}

func TwoJoyCons(left, right jcpc.Physical, out jcpc.Output) jcpc.Virtual {
	return &two{
		base:  newBase(),
		left:  left,
		right: right,
		out:   out,
	}
}

func (c *two) Kind() string {
	return "combined"
}

func (c *two) NeedsModel() (jcpc.Model, bool) {
	if c.left == nil {
		return jcpc.ModelLeft, true
	}
	if c.right == nil {
		return jcpc.ModelRight, true
	}
	return jcpc.ModelUnknown, false
}

func (c *two) SupportsHotSwap() bool {
	return true
}

func (c *two) Members() []jcpc.Physical {
	var r []jcpc.Physical
	if c.left != nil {
		r = append(r, c.left)
	}
	if c.right != nil {
		r = append(r, c.right)
	}
	return r
}

func (c *two) Contains(s jcpc.Source) bool {
	return owns(c.left, s) || owns(c.right, s)
}

func (c *two) HandleEvents(s jcpc.Source) {
	for _, jc := range c.Members() {
		if !owns(jc, s) {
			continue
		}
		for _, ev := range jc.HandleEvents() {
			ev, ok := output.RemapCombined(jc.Model(), ev)
			if !ok {
				continue
			}
			if err := c.out.WriteEvent(ev); err != nil {
				if !c.writeFailed {
					log.Error().Err(err).Str("virt", c.id).Msg("writing combined controller event")
				}
				c.writeFailed = true
			} else {
				c.writeFailed = false
			}
		}
	}
}

func (c *two) Attach(jc jcpc.Physical) {
	switch jc.Model() {
	case jcpc.ModelLeft:
		if c.left == nil {
			c.left = jc
			return
		}
	case jcpc.ModelRight:
		if c.right == nil {
			c.right = jc
			return
		}
	}
	log.Warn().Str("virt", c.id).Str("devpath", jc.DevPath()).Msg("no room for controller")
}

func (c *two) Detach(jc jcpc.Physical) {
	if c.left == jc {
		c.left = nil
	}
	if c.right == jc {
		c.right = nil
	}
}

func (c *two) Empty() bool {
	return c.left == nil && c.right == nil
}

func (c *two) Close() error {
	return c.out.Close()
}
