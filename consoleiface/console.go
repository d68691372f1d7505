// Package consoleiface is an interactive console for inspecting the
// controller manager while the daemon runs.
package consoleiface

import (
	"context"
	"io"
	"os"

	"github.com/riking/joycon/joycond/ctlrmgr"
)

// Caller runs a function on the goroutine that owns the Manager.
type Caller interface {
	Call(ctx context.Context, f func()) error
}

// StatusSource is the part of the Manager the console reads.
type StatusSource interface {
	Status() ctlrmgr.Status
}

type Console struct {
	loop Caller
	mgr  StatusSource
	out  io.Writer
	quit func()

	ctx context.Context
}

// New creates a console. quit is called when the user asks the daemon to
// exit.
func New(loop Caller, mgr StatusSource, quit func()) *Console {
	return &Console{
		loop: loop,
		mgr:  mgr,
		out:  os.Stdout,
		quit: quit,
		ctx:  context.Background(),
	}
}

// status fetches a Status snapshot from the loop goroutine.
func (c *Console) status() (ctlrmgr.Status, error) {
	var st ctlrmgr.Status
	err := c.loop.Call(c.ctx, func() {
		st = c.mgr.Status()
	})
	return st, err
}
