// Package hotplug watches udev for controller input nodes and reports them
// to a Handler on the event loop.
package hotplug

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/jochenvg/go-udev"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Handler receives controller arrivals and departures. Its methods are
// only called from functions handed to a Poster.
type Handler interface {
	AddCtlr(devpath, name string)
	RemoveCtlr(devpath string)
}

// Poster runs functions on the goroutine that owns the Handler.
type Poster interface {
	Post(f func()) error
}

// Names of the kernel driver's input devices that are controllers. The
// motion sensors get their own node named "... (IMU)".
var controllerNames = []string{
	"Nintendo Switch",
	"Joy-Con",
	"Pro Controller",
}

// IsController reports whether an input node should be handed to the
// Handler.
func IsController(devnode, name string) bool {
	if !strings.HasPrefix(filepath.Base(devnode), "event") {
		return false
	}
	if strings.Contains(name, "IMU") {
		return false
	}
	for _, n := range controllerNames {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}

type Watcher struct {
	u    *udev.Udev
	post Poster
	h    Handler
}

func New(u *udev.Udev, post Poster, h Handler) *Watcher {
	return &Watcher{u: u, post: post, h: h}
}

// Run reports the controllers already present, then follows udev until ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	m := w.u.NewMonitorFromNetlink("udev")
	if m == nil {
		return errors.New("hotplug: cannot open udev monitor")
	}
	if err := m.FilterAddMatchSubsystem("input"); err != nil {
		return errors.Wrap(err, "hotplug: filter input subsystem")
	}
	// Subscribe before enumerating so nothing plugged in between is lost.
	devs, err := m.DeviceChan(ctx.Done())
	if err != nil {
		return errors.Wrap(err, "hotplug: start udev monitor")
	}

	e := w.u.NewEnumerate()
	if err := e.AddMatchSubsystem("input"); err != nil {
		return errors.Wrap(err, "hotplug: enumerate input")
	}
	if err := e.AddMatchIsInitialized(); err != nil {
		return errors.Wrap(err, "hotplug: enumerate input")
	}
	present, err := e.Devices()
	if err != nil {
		return errors.Wrap(err, "hotplug: enumerate input")
	}
	for _, d := range present {
		if err := w.dispatch("add", d.Devnode(), deviceName(d)); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-devs:
			if !ok {
				return nil
			}
			name := ""
			if d.Action() != "remove" {
				name = deviceName(d)
			}
			if err := w.dispatch(d.Action(), d.Devnode(), name); err != nil {
				return err
			}
		}
	}
}

// dispatch posts the Handler call for one udev action. It only fails when
// the loop has stopped.
func (w *Watcher) dispatch(action, devnode, name string) error {
	if devnode == "" {
		return nil
	}
	var f func()
	switch action {
	case "add", "":
		if !IsController(devnode, name) {
			return nil
		}
		log.Debug().Str("devpath", devnode).Str("name", name).Msg("controller node appeared")
		f = func() { w.h.AddCtlr(devnode, name) }
	case "remove":
		if !strings.HasPrefix(filepath.Base(devnode), "event") {
			return nil
		}
		f = func() { w.h.RemoveCtlr(devnode) }
	default:
		return nil
	}
	return errors.Wrap(w.post.Post(f), "hotplug")
}

// deviceName reads the NAME of the input device an event node belongs to.
func deviceName(d *udev.Device) string {
	if n := d.PropertyValue("NAME"); n != "" {
		return strings.Trim(n, `"`)
	}
	if p := d.Parent(); p != nil {
		return strings.Trim(p.PropertyValue("NAME"), `"`)
	}
	return ""
}
