// Package ctlrmgr decides how physical controllers are presented: alone,
// sideways, or merged with their other half. It also hands out the player
// slots shown on the controllers' lights.
//
// A Manager is not safe for concurrent use. Every method, and every
// readiness callback it registers, must run on the multiplexer's goroutine.
package ctlrmgr

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/jcpc"
)

// DefaultSettleDelay is how long AddCtlr waits for the kernel driver to
// register the LED class devices of a newly arrived controller.
const DefaultSettleDelay = time.Second

type Manager struct {
	mux      jcpc.Multiplexer
	newPhys  jcpc.PhysicalFactory
	newVirts jcpc.VirtualFactory

	settleDelay time.Duration
	sleep       func(time.Duration)
	onPaired    func(p jcpc.Physical, player int)

	// unpaired owns every controller not yet in a virtual controller.
	unpaired map[string]jcpc.Physical
	// left and right point into unpaired.
	left  jcpc.Physical
	right jcpc.Physical
	// paired is the slot table. A nil entry is a free slot.
	paired      []jcpc.Virtual
	subscribers map[string]*jcpc.Subscriber
}

type Option func(*Manager)

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.settleDelay = d
	}
}

// WithPairedHook registers f to be called whenever a physical controller
// joins a virtual controller.
func WithPairedHook(f func(p jcpc.Physical, player int)) Option {
	return func(m *Manager) {
		m.onPaired = f
	}
}

func New(mux jcpc.Multiplexer, newPhys jcpc.PhysicalFactory, newVirts jcpc.VirtualFactory, opts ...Option) *Manager {
	m := &Manager{
		mux:         mux,
		newPhys:     newPhys,
		newVirts:    newVirts,
		settleDelay: DefaultSettleDelay,
		sleep:       time.Sleep,
		unpaired:    make(map[string]jcpc.Physical),
		subscribers: make(map[string]*jcpc.Subscriber),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddCtlr admits the controller at devpath. Adding a path the Manager
// already holds, paired or not, is logged and ignored.
func (m *Manager) AddCtlr(devpath, devname string) {
	if m.known(devpath) {
		log.Warn().Str("devpath", devpath).Msg("controller already known, ignoring add")
		return
	}

	log.Info().Str("devpath", devpath).Str("name", devname).Msg("new controller")
	if m.settleDelay > 0 {
		// hid-nintendo creates the LED class devices after the input node.
		m.sleep(m.settleDelay)
	}
	phys, err := m.newPhys(devpath, devname)
	if err != nil {
		log.Error().Err(err).Str("devpath", devpath).Msg("could not open controller")
		return
	}

	m.unpaired[devpath] = phys
	phys.BlinkPlayerLights()
	sub := &jcpc.Subscriber{
		Sources:  phys.Sources(),
		Callback: m.onReady,
	}
	m.subscribers[devpath] = sub
	m.mux.AddSubscriber(sub)

	if m.reconnect(phys) {
		return
	}

	// Events may have arrived before we subscribed.
	if srcs := phys.Sources(); len(srcs) > 0 {
		m.onReady(srcs[0])
	}
}

// known reports whether devpath is admitted. Every admitted controller
// keeps its subscription until RemoveCtlr.
func (m *Manager) known(devpath string) bool {
	if _, ok := m.subscribers[devpath]; ok {
		return true
	}
	_, ok := m.unpaired[devpath]
	return ok
}

// reconnect attaches phys to the first virtual controller that lost a
// member of the same model.
func (m *Manager) reconnect(phys jcpc.Physical) bool {
	model := phys.Model()
	if model == jcpc.ModelUnknown {
		return false
	}
	for i, virt := range m.paired {
		if virt == nil || !virt.SupportsHotSwap() {
			continue
		}
		need, ok := virt.NeedsModel()
		if !ok || need != model {
			continue
		}

		player := jcpc.PlayerForSlot(i)
		log.Info().
			Str("devpath", phys.DevPath()).
			Str("virt", virt.ID()).
			Int("slot", i).
			Msg("reconnected controller")
		phys.SetAllPlayerLights(false)
		phys.SetPlayerLights(player)
		virt.Attach(phys)
		delete(m.unpaired, phys.DevPath())
		m.notifyPaired(player, phys)
		return true
	}
	return false
}

// RemoveCtlr forgets the controller at devpath. Unknown paths are ignored.
func (m *Manager) RemoveCtlr(devpath string) {
	if sub, ok := m.subscribers[devpath]; ok {
		m.mux.RemoveSubscriber(sub)
		delete(m.subscribers, devpath)
	}

	if phys, ok := m.unpaired[devpath]; ok {
		log.Info().Str("devpath", devpath).Msg("removing unpaired controller")
		m.clearPending(phys)
		delete(m.unpaired, devpath)
		closePhys(phys)
		return
	}

	for i, virt := range m.paired {
		if virt == nil {
			continue
		}
		phys := memberAt(virt, devpath)
		if phys == nil {
			continue
		}

		if virt.SupportsHotSwap() {
			virt.Detach(phys)
		}
		closePhys(phys)
		if !virt.SupportsHotSwap() || virt.Empty() {
			log.Info().Str("virt", virt.ID()).Int("slot", i).Msg("unpairing controller")
			if err := virt.Close(); err != nil {
				log.Warn().Err(err).Str("virt", virt.ID()).Msg("closing virtual controller")
			}
			m.paired[i] = nil
		} else {
			log.Info().
				Str("devpath", devpath).
				Str("virt", virt.ID()).
				Int("slot", i).
				Msg("controller detached, waiting for reconnect")
		}
		return
	}
}

func memberAt(virt jcpc.Virtual, devpath string) jcpc.Physical {
	for _, phys := range virt.Members() {
		if phys.DevPath() == devpath {
			return phys
		}
	}
	return nil
}

func closePhys(phys jcpc.Physical) {
	if err := phys.Close(); err != nil {
		log.Debug().Err(err).Str("devpath", phys.DevPath()).Msg("closing controller")
	}
}

func (m *Manager) clearPending(phys jcpc.Physical) {
	if m.left == phys {
		m.left = nil
	}
	if m.right == phys {
		m.right = nil
	}
}

func (m *Manager) notifyPaired(player int, members ...jcpc.Physical) {
	if m.onPaired == nil {
		return
	}
	for _, phys := range members {
		m.onPaired(phys, player)
	}
}

// Close releases every controller the Manager holds. Call it only after
// the multiplexer has stopped dispatching.
func (m *Manager) Close() {
	for path, sub := range m.subscribers {
		m.mux.RemoveSubscriber(sub)
		delete(m.subscribers, path)
	}
	m.left, m.right = nil, nil
	for path, phys := range m.unpaired {
		closePhys(phys)
		delete(m.unpaired, path)
	}
	for i, virt := range m.paired {
		if virt == nil {
			continue
		}
		for _, phys := range virt.Members() {
			closePhys(phys)
		}
		if err := virt.Close(); err != nil {
			log.Warn().Err(err).Str("virt", virt.ID()).Msg("closing virtual controller")
		}
		m.paired[i] = nil
	}
}
