package ctlrmgr

import (
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/jcpc"
)

// onReady is the readiness callback shared by every subscription.
func (m *Manager) onReady(s jcpc.Source) {
	// Controllers promoted below must not see this event a second time.
	var paired []jcpc.Virtual
	for _, virt := range m.paired {
		if virt != nil {
			paired = append(paired, virt)
		}
	}

	if phys := m.unpairedFor(s); phys != nil {
		phys.HandleEvents()
		m.advance(phys)
	}

	for _, virt := range paired {
		if virt.Contains(s) {
			virt.HandleEvents(s)
		}
	}
}

func (m *Manager) unpairedFor(s jcpc.Source) jcpc.Physical {
	for _, phys := range m.unpaired {
		for _, src := range phys.Sources() {
			if src == s {
				return phys
			}
		}
	}
	return nil
}

// advance acts on the pairing state of an unpaired controller.
func (m *Manager) advance(phys jcpc.Physical) {
	l := log.With().Str("devpath", phys.DevPath()).Stringer("model", phys.Model()).Logger()

	switch phys.PairingState() {
	case jcpc.StateLone:
		l.Info().Msg("lone controller paired")
		m.addPassthrough(phys)
	case jcpc.StateHorizontal:
		l.Info().Msg("half paired in horizontal mode")
		m.addPassthrough(phys)
	case jcpc.StateWaiting:
		l.Debug().Msg("waiting controller needs partner")
		switch phys.Model() {
		case jcpc.ModelLeft:
			if m.left == nil {
				m.left = phys
				l.Info().Msg("found left")
			}
		case jcpc.ModelRight:
			if m.right == nil {
				m.right = phys
				l.Info().Msg("found right")
			}
		}
		if m.left != nil && m.right != nil {
			m.addCombined()
		}
	default:
		m.clearPending(phys)
	}
}

func (m *Manager) addPassthrough(phys jcpc.Physical) {
	m.clearPending(phys)

	virt, err := m.newVirts.Passthrough(phys)
	if err != nil {
		log.Error().Err(err).Str("devpath", phys.DevPath()).Msg("could not create passthrough controller")
		return
	}
	m.place(virt, phys)
}

func (m *Manager) addCombined() {
	left, right := m.left, m.right
	m.left, m.right = nil, nil

	log.Info().
		Str("left", left.DevPath()).
		Str("right", right.DevPath()).
		Msg("creating combined controller")
	virt, err := m.newVirts.Combined(left, right)
	if err != nil {
		log.Error().Err(err).Msg("could not create combined controller")
		return
	}
	m.place(virt, left, right)
}

// place puts virt in the first free slot, growing the table only when every
// slot is taken, and moves members out of the unpaired set.
func (m *Manager) place(virt jcpc.Virtual, members ...jcpc.Physical) {
	slot := -1
	for i, v := range m.paired {
		if v == nil {
			slot = i
			break
		}
	}
	if slot == -1 {
		slot = len(m.paired)
		m.paired = append(m.paired, nil)
	}
	m.paired[slot] = virt

	player := jcpc.PlayerForSlot(slot)
	for _, phys := range members {
		phys.SetAllPlayerLights(false)
		phys.SetPlayerLights(player)
		delete(m.unpaired, phys.DevPath())
	}
	log.Info().
		Str("virt", virt.ID()).
		Str("kind", virt.Kind()).
		Int("slot", slot).
		Int("player", player).
		Msg("controller paired")
	m.notifyPaired(player, members...)
}
