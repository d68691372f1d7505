package ctlrmgr

import (
	"sort"

	"github.com/riking/joycon/joycond/jcpc"
)

// Status is a copy of the Manager's state.
type Status struct {
	Unpaired []string
	Left     string
	Right    string
	Slots    []SlotStatus
}

type SlotStatus struct {
	Index  int
	Player int
	// Empty slots have no ID, Kind or Members.
	ID      string
	Kind    string
	Members []string
}

func (s SlotStatus) Empty() bool {
	return s.ID == ""
}

func (m *Manager) Status() Status {
	var st Status
	for path := range m.unpaired {
		st.Unpaired = append(st.Unpaired, path)
	}
	sort.Strings(st.Unpaired)
	if m.left != nil {
		st.Left = m.left.DevPath()
	}
	if m.right != nil {
		st.Right = m.right.DevPath()
	}

	for i, virt := range m.paired {
		slot := SlotStatus{
			Index:  i,
			Player: jcpc.PlayerForSlot(i),
		}
		if virt != nil {
			slot.ID = virt.ID()
			slot.Kind = virt.Kind()
			for _, phys := range virt.Members() {
				slot.Members = append(slot.Members, phys.DevPath())
			}
		}
		st.Slots = append(st.Slots, slot)
	}
	return st
}
