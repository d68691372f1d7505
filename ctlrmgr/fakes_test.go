package ctlrmgr

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riking/joycon/joycond/jcpc"
)

type fakeSource struct {
	ch chan struct{}
}

func (s *fakeSource) Ready() <-chan struct{} { return s.ch }

type fakePhys struct {
	src   *fakeSource
	path  string
	model jcpc.Model
	state jcpc.PairingState

	handled int
	player  int
	blinked bool
	closed  bool
}

func (p *fakePhys) Sources() []jcpc.Source          { return []jcpc.Source{p.src} }
func (p *fakePhys) DevPath() string                 { return p.path }
func (p *fakePhys) Name() string                    { return "fake " + p.model.String() }
func (p *fakePhys) Serial() string                  { return "" }
func (p *fakePhys) Model() jcpc.Model               { return p.model }
func (p *fakePhys) PairingState() jcpc.PairingState { return p.state }
func (p *fakePhys) BlinkPlayerLights()              { p.blinked = true }
func (p *fakePhys) SetPlayerLights(player int)      { p.player = player }
func (p *fakePhys) Close() error                    { p.closed = true; return nil }

func (p *fakePhys) HandleEvents() []jcpc.Event {
	p.handled++
	return nil
}

func (p *fakePhys) SetAllPlayerLights(on bool) {
	if !on {
		p.player = 0
	}
}

type fakeVirt struct {
	id      string
	kind    string
	hotswap bool
	members []jcpc.Physical
	// wants, when set, is reported by NeedsModel regardless of members.
	wants   jcpc.Model

	handled []jcpc.Source
	closed  bool
}

func (v *fakeVirt) ID() string            { return v.id }
func (v *fakeVirt) Kind() string          { return v.kind }
func (v *fakeVirt) SupportsHotSwap() bool { return v.hotswap }
func (v *fakeVirt) Members() []jcpc.Physical {
	return v.members
}
func (v *fakeVirt) Empty() bool  { return len(v.members) == 0 }
func (v *fakeVirt) Close() error { v.closed = true; return nil }

func (v *fakeVirt) NeedsModel() (jcpc.Model, bool) {
	if v.wants != jcpc.ModelUnknown {
		return v.wants, true
	}
	if !v.hotswap {
		return jcpc.ModelUnknown, false
	}
	var haveLeft, haveRight bool
	for _, p := range v.members {
		switch p.Model() {
		case jcpc.ModelLeft:
			haveLeft = true
		case jcpc.ModelRight:
			haveRight = true
		}
	}
	if !haveLeft {
		return jcpc.ModelLeft, true
	}
	if !haveRight {
		return jcpc.ModelRight, true
	}
	return jcpc.ModelUnknown, false
}

func (v *fakeVirt) Contains(s jcpc.Source) bool {
	for _, p := range v.members {
		for _, src := range p.Sources() {
			if src == s {
				return true
			}
		}
	}
	return false
}

func (v *fakeVirt) HandleEvents(s jcpc.Source) {
	v.handled = append(v.handled, s)
}

func (v *fakeVirt) Attach(p jcpc.Physical) {
	v.members = append(v.members, p)
}

func (v *fakeVirt) Detach(p jcpc.Physical) {
	for i, m := range v.members {
		if m == p {
			v.members = append(v.members[:i], v.members[i+1:]...)
			return
		}
	}
}

type fakeVirtFactory struct {
	n       int
	created []*fakeVirt
	fail    bool
}

func (f *fakeVirtFactory) next(kind string, hotswap bool, members ...jcpc.Physical) (jcpc.Virtual, error) {
	if f.fail {
		return nil, errors.New("no uinput")
	}
	f.n++
	v := &fakeVirt{
		id:      fmt.Sprintf("%s-%d", kind, f.n),
		kind:    kind,
		hotswap: hotswap,
		members: members,
	}
	f.created = append(f.created, v)
	return v, nil
}

func (f *fakeVirtFactory) Passthrough(p jcpc.Physical) (jcpc.Virtual, error) {
	return f.next("passthrough", false, p)
}

func (f *fakeVirtFactory) Combined(left, right jcpc.Physical) (jcpc.Virtual, error) {
	return f.next("combined", true, left, right)
}

type mockMux struct {
	mock.Mock
}

func (m *mockMux) AddSubscriber(s *jcpc.Subscriber) {
	m.Called(s)
}

func (m *mockMux) RemoveSubscriber(s *jcpc.Subscriber) {
	m.Called(s)
}

type harness struct {
	t     *testing.T
	mux   *mockMux
	virts *fakeVirtFactory
	m     *Manager

	// next is handed out by the physical factory.
	next   *fakePhys
	subs   map[jcpc.Source]*jcpc.Subscriber
	paired []string
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		t:     t,
		mux:   &mockMux{},
		virts: &fakeVirtFactory{},
		subs:  make(map[jcpc.Source]*jcpc.Subscriber),
	}
	h.mux.On("AddSubscriber", mock.Anything).Run(func(args mock.Arguments) {
		sub := args.Get(0).(*jcpc.Subscriber)
		for _, src := range sub.Sources {
			h.subs[src] = sub
		}
	}).Return()
	h.mux.On("RemoveSubscriber", mock.Anything).Run(func(args mock.Arguments) {
		sub := args.Get(0).(*jcpc.Subscriber)
		for _, src := range sub.Sources {
			delete(h.subs, src)
		}
	}).Return()

	h.m = New(h.mux, h.open, h.virts,
		WithSettleDelay(0),
		WithPairedHook(func(p jcpc.Physical, player int) {
			h.paired = append(h.paired, fmt.Sprintf("%s=%d", p.DevPath(), player))
		}),
	)
	return h
}

func (h *harness) open(devpath, name string) (jcpc.Physical, error) {
	if h.next == nil || h.next.path != devpath {
		return nil, errors.Errorf("no such device %s", devpath)
	}
	p := h.next
	h.next = nil
	return p, nil
}

// plug admits a new controller in the given state.
func (h *harness) plug(path string, model jcpc.Model, state jcpc.PairingState) *fakePhys {
	p := &fakePhys{
		src:   &fakeSource{ch: make(chan struct{}, 1)},
		path:  path,
		model: model,
		state: state,
	}
	h.next = p
	h.m.AddCtlr(path, p.Name())
	return p
}

// press changes the held gesture and fires the controller's subscription.
func (h *harness) press(p *fakePhys, state jcpc.PairingState) {
	p.state = state
	sub, ok := h.subs[p.src]
	require.True(h.t, ok, "no subscription for %s", p.path)
	sub.Callback(p.src)
}

func (h *harness) slot(i int) *fakeVirt {
	require.Less(h.t, i, len(h.m.paired))
	if h.m.paired[i] == nil {
		return nil
	}
	return h.m.paired[i].(*fakeVirt)
}
