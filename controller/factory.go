package controller

import (
	"github.com/pkg/errors"

	"github.com/riking/joycon/joycond/jcpc"
)

// DefaultCombinedName is the device name of a merged pair.
const DefaultCombinedName = "Nintendo Switch Combined Joy-Cons"

// Factory builds virtual controllers, creating combined controllers'
// devices through Output.
type Factory struct {
	Output       jcpc.OutputFactory
	CombinedName string
}

var _ jcpc.VirtualFactory = &Factory{}

func (f *Factory) Passthrough(jc jcpc.Physical) (jcpc.Virtual, error) {
	return Passthrough(jc), nil
}

func (f *Factory) Combined(left, right jcpc.Physical) (jcpc.Virtual, error) {
	name := f.CombinedName
	if name == "" {
		name = DefaultCombinedName
	}
	out, err := f.Output(name)
	if err != nil {
		return nil, errors.Wrap(err, "combined controller output")
	}
	return TwoJoyCons(left, right, out), nil
}
