package output

import (
	"encoding/binary"
	"os"

	"github.com/holoplot/go-evdev"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/riking/joycon/joycond/jcpc"
)

// linux/uinput.h
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetAbsBit  = 0x40045567
)

type uinput struct {
	f *os.File
}

// NewUInput creates a virtual input device with the combined controller
// layout, including the stick ranges.
func NewUInput(name string) (jcpc.Output, error) {
	fd, err := unix.Open("/dev/uinput", unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open /dev/uinput")
	}
	u := &uinput{f: os.NewFile(uintptr(fd), "/dev/uinput")}

	if err := u.setup(name); err != nil {
		u.f.Close()
		return nil, errors.Wrapf(err, "create uinput device %q", name)
	}
	return u, nil
}

func (u *uinput) setup(name string) error {
	fd := int(u.f.Fd())
	setBits := map[evdev.EvType]uint{
		evdev.EV_KEY: uiSetKeyBit,
		evdev.EV_ABS: uiSetAbsBit,
	}
	for ev, codes := range CombinedCapabilities() {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, int(ev)); err != nil {
			return errors.Wrapf(err, "set ev bit %d", ev)
		}
		for _, code := range codes {
			if err := unix.IoctlSetInt(fd, setBits[ev], int(code)); err != nil {
				return errors.Wrapf(err, "set code %d:%d", ev, code)
			}
		}
	}
	// EV_SYN is implied by the kernel.

	if err := binary.Write(u.f, binary.LittleEndian, userDevice(name)); err != nil {
		return errors.Wrap(err, "write device description")
	}
	return unix.IoctlSetInt(fd, uiDevCreate, 0)
}

func (u *uinput) WriteEvent(ev jcpc.Event) error {
	return binary.Write(u.f, binary.LittleEndian, &ev)
}

func (u *uinput) Close() error {
	err := unix.IoctlSetInt(int(u.f.Fd()), uiDevDestroy, 0)
	if cerr := u.f.Close(); err == nil {
		err = cerr
	}
	return err
}
