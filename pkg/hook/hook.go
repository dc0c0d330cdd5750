package hook

import (
	"errors"
	"strings"
)

// ErrDisabled is returned when [Options] Disable is set. Nothing else may be
// resolved or decoded after it.
var ErrDisabled = errors.New("x360ce disabled by configuration")

// Mask selects the interception mechanisms to activate. Bit values match
// the HookMask numbers found in existing x360ce.ini and x360ce.gdb files.
type Mask uint32

const (
	LowLevel        Mask = 0x00000001
	COM             Mask = 0x00000002
	DirectInput     Mask = 0x00000004
	VIDPID          Mask = 0x00000008
	SubsystemAttach Mask = 0x00000010
	Name            Mask = 0x00000020
	Stop            Mask = 0x00000040
	WaitThread      Mask = 0x01000000
)

var maskNames = []struct {
	bit  Mask
	name string
}{
	{LowLevel, "LL"},
	{COM, "COM"},
	{DirectInput, "DI"},
	{VIDPID, "VIDPID"},
	{SubsystemAttach, "SA"},
	{Name, "NAME"},
	{Stop, "STOP"},
	{WaitThread, "WT"},
}

func (m Mask) Has(bit Mask) bool {
	return m&bit != 0
}

// String lists the named bits, e.g. "COM,DI". Unnamed bits are ignored.
func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, n := range maskNames {
		if m.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// Reference identity of the Xbox 360 controller. A configured fake VID/PID
// equal to it is not worth spoofing.
const (
	XboxVID uint32 = 0x045E
	XboxPID uint32 = 0x028E
)

// Flags are the individual HookXX switches.
type Flags struct {
	LowLevel        bool
	COM             bool
	DirectInput     bool
	VIDPID          bool
	SubsystemAttach bool
	Name            bool
	Stop            bool
	WaitThread      bool
}

// Mask returns the union of the bits whose flag is set.
func (f Flags) Mask() Mask {
	var m Mask
	for _, b := range []struct {
		on  bool
		bit Mask
	}{
		{f.LowLevel, LowLevel},
		{f.COM, COM},
		{f.DirectInput, DirectInput},
		{f.VIDPID, VIDPID},
		{f.SubsystemAttach, SubsystemAttach},
		{f.Name, Name},
		{f.Stop, Stop},
		{f.WaitThread, WaitThread},
	} {
		if b.on {
			m |= b.bit
		}
	}
	return m
}

// Inputs gathers everything the policy looks at.
type Inputs struct {
	Disable      bool
	DatabaseMask Mask
	Override     bool
	ManualMask   Mask
	Flags        Flags
	FakeVID      uint32
	FakePID      uint32
}

// Source names the input that selected the mask.
type Source string

const (
	SourceNone     Source = "none"
	SourceGameDB   Source = "gamedb"
	SourceHookMask Source = "hookmask"
	SourceFlags    Source = "flags"
)

// Config is the resolved hook policy.
type Config struct {
	Mask    Mask   `json:"mask" yaml:"mask"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Source  Source `json:"source" yaml:"source"`
	// FakeVIDPID packs the spoofed identity as VID | PID<<16.
	FakeVIDPID *uint32 `json:"fakeVidPid,omitempty" yaml:"fakeVidPid,omitempty"`
}

// FakeIDs unpacks FakeVIDPID.
func (c Config) FakeIDs() (vid, pid uint16, ok bool) {
	if c.FakeVIDPID == nil {
		return 0, 0, false
	}
	v := *c.FakeVIDPID
	return uint16(v & 0xFFFF), uint16(v >> 16), true
}

// Resolve applies the hook policy. The game database wins unless Override
// is set, then HookMask, then the individual flags.
func Resolve(in Inputs) (Config, error) {
	if in.Disable {
		return Config{}, ErrDisabled
	}

	c := Config{Source: SourceNone}
	switch {
	case !in.Override && in.DatabaseMask != 0:
		c.Mask, c.Source = in.DatabaseMask, SourceGameDB
	case in.ManualMask != 0:
		c.Mask, c.Source = in.ManualMask, SourceHookMask
	case in.Flags.Mask() != 0:
		c.Mask, c.Source = in.Flags.Mask(), SourceFlags
	}
	c.Enabled = c.Mask != 0

	// Full values are compared; only the low words are packed.
	if c.Mask.Has(VIDPID) && (in.FakeVID != XboxVID || in.FakePID != XboxPID) {
		packed := in.FakeVID&0xFFFF | (in.FakePID&0xFFFF)<<16
		c.FakeVIDPID = &packed
	}
	return c, nil
}
