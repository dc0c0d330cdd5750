package config

// --- Config Structs ---

type Options struct {
	Disable     bool
	UseInitBeep bool
	Log         bool
	Console     bool
}

// InputHook mirrors the [InputHook] section. The Hook* switches are only
// consulted when neither the game database nor HookMask selected a mask.
type InputHook struct {
	Override bool
	HookMask uint32
	// FakeVID and FakePID are kept at full width; only their low words
	// are packed into the spoofed identity.
	FakeVID uint32
	FakePID uint32

	HookLL     bool
	HookCOM    bool
	HookDI     bool
	HookVIDPID bool
	HookSA     bool
	HookNAME   bool
	HookSTOP   bool
	HookWT     bool
}

// --- Default Config Constructors ---

func NewDefaultOptions() Options {
	return Options{
		UseInitBeep: true,
	}
}

func NewDefaultInputHook() InputHook {
	return InputHook{
		FakeVID: 0x045E,
		FakePID: 0x028E,
	}
}

// --- Section Readers ---

// ReadOptions fills Options from sec, keeping defaults for missing keys.
func ReadOptions(sec Section) Options {
	def := NewDefaultOptions()
	return Options{
		Disable:     sec.Bool("Disable", def.Disable),
		UseInitBeep: sec.Bool("UseInitBeep", def.UseInitBeep),
		Log:         sec.Bool("Log", def.Log),
		Console:     sec.Bool("Console", def.Console),
	}
}

// ReadInputHook fills InputHook from sec, keeping defaults for missing keys.
func ReadInputHook(sec Section) InputHook {
	def := NewDefaultInputHook()
	return InputHook{
		Override:   sec.Bool("Override", def.Override),
		HookMask:   sec.Dword("HookMask", def.HookMask),
		FakeVID:    sec.Dword("FakeVID", def.FakeVID),
		FakePID:    sec.Dword("FakePID", def.FakePID),
		HookLL:     sec.Bool("HookLL", false),
		HookCOM:    sec.Bool("HookCOM", false),
		HookDI:     sec.Bool("HookDI", false),
		HookVIDPID: sec.Bool("HookVIDPID", false),
		HookSA:     sec.Bool("HookSA", false),
		HookNAME:   sec.Bool("HookNAME", false),
		HookSTOP:   sec.Bool("HookSTOP", false),
		HookWT:     sec.Bool("HookWT", false),
	}
}
