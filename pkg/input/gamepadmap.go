package input

import (
	"github.com/bendahl/uinput"

	"github.com/synrais/padmap/pkg/mapping"
)

// GamepadMap gives the Linux event code a virtual Xbox 360 pad reports for
// each mapped button.
var GamepadMap = map[mapping.Button]int{
	mapping.ButtonA:             uinput.ButtonSouth,
	mapping.ButtonB:             uinput.ButtonEast,
	mapping.ButtonX:             uinput.ButtonWest,
	mapping.ButtonY:             uinput.ButtonNorth,
	mapping.ButtonLeftShoulder:  uinput.ButtonBumperLeft,
	mapping.ButtonRightShoulder: uinput.ButtonBumperRight,
	mapping.ButtonBack:          uinput.ButtonSelect,
	mapping.ButtonStart:         uinput.ButtonStart,
	mapping.ButtonLeftThumb:     uinput.ButtonThumbLeft,
	mapping.ButtonRightThumb:    uinput.ButtonThumbRight,
}

var DpadMap = map[mapping.Direction]int{
	mapping.Up:    uinput.ButtonDpadUp,
	mapping.Down:  uinput.ButtonDpadDown,
	mapping.Left:  uinput.ButtonDpadLeft,
	mapping.Right: uinput.ButtonDpadRight,
}

var TriggerMap = map[mapping.Trigger]int{
	mapping.LeftTrigger:  uinput.ButtonTriggerLeft,
	mapping.RightTrigger: uinput.ButtonTriggerRight,
}

// GuideCode is the event code of the guide (Xbox) button.
const GuideCode = uinput.ButtonMode

var codeNames = map[int]string{
	uinput.ButtonSouth:        "BTN_SOUTH",
	uinput.ButtonEast:         "BTN_EAST",
	uinput.ButtonWest:         "BTN_WEST",
	uinput.ButtonNorth:        "BTN_NORTH",
	uinput.ButtonBumperLeft:   "BTN_TL",
	uinput.ButtonBumperRight:  "BTN_TR",
	uinput.ButtonTriggerLeft:  "BTN_TL2",
	uinput.ButtonTriggerRight: "BTN_TR2",
	uinput.ButtonSelect:       "BTN_SELECT",
	uinput.ButtonStart:        "BTN_START",
	uinput.ButtonMode:         "BTN_MODE",
	uinput.ButtonThumbLeft:    "BTN_THUMBL",
	uinput.ButtonThumbRight:   "BTN_THUMBR",
	uinput.ButtonDpadUp:       "BTN_DPAD_UP",
	uinput.ButtonDpadDown:     "BTN_DPAD_DOWN",
	uinput.ButtonDpadLeft:     "BTN_DPAD_LEFT",
	uinput.ButtonDpadRight:    "BTN_DPAD_RIGHT",
}

// ToGamepadCode returns the event code for a mapped button.
func ToGamepadCode(b mapping.Button) (int, bool) {
	v, ok := GamepadMap[b]
	return v, ok
}

// CodeName returns the kernel name of an event code, or "" if unknown.
func CodeName(code int) string {
	return codeNames[code]
}
