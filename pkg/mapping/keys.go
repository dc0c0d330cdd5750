package mapping

import "fmt"

// INI key names, indexed by the matching enum.

var buttonKeys = [ButtonCount]string{
	"A",
	"B",
	"X",
	"Y",
	"Left Shoulder",
	"Right Shoulder",
	"Back",
	"Start",
	"Left Thumb",
	"Right Thumb",
}

var povKeys = [DirectionCount]string{
	"D-pad Up",
	"D-pad Down",
	"D-pad Left",
	"D-pad Right",
}

var axisKeys = [AxisCount]string{
	"Left Analog X",
	"Left Analog Y",
	"Right Analog X",
	"Right Analog Y",
}

var triggerKeys = [TriggerCount]string{
	"Left Trigger",
	"Right Trigger",
}

func padKey(slot int) string {
	return fmt.Sprintf("PAD%d", slot+1)
}

func axisDeadzoneKey(a Axis) string { return axisKeys[a] + " DeadZone" }
func axisAntiDeadzoneKey(a Axis) string { return axisKeys[a] + " AntiDeadZone" }
func axisLinearKey(a Axis) string { return axisKeys[a] + " Linear" }
func axisPosButtonKey(a Axis) string { return axisKeys[a] + "+ Button" }
func axisNegButtonKey(a Axis) string { return axisKeys[a] + "- Button" }
func triggerAltKey(t Trigger) string { return triggerKeys[t] + " But" }
