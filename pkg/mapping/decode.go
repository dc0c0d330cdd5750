package mapping

import (
	"strings"

	"github.com/google/uuid"

	"github.com/synrais/padmap/pkg/config"
)

// AntiDeadzoneMax is the upper bound of an anti-deadzone value.
const AntiDeadzoneMax = 32767

// Decode reads the PADn entry of [Mappings] for slot (0..3) and decodes the
// section it names. Decoding never fails; malformed values fall back to
// their defaults. Decode reads src only and is safe to run for several
// slots concurrently.
func Decode(slot int, src config.Source) Outcome {
	out := Outcome{Slot: slot}

	name, ok := src.Section(config.MappingsSection).String(padKey(slot))
	if !ok {
		return out
	}
	out.Section = name
	sec := src.Section(name)

	dev := NewDevice()
	dev.ProductGUID = ParseGUID(sec, "ProductGUID")
	dev.InstanceGUID = ParseGUID(sec, "InstanceGUID")
	dev.Passthrough = sec.Bool("PassThrough", true)

	if dev.Passthrough {
		out.State = Disabled
		out.Device = dev
		out.Mapping = NewMapping()
		return out
	}
	if dev.ProductGUID == uuid.Nil && dev.InstanceGUID == uuid.Nil {
		return Outcome{Slot: slot}
	}

	decodeDevice(&dev, slot, sec)
	m := NewMapping()
	m.Enabled = true
	decodeMapping(&m, &dev, sec)

	out.State = Enabled
	out.Device = dev
	out.Mapping = m
	return out
}

// DecodeAll decodes every slot in order.
func DecodeAll(src config.Source) [Slots]Outcome {
	var all [Slots]Outcome
	for i := range all {
		all[i] = Decode(i, src)
	}
	return all
}

// ParseGUID reads a textual GUID, with or without braces. Missing or
// malformed text yields uuid.Nil.
func ParseGUID(sec config.Section, key string) uuid.UUID {
	s, ok := sec.String(key)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func decodeDevice(dev *Device, slot int, sec config.Section) {
	dev.UserIndex = slot
	dev.UseProductGUID = sec.Bool("UseProductGUID", false)
	dev.SwapMotors = sec.Bool("SwapMotor", false)
	dev.TriggerDeadzone = int32(sec.Int("TriggerDeadzone", 0))
	dev.UseForceFeedback = sec.Bool("UseForceFeedback", false)
	dev.GamepadType = uint8(sec.Int("ControllerType", 1))
	dev.AxisToDpad = sec.Bool("AxisToDPad", false)
	dev.AxisToDpadDeadzone = int32(sec.Int("AxisToDPadDeadZone", 0))
	dev.AxisToDpadOffset = int32(sec.Int("AxisToDPadOffset", 0))
	dev.ForceFeedback.Type = uint8(sec.Int("FFBType", 0))
	dev.ForceFeedback.ForcePercent = float32(sec.Int("ForcePercent", 100)) * 0.01
	dev.ForceFeedback.LeftPeriod = int32(sec.Int("LeftMotorPeriod", 60))
	dev.ForceFeedback.RightPeriod = int32(sec.Int("RightMotorPeriod", 20))
}

func decodeMapping(m *Mapping, dev *Device, sec config.Section) {
	m.Guide = RawID(sec.Int("GuideButton", 0))

	for i := Button(0); i < ButtonCount; i++ {
		m.Buttons[i] = HumanIndex(sec.Int(buttonKeys[i], 0))
	}

	// POV directions and axes share the loop index.
	for i := 0; i < int(DirectionCount); i++ {
		if s, ok := sec.String(povKeys[i]); ok {
			if p, set := DecodePov(s); set {
				m.Povs[i] = p
			}
		}

		a := Axis(i)
		if s, ok := sec.String(axisKeys[a]); ok {
			m.Axes[a] = DecodeAxis(s)
		}
		dev.AntiDeadzone[a] = ClampAntiDeadzone(sec.Int(axisAntiDeadzoneKey(a), 0))
		dev.AxisDeadzone[a] = int32(sec.Int(axisDeadzoneKey(a), 0))
		dev.AxisLinearity[a] = int32(sec.Int(axisLinearKey(a), 0))
		m.Axes[a].Digital.Positive = HumanIndex(sec.Int(axisPosButtonKey(a), 0))
		m.Axes[a].Digital.Negative = HumanIndex(sec.Int(axisNegButtonKey(a), 0))
	}

	for t := Trigger(0); t < TriggerCount; t++ {
		if s, ok := sec.String(triggerKeys[t]); ok {
			m.Triggers[t].Kind, m.Triggers[t].Source = DecodeTrigger(s)
		}
		if s, ok := sec.String(triggerAltKey(t)); ok {
			m.Triggers[t].AltButton = int32(config.Atoi(s) - 1)
			m.Triggers[t].HasAlt = true
		}
	}

	m.DpadPOV = HumanIndex(sec.Int("D-pad POV", 0))
}

var compassKeywords = []struct {
	word string
	dir  Direction
}{
	{"UP", Up},
	{"DOWN", Down},
	{"LEFT", Left},
	{"RIGHT", Right},
}

// DecodePov decodes one D-pad direction value. Numbers below 100 are
// one-based buttons, larger numbers are degree codes, and text without a
// number is scanned for UP/DOWN/LEFT/RIGHT (case-sensitive; the last
// keyword in that order wins). set is false when nothing was recognized.
func DecodePov(s string) (p PovBinding, set bool) {
	val := config.Atoi(s)
	switch {
	case val == 0:
		for _, k := range compassKeywords {
			if strings.Contains(s, k.word) {
				p, set = Compass(k.dir), true
			}
		}
		return p, set
	case val < 100:
		return DigitalButton(uint16(val - 1)), true
	default:
		return RawDegrees(uint16(val)), true
	}
}

// DecodeAxis decodes an axis source: "s<n>" or "S<n>" is slider n,
// anything else is parsed as an axis number.
func DecodeAxis(s string) AxisBinding {
	if s != "" && (s[0] == 's' || s[0] == 'S') {
		return AxisBinding{Type: AnalogSlider, Source: int32(config.Atoi(s[1:]))}
	}
	return AxisBinding{Type: AnalogAxis, Source: int32(config.Atoi(s))}
}

// ParseTriggerKind maps the tag letter at the start of a trigger value.
// Only the first character matters.
func ParseTriggerKind(s string) TriggerKind {
	if s == "" {
		return TriggerDigital
	}
	switch s[0] | 0x20 {
	case 'a':
		return TriggerAxis
	case 's':
		return TriggerSlider
	case 'x':
		return TriggerHalfAxis
	case 'h':
		return TriggerHalfSlider
	case 'z':
		return TriggerCombo
	}
	return TriggerDigital
}

// DecodeTrigger decodes a trigger value. Digital values are one-based
// button numbers; the other kinds carry a tag letter followed by the
// physical axis or slider number.
func DecodeTrigger(s string) (TriggerKind, int32) {
	kind := ParseTriggerKind(s)
	if kind == TriggerDigital {
		return kind, int32(config.Atoi(s) - 1)
	}
	return kind, int32(config.Atoi(s[1:]))
}

// ClampAntiDeadzone limits v to [0, AntiDeadzoneMax].
func ClampAntiDeadzone(v int64) int32 {
	if v < 0 {
		return 0
	}
	if v > AntiDeadzoneMax {
		return AntiDeadzoneMax
	}
	return int32(v)
}
