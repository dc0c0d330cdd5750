package mapping

import (
	"encoding/json"

	"github.com/google/uuid"
)

const Slots = 4

type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonBack
	ButtonStart
	ButtonLeftThumb
	ButtonRightThumb
	ButtonCount
)

func (b Button) String() string { return buttonKeys[b] }

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	DirectionCount
)

func (d Direction) String() string { return povKeys[d] }

// Code is the direction in hundredths of a compass degree. Up is reported
// as 36000 rather than 0 so that it stays distinguishable from "unset".
func (d Direction) Code() uint16 {
	switch d {
	case Up:
		return 36000
	case Down:
		return 18000
	case Left:
		return 27000
	case Right:
		return 9000
	}
	return 0
}

type Axis int

const (
	LeftX Axis = iota
	LeftY
	RightX
	RightY
	AxisCount
)

func (a Axis) String() string { return axisKeys[a] }

type Trigger int

const (
	LeftTrigger Trigger = iota
	RightTrigger
	TriggerCount
)

func (t Trigger) String() string { return triggerKeys[t] }

// ButtonIndex is a zero-based button number that was entered one-based.
// The zero value is unmapped.
type ButtonIndex struct {
	index int32
	set   bool
}

// HumanIndex converts a one-based number as typed in the INI. Values <= 0
// leave the button unmapped.
func HumanIndex(n int64) ButtonIndex {
	if n <= 0 {
		return ButtonIndex{}
	}
	return ButtonIndex{index: int32(n - 1), set: true}
}

// Index returns the zero-based button and whether one is mapped.
func (b ButtonIndex) Index() (int32, bool) { return b.index, b.set }

func (b ButtonIndex) IsSet() bool { return b.set }

func (b ButtonIndex) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	return json.Marshal(b.index)
}

func (b ButtonIndex) MarshalYAML() (interface{}, error) {
	if !b.set {
		return nil, nil
	}
	return b.index, nil
}

// RawID is a control identifier stored exactly as read. Zero means unset.
type RawID uint16

type PovKind uint8

const (
	PovUnset PovKind = iota
	PovCompass
	PovButton
	PovDegrees
)

func (k PovKind) String() string {
	switch k {
	case PovCompass:
		return "compass"
	case PovButton:
		return "button"
	case PovDegrees:
		return "degrees"
	}
	return "unset"
}

// PovBinding says what drives one d-pad direction. Value is the degree code
// for PovCompass and PovDegrees, and the zero-based button for PovButton.
type PovBinding struct {
	Kind  PovKind `json:"kind" yaml:"kind"`
	Value uint16  `json:"value" yaml:"value"`
}

func Compass(d Direction) PovBinding { return PovBinding{Kind: PovCompass, Value: d.Code()} }
func DigitalButton(id uint16) PovBinding { return PovBinding{Kind: PovButton, Value: id} }
func RawDegrees(v uint16) PovBinding { return PovBinding{Kind: PovDegrees, Value: v} }

func (p PovBinding) IsSet() bool { return p.Kind != PovUnset }

type TriggerKind uint8

const (
	TriggerNone TriggerKind = iota
	TriggerAxis
	TriggerSlider
	TriggerHalfAxis
	TriggerHalfSlider
	TriggerCombo
	TriggerDigital
)

func (k TriggerKind) String() string {
	return [...]string{"none", "axis", "slider", "half-axis", "half-slider", "combo", "digital"}[k]
}

func (k TriggerKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// TriggerBinding maps one trigger. Source is a physical axis/slider for the
// analog kinds and a zero-based button for TriggerDigital.
type TriggerBinding struct {
	Kind   TriggerKind `json:"kind" yaml:"kind"`
	Source int32       `json:"source" yaml:"source"`
	// AltButton is an extra digital control, independent of Kind.
	AltButton int32 `json:"altButton" yaml:"altButton"`
	HasAlt    bool  `json:"hasAlt" yaml:"hasAlt"`
}

type AnalogType uint8

const (
	AnalogAxis AnalogType = iota
	AnalogSlider
)

func (t AnalogType) String() string {
	if t == AnalogSlider {
		return "slider"
	}
	return "axis"
}

func (t AnalogType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

type DigitalOverride struct {
	Positive ButtonIndex `json:"positive" yaml:"positive"`
	Negative ButtonIndex `json:"negative" yaml:"negative"`
}

type AxisBinding struct {
	Type    AnalogType      `json:"type" yaml:"type"`
	Source  int32           `json:"source" yaml:"source"`
	Digital DigitalOverride `json:"digital" yaml:"digital"`
}

// HasDigital reports whether either half of the axis is also bound to a button.
func (a AxisBinding) HasDigital() bool {
	return a.Digital.Positive.IsSet() || a.Digital.Negative.IsSet()
}

type ForceFeedback struct {
	Type uint8 `json:"type" yaml:"type"`
	// ForcePercent is the configured percentage divided by 100.
	ForcePercent float32 `json:"forcePercent" yaml:"forcePercent"`
	LeftPeriod   int32   `json:"leftPeriodMs" yaml:"leftPeriodMs"`
	RightPeriod  int32   `json:"rightPeriodMs" yaml:"rightPeriodMs"`
}

type Device struct {
	ProductGUID        uuid.UUID        `json:"productGuid" yaml:"productGuid"`
	InstanceGUID       uuid.UUID        `json:"instanceGuid" yaml:"instanceGuid"`
	UserIndex          int              `json:"userIndex" yaml:"userIndex"`
	Passthrough        bool             `json:"passthrough" yaml:"passthrough"`
	UseProductGUID     bool             `json:"useProductGuid" yaml:"useProductGuid"`
	SwapMotors         bool             `json:"swapMotors" yaml:"swapMotors"`
	TriggerDeadzone    int32            `json:"triggerDeadzone" yaml:"triggerDeadzone"`
	UseForceFeedback   bool             `json:"useForceFeedback" yaml:"useForceFeedback"`
	GamepadType        uint8            `json:"gamepadType" yaml:"gamepadType"`
	AxisToDpad         bool             `json:"axisToDpad" yaml:"axisToDpad"`
	AxisToDpadDeadzone int32            `json:"axisToDpadDeadzone" yaml:"axisToDpadDeadzone"`
	AxisToDpadOffset   int32            `json:"axisToDpadOffset" yaml:"axisToDpadOffset"`
	ForceFeedback      ForceFeedback    `json:"forceFeedback" yaml:"forceFeedback"`
	AntiDeadzone       [AxisCount]int32 `json:"antiDeadzone" yaml:"antiDeadzone"`
	AxisDeadzone       [AxisCount]int32 `json:"axisDeadzone" yaml:"axisDeadzone"`
	AxisLinearity      [AxisCount]int32 `json:"axisLinearity" yaml:"axisLinearity"`
}

// NewDevice returns a device with every field at its default.
func NewDevice() Device {
	return Device{
		GamepadType: 1,
		ForceFeedback: ForceFeedback{
			ForcePercent: 1,
			LeftPeriod:   60,
			RightPeriod:  20,
		},
	}
}

type Mapping struct {
	Enabled  bool                         `json:"enabled" yaml:"enabled"`
	Guide    RawID                        `json:"guide" yaml:"guide"`
	Buttons  [ButtonCount]ButtonIndex     `json:"buttons" yaml:"buttons"`
	Povs     [DirectionCount]PovBinding   `json:"povs" yaml:"povs"`
	DpadPOV  ButtonIndex                  `json:"dpadPov" yaml:"dpadPov"`
	Triggers [TriggerCount]TriggerBinding `json:"triggers" yaml:"triggers"`
	Axes     [AxisCount]AxisBinding       `json:"axes" yaml:"axes"`
}

// NewMapping returns a disabled mapping with both triggers unbound.
func NewMapping() Mapping {
	var m Mapping
	for i := range m.Triggers {
		m.Triggers[i] = TriggerBinding{Kind: TriggerNone, Source: -1}
	}
	return m
}

// PovIsButton reports whether the d-pad directions are button indices. It
// holds only when at least one direction is set and all set directions are
// DigitalButton bindings.
func (m Mapping) PovIsButton() bool {
	buttons, other := m.povKinds()
	return buttons > 0 && other == 0
}

// PovModeMixed reports button bindings mixed with compass or degree
// bindings. Consumers that need a single mode cannot represent that.
func (m Mapping) PovModeMixed() bool {
	buttons, other := m.povKinds()
	return buttons > 0 && other > 0
}

func (m Mapping) povKinds() (buttons, other int) {
	for _, p := range m.Povs {
		switch p.Kind {
		case PovUnset:
		case PovButton:
			buttons++
		default:
			other++
		}
	}
	return buttons, other
}

// DpadSource resolves the precedence between the D-pad POV override and the
// per-direction bindings: when the override is set the whole d-pad is read
// from that POV and Povs are ignored.
func (m Mapping) DpadSource() (pov int32, override bool) {
	return m.DpadPOV.Index()
}

type State uint8

const (
	// Absent: no PADn key, or a non pass-through slot without GUIDs.
	Absent State = iota
	// Disabled: pass-through, the device is forwarded unmodified.
	Disabled
	Enabled
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "passthrough"
	case Enabled:
		return "enabled"
	}
	return "absent"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome is the decode result of one slot. Device and Mapping are only
// meaningful when State is not Absent.
type Outcome struct {
	Slot    int     `json:"slot" yaml:"slot"`
	State   State   `json:"state" yaml:"state"`
	Section string  `json:"section,omitempty" yaml:"section,omitempty"`
	Device  Device  `json:"device" yaml:"device"`
	Mapping Mapping `json:"mapping" yaml:"mapping"`
}
