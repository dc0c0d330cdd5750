package input

import (
	"fmt"

	"github.com/synrais/padmap/pkg/mapping"
)

// Describe renders a decoded slot as readable lines, one per bound control,
// annotated with the event code the virtual pad reports.
func Describe(o mapping.Outcome) []string {
	head := fmt.Sprintf("PAD%d: %s", o.Slot+1, o.State)
	if o.Section != "" {
		head += " [" + o.Section + "]"
	}
	lines := []string{head}
	if o.State != mapping.Enabled {
		return lines
	}

	d, m := o.Device, o.Mapping
	lines = append(lines,
		fmt.Sprintf("  product %s instance %s type %d", d.ProductGUID, d.InstanceGUID, d.GamepadType),
	)
	if m.Guide != 0 {
		lines = append(lines, fmt.Sprintf("  %-16s <- id %d (%s)", "Guide", m.Guide, CodeName(GuideCode)))
	}
	for b := mapping.Button(0); b < mapping.ButtonCount; b++ {
		idx, ok := m.Buttons[b].Index()
		if !ok {
			continue
		}
		code, _ := ToGamepadCode(b)
		lines = append(lines, fmt.Sprintf("  %-16s <- button %d (%s)", b, idx+1, CodeName(code)))
	}
	if pov, ok := m.DpadSource(); ok {
		lines = append(lines, fmt.Sprintf("  %-16s <- POV %d", "D-pad", pov+1))
	} else {
		for dir := mapping.Direction(0); dir < mapping.DirectionCount; dir++ {
			p := m.Povs[dir]
			if !p.IsSet() {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-16s <- %s (%s)", dir, povText(p), CodeName(DpadMap[dir])))
		}
	}
	for t := mapping.Trigger(0); t < mapping.TriggerCount; t++ {
		tb := m.Triggers[t]
		if tb.Kind == mapping.TriggerNone && !tb.HasAlt {
			continue
		}
		s := fmt.Sprintf("  %-16s <- %s %d", t, tb.Kind, tb.Source)
		if tb.Kind == mapping.TriggerDigital {
			s = fmt.Sprintf("  %-16s <- button %d", t, tb.Source+1)
		}
		if tb.HasAlt {
			s += fmt.Sprintf(" or button %d", tb.AltButton+1)
		}
		lines = append(lines, s+" ("+CodeName(TriggerMap[t])+")")
	}
	for a := mapping.Axis(0); a < mapping.AxisCount; a++ {
		ab := m.Axes[a]
		s := fmt.Sprintf("  %-16s <- %s %d", a, ab.Type, ab.Source)
		if pos, ok := ab.Digital.Positive.Index(); ok {
			s += fmt.Sprintf(", + button %d", pos+1)
		}
		if neg, ok := ab.Digital.Negative.Index(); ok {
			s += fmt.Sprintf(", - button %d", neg+1)
		}
		if d.AntiDeadzone[a] != 0 || d.AxisDeadzone[a] != 0 || d.AxisLinearity[a] != 0 {
			s += fmt.Sprintf(" dz=%d adz=%d lin=%d", d.AxisDeadzone[a], d.AntiDeadzone[a], d.AxisLinearity[a])
		}
		lines = append(lines, s)
	}
	return lines
}

func povText(p mapping.PovBinding) string {
	switch p.Kind {
	case mapping.PovButton:
		return fmt.Sprintf("button %d", int(p.Value)+1)
	case mapping.PovCompass:
		return fmt.Sprintf("POV %d", p.Value)
	case mapping.PovDegrees:
		return fmt.Sprintf("POV degrees %d", p.Value)
	}
	return "unset"
}
