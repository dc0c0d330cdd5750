package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synrais/padmap/pkg/config"
	"github.com/synrais/padmap/pkg/mapping"
)

func TestGamepadMapCoversButtons(t *testing.T) {
	seen := map[int]mapping.Button{}
	for b := mapping.Button(0); b < mapping.ButtonCount; b++ {
		code, ok := ToGamepadCode(b)
		require.True(t, ok, b.String())
		assert.NotEmpty(t, CodeName(code), b.String())
		_, dup := seen[code]
		assert.False(t, dup, "%s shares code %d", b, code)
		seen[code] = b
	}
	for d := mapping.Direction(0); d < mapping.DirectionCount; d++ {
		assert.NotEmpty(t, CodeName(DpadMap[d]))
	}
	assert.Equal(t, "BTN_MODE", CodeName(GuideCode))
	assert.Empty(t, CodeName(-1))
}

func TestDescribeAbsent(t *testing.T) {
	assert.Equal(t, []string{"PAD3: absent"}, Describe(mapping.Outcome{Slot: 2}))
	assert.Equal(t, []string{"PAD1: passthrough [Wheel]"},
		Describe(mapping.Outcome{State: mapping.Disabled, Section: "Wheel"}))
}

func TestDescribeEnabled(t *testing.T) {
	src := config.NewMapSource(map[string]map[string]string{
		"Mappings": {"PAD1": "Pad"},
		"Pad": {
			"PassThrough":           "0",
			"ProductGUID":           "{8e2b5f00-0000-0000-0000-504944564944}",
			"A":                     "1",
			"GuideButton":           "13",
			"D-pad Up":              "UP",
			"D-pad Down":            "6",
			"Left Trigger":          "a3",
			"Left Trigger But":      "7",
			"Right Trigger":         "8",
			"Left Analog X":         "s2",
			"Left Analog X+ Button": "4",
		},
	})
	lines := Describe(mapping.Decode(0, src))
	require.NotEmpty(t, lines)
	assert.Equal(t, "PAD1: enabled [Pad]", lines[0])

	text := strings.Join(lines, "\n")
	assert.Contains(t, text, "<- button 1 (BTN_SOUTH)")
	assert.Contains(t, text, "<- id 13 (BTN_MODE)")
	assert.Contains(t, text, "<- POV 36000 (BTN_DPAD_UP)")
	assert.Contains(t, text, "<- button 6 (BTN_DPAD_DOWN)")
	assert.Contains(t, text, "<- axis 3 or button 7 (BTN_TL2)")
	assert.Contains(t, text, "<- button 8 (BTN_TR2)")
	assert.Contains(t, text, "<- slider 2, + button 4")
	assert.NotContains(t, text, "BTN_EAST")
}

func TestDescribeDpadOverride(t *testing.T) {
	src := config.NewMapSource(map[string]map[string]string{
		"Mappings": {"PAD1": "Pad"},
		"Pad": {
			"PassThrough": "0",
			"ProductGUID": "{8e2b5f00-0000-0000-0000-504944564944}",
			"D-pad POV":   "2",
			"D-pad Up":    "UP",
		},
	})
	text := strings.Join(Describe(mapping.Decode(0, src)), "\n")
	assert.Contains(t, text, "<- POV 2")
	assert.NotContains(t, text, "BTN_DPAD_UP")
}
