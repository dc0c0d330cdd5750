package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synrais/padmap/pkg/assets"
	"github.com/synrais/padmap/pkg/config"
	"github.com/synrais/padmap/pkg/hook"
	"github.com/synrais/padmap/pkg/logging"
	"github.com/synrais/padmap/pkg/mapping"
)

type fakeLookup struct {
	masks map[string]hook.Mask
	err   error
	calls int
}

func (f *fakeLookup) HookMask(exe string) (hook.Mask, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.masks[strings.ToLower(exe)], nil
}

func load(t *testing.T, text string) *config.File {
	t.Helper()
	f, err := config.LoadBytes([]byte(text))
	require.NoError(t, err)
	return f
}

func TestRunDisabled(t *testing.T) {
	db := &fakeLookup{masks: map[string]hook.Mask{"game.exe": hook.COM}}
	f := load(t, "[Options]\nDisable=1\n[Mappings]\nPAD1=Pad\n[Pad]\nPassThrough=0\nProductGUID={8e2b5f00-0000-0000-0000-504944564944}\n")

	res, err := Run(context.Background(), f, "game.exe", db, logging.Discard())
	require.ErrorIs(t, err, hook.ErrDisabled)
	assert.Nil(t, res)
	assert.Zero(t, db.calls)
}

func TestRunDisableAcceptsAnyNonZero(t *testing.T) {
	res, err := Run(context.Background(), load(t, "[Options]\nDisable=2\n"), "", nil, logging.Discard())
	require.ErrorIs(t, err, hook.ErrDisabled)
	assert.Nil(t, res)
}

func TestRunNumericFlagsAndMask(t *testing.T) {
	res, err := Run(context.Background(), load(t, "[InputHook]\nHookDI=2\nHookSA=-1\n"), "", nil, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, hook.DirectInput|hook.SubsystemAttach, res.Hooks.Mask)
	assert.Equal(t, hook.SourceFlags, res.Hooks.Source)

	res, err = Run(context.Background(), load(t, "[InputHook]\nHookMask=12abc\n"), "", nil, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, hook.DirectInput|hook.VIDPID, res.Hooks.Mask)
	assert.Equal(t, hook.SourceHookMask, res.Hooks.Source)
}

func TestRunHookSources(t *testing.T) {
	tests := []struct {
		name   string
		ini    string
		db     map[string]hook.Mask
		mask   hook.Mask
		source hook.Source
	}{
		{
			name:   "database",
			ini:    "[InputHook]\nHookMask=0xFF\nHookLL=1\n",
			db:     map[string]hook.Mask{"game.exe": hook.DirectInput},
			mask:   hook.DirectInput,
			source: hook.SourceGameDB,
		},
		{
			name:   "override",
			ini:    "[InputHook]\nOverride=1\nHookMask=0xFF\n",
			db:     map[string]hook.Mask{"game.exe": hook.DirectInput},
			mask:   0xFF,
			source: hook.SourceHookMask,
		},
		{
			name:   "not listed",
			ini:    "[InputHook]\nHookCOM=1\nHookWT=1\n",
			db:     map[string]hook.Mask{"other.exe": hook.DirectInput},
			mask:   hook.COM | hook.WaitThread,
			source: hook.SourceFlags,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(context.Background(), load(t, tt.ini), "Game.exe", &fakeLookup{masks: tt.db}, logging.Discard())
			require.NoError(t, err)
			assert.Equal(t, tt.mask, res.Hooks.Mask)
			assert.Equal(t, tt.source, res.Hooks.Source)
			assert.True(t, res.Hooks.Enabled)
			assert.Empty(t, res.Pairs())
		})
	}
}

func TestRunLookupErrorIsIgnored(t *testing.T) {
	db := &fakeLookup{err: errors.New("broken store")}
	res, err := Run(context.Background(), load(t, "[InputHook]\nHookMask=2\n"), "game.exe", db, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, hook.COM, res.Hooks.Mask)
	assert.Equal(t, 1, db.calls)
}

func TestRunWithoutDatabase(t *testing.T) {
	res, err := Run(context.Background(), load(t, "[InputHook]\nHookDI=1\n"), "game.exe", nil, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, hook.DirectInput, res.Hooks.Mask)

	db := &fakeLookup{}
	_, err = Run(context.Background(), load(t, ""), "", db, logging.Discard())
	require.NoError(t, err)
	assert.Zero(t, db.calls, "no exe, no lookup")
}

func TestRunFakeVIDPID(t *testing.T) {
	f := load(t, "[InputHook]\nHookMask=0x8\nFakeVID=0x046D\nFakePID=0xC21D\n")
	res, err := Run(context.Background(), f, "", nil, logging.Discard())
	require.NoError(t, err)
	require.NotNil(t, res.Hooks.FakeVIDPID)
	assert.Equal(t, uint32(0xC21D046D), *res.Hooks.FakeVIDPID)

	f = load(t, "[InputHook]\nHookMask=0x8\nFakeVID=0x1045E\n")
	res, err = Run(context.Background(), f, "", nil, logging.Discard())
	require.NoError(t, err)
	require.NotNil(t, res.Hooks.FakeVIDPID, "0x1045E is not the reference VID")
	assert.Equal(t, uint32(0x028E045E), *res.Hooks.FakeVIDPID)
}

func TestRunDefaultIni(t *testing.T) {
	f := load(t, string(assets.DefaultIni))
	res, err := Run(context.Background(), f, "", nil, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, hook.COM|hook.DirectInput, res.Hooks.Mask)
	assert.Equal(t, mapping.Enabled, res.Slots[0].State)
	for _, s := range res.Slots[1:] {
		assert.Equal(t, mapping.Absent, s.State)
	}
	pairs := res.Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, "IG_Default", pairs[0].Section)

	m := pairs[0].Mapping
	assert.Equal(t, mapping.HumanIndex(1), m.Buttons[mapping.ButtonA])
	assert.Equal(t, mapping.Compass(mapping.Up), m.Povs[mapping.Up])
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "overrides")
}

func TestRunMixedPovWarning(t *testing.T) {
	f := load(t, `
[Mappings]
PAD2=Mixed
PAD3=Pass
[Mixed]
PassThrough=0
InstanceGUID={3c8a1f10-1d2e-11e1-8001-444553540000}
D-pad Up=1
D-pad Down=DOWN
[Pass]
PassThrough=1
`)
	res, err := Run(context.Background(), f, "", nil, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, mapping.Enabled, res.Slots[1].State)
	assert.Equal(t, 1, res.Slots[1].Device.UserIndex)
	assert.Equal(t, mapping.Disabled, res.Slots[2].State)
	assert.Len(t, res.Pairs(), 2)
	require.Len(t, res.Warnings, 1)
	assert.True(t, strings.HasPrefix(res.Warnings[0], "PAD2:"))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, load(t, ""), "", nil, logging.Discard())
	assert.ErrorIs(t, err, context.Canceled)
}
