package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/synrais/padmap/pkg/config"
	"github.com/synrais/padmap/pkg/gamesdb"
	"github.com/synrais/padmap/pkg/hook"
	"github.com/synrais/padmap/pkg/mapping"
)

// Result is everything the interception layer needs at startup.
type Result struct {
	Exe      string                         `json:"exe,omitempty" yaml:"exe,omitempty"`
	Options  config.Options                 `json:"options" yaml:"options"`
	Hooks    hook.Config                    `json:"hooks" yaml:"hooks"`
	Slots    [mapping.Slots]mapping.Outcome `json:"slots" yaml:"slots"`
	Warnings []string                       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Pairs returns the slots that produced a device/mapping pair, pass-through
// ones included, in slot order.
func (r *Result) Pairs() []mapping.Outcome {
	var out []mapping.Outcome
	for _, s := range r.Slots {
		if s.State != mapping.Absent {
			out = append(out, s)
		}
	}
	return out
}

// HookInputs assembles the policy inputs from the INI and the game
// database mask of the current process.
func HookInputs(f *config.File, dbMask hook.Mask) hook.Inputs {
	ih := f.InputHook
	return hook.Inputs{
		Disable:      f.Options.Disable,
		DatabaseMask: dbMask,
		Override:     ih.Override,
		ManualMask:   hook.Mask(ih.HookMask),
		Flags: hook.Flags{
			LowLevel:        ih.HookLL,
			COM:             ih.HookCOM,
			DirectInput:     ih.HookDI,
			VIDPID:          ih.HookVIDPID,
			SubsystemAttach: ih.HookSA,
			Name:            ih.HookNAME,
			Stop:            ih.HookSTOP,
			WaitThread:      ih.HookWT,
		},
		FakeVID: ih.FakeVID,
		FakePID: ih.FakePID,
	}
}

// Run resolves the hook policy and decodes the four slots. It returns
// hook.ErrDisabled, and nothing else, when [Options] Disable is set. db may
// be nil when no game database is available. Slots are decoded
// concurrently; each writes only its own entry.
func Run(ctx context.Context, f *config.File, exe string, db gamesdb.Lookup, log *slog.Logger) (*Result, error) {
	if f.Options.Disable {
		log.Info("disabled by configuration", "ini", f.Path)
		return nil, hook.ErrDisabled
	}

	var dbMask hook.Mask
	if db != nil && exe != "" {
		m, err := db.HookMask(exe)
		if err != nil {
			log.Warn("game database lookup failed", "exe", exe, "err", err)
		} else {
			dbMask = m
		}
	}

	hooks, err := hook.Resolve(HookInputs(f, dbMask))
	if err != nil {
		return nil, err
	}
	res := &Result{
		Exe:     exe,
		Options: f.Options,
		Hooks:   hooks,
	}
	log.Info("hooks resolved", "mask", hooks.Mask.String(), "source", string(hooks.Source), "enabled", hooks.Enabled)
	if vid, pid, ok := hooks.FakeIDs(); ok {
		log.Info("spoofing device identity", "vid", fmt.Sprintf("0x%04X", vid), "pid", fmt.Sprintf("0x%04X", pid))
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range res.Slots {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Slots[i] = mapping.Decode(i, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range res.Slots {
		log.Debug("slot decoded", "slot", s.Slot+1, "state", s.State.String(), "section", s.Section)
		if s.State != mapping.Enabled {
			continue
		}
		if s.Mapping.PovModeMixed() {
			w := fmt.Sprintf("PAD%d: D-pad mixes button and degree bindings; button-index consumers will misread it", s.Slot+1)
			res.Warnings = append(res.Warnings, w)
			log.Warn(w)
		}
		if pov, ok := s.Mapping.DpadSource(); ok {
			for _, p := range s.Mapping.Povs {
				if p.IsSet() {
					w := fmt.Sprintf("PAD%d: D-pad POV %d overrides the per-direction D-pad bindings", s.Slot+1, pov+1)
					res.Warnings = append(res.Warnings, w)
					log.Warn(w)
					break
				}
			}
		}
	}
	return res, nil
}
