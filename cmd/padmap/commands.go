package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/synrais/padmap/pkg/assets"
	"github.com/synrais/padmap/pkg/config"
	"github.com/synrais/padmap/pkg/gamesdb"
	"github.com/synrais/padmap/pkg/input"
	"github.com/synrais/padmap/pkg/logging"
	"github.com/synrais/padmap/pkg/resolve"
)

func runInit(opts *options) error {
	for _, f := range []struct {
		path string
		data []byte
	}{
		{opts.iniPath, assets.DefaultIni},
		{opts.gdbPath, assets.DefaultGameDb},
	} {
		created, err := assets.WriteIfMissing(f.path, f.data)
		if err != nil {
			return err
		}
		if created {
			fmt.Println("[MAIN] Generated default", f.path)
		} else {
			fmt.Println("[MAIN] Found", f.path)
		}
	}
	return nil
}

// openLookup prefers the bbolt store and falls back to reading x360ce.gdb,
// also when the store is locked by a running import. Both missing is fine:
// the game database is optional.
func openLookup(opts *options) (gamesdb.Lookup, func(), error) {
	if gamesdb.Exists(opts.storePath) {
		store, err := gamesdb.OpenReadOnly(opts.storePath)
		if err == nil {
			return store, func() { store.Close() }, nil
		}
		if !errors.Is(err, gamesdb.ErrLocked) {
			return nil, nil, err
		}
		fmt.Fprintln(os.Stderr, "[GDB] Store busy, reading", opts.gdbPath, "instead")
	}
	if _, err := os.Stat(opts.gdbPath); err == nil {
		db, err := gamesdb.OpenIni(opts.gdbPath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {}, nil
	}
	return nil, func() {}, nil
}

func newLogger(opts *options, cfg *config.File) (*slog.Logger, io.Closer) {
	s := logging.FromOptions(cfg.Options, filepath.Dir(opts.iniPath))
	if opts.verbose {
		s.Console = true
		s.Level = slog.LevelDebug
	}
	return logging.New(s)
}

func resolveOnce(ctx context.Context, opts *options) (*resolve.Result, error) {
	cfg, err := config.Load(opts.iniPath)
	if err != nil {
		return nil, err
	}
	log, closer := newLogger(opts, cfg)
	defer closer.Close()

	lookup, done, err := openLookup(opts)
	if err != nil {
		return nil, err
	}
	defer done()

	return resolve.Run(ctx, cfg, opts.exe, lookup, log)
}

func runDump(ctx context.Context, opts *options, w io.Writer) error {
	res, err := resolveOnce(ctx, opts)
	if err != nil {
		return err
	}
	return printResult(w, opts.format, res)
}

func runWatch(ctx context.Context, opts *options) error {
	if err := runDump(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "[WATCH]", err)
	}
	fmt.Println("[WATCH] Watching", opts.iniPath)
	return config.Watch(ctx, opts.iniPath, func() {
		fmt.Println("[WATCH] Change detected, resolving again")
		if err := runDump(ctx, opts, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "[WATCH]", err)
		}
	})
}

func printResult(w io.Writer, format string, res *resolve.Result) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "spew":
		_, err := fmt.Fprint(w, spew.Sdump(res))
		return err
	case "text", "":
		fmt.Fprintf(w, "hooks: %s (source %s, enabled %t)\n", res.Hooks.Mask, res.Hooks.Source, res.Hooks.Enabled)
		if vid, pid, ok := res.Hooks.FakeIDs(); ok {
			fmt.Fprintf(w, "fake VID/PID: 0x%04X/0x%04X\n", vid, pid)
		}
		for _, s := range res.Slots {
			for _, line := range input.Describe(s) {
				fmt.Fprintln(w, line)
			}
		}
		for _, warn := range res.Warnings {
			fmt.Fprintln(w, "warning:", warn)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func runImport(opts *options, src string) error {
	store, err := gamesdb.Open(opts.storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	var n int
	if strings.EqualFold(filepath.Ext(src), ".csv") {
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err = store.ImportCSV(f)
		if err != nil {
			return err
		}
	} else {
		db, err := gamesdb.OpenIni(src)
		if err != nil {
			return err
		}
		n, err = store.ImportIni(db)
		if err != nil {
			return err
		}
	}
	fmt.Printf("[GDB] Imported %d entries from %s into %s\n", n, src, opts.storePath)

	sources, err := store.Sources()
	if err != nil {
		return err
	}
	for _, s := range sources {
		fmt.Println("[GDB] Source:", s)
	}
	return nil
}

func runDelete(opts *options, exe string) error {
	store, err := gamesdb.Open(opts.storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Get(exe); errors.Is(err, gamesdb.ErrNotFound) {
		fmt.Println("[GDB] Not listed:", gamesdb.ExeKey(exe))
		return nil
	}
	if err := store.Delete(exe); err != nil {
		return err
	}
	fmt.Println("[GDB] Deleted", gamesdb.ExeKey(exe))
	return nil
}

func runExport(opts *options, dst string) error {
	store, err := gamesdb.OpenReadOnly(opts.storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if dst == "" {
		return store.ExportCSV(os.Stdout)
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := store.ExportCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// findEntries matches query as a substring, or as a prefix when it ends in '*'.
func findEntries(opts *options, query string) ([]gamesdb.Entry, error) {
	prefix, isPrefix := strings.CutSuffix(strings.ToLower(query), "*")

	if gamesdb.Exists(opts.storePath) {
		store, err := gamesdb.OpenReadOnly(opts.storePath)
		if err == nil {
			defer store.Close()
			if isPrefix {
				return store.SearchPrefix(prefix)
			}
			return store.SearchPartial(query)
		}
		if !errors.Is(err, gamesdb.ErrLocked) {
			return nil, err
		}
	}

	db, err := gamesdb.OpenIni(opts.gdbPath)
	if err != nil {
		return nil, err
	}
	var entries []gamesdb.Entry
	for _, e := range db.Entries() {
		if isPrefix && strings.HasPrefix(e.Exe, prefix) || !isPrefix && strings.Contains(e.Exe, prefix) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func runLookup(opts *options, w io.Writer, query string) error {
	entries, err := findEntries(opts, query)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-32s %s (%s)\n", e.Exe, gamesdb.FormatMask(e.HookMask), e.HookMask)
	}
	return nil
}
