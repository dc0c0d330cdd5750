package gamesdb

import (
	"fmt"
	"sort"

	"gopkg.in/ini.v1"

	"github.com/synrais/padmap/pkg/config"
	"github.com/synrais/padmap/pkg/hook"
)

// IniDB reads x360ce.gdb directly: one section per executable, with the
// recommended mask under HookMask.
type IniDB struct {
	Path string
	file *ini.File
}

// OpenIni parses the game database file at path.
func OpenIni(path string) (*IniDB, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return nil, fmt.Errorf("open gamedb %s: %w", path, err)
	}
	return &IniDB{Path: path, file: f}, nil
}

// HookMask returns the recommended mask for exe, or 0 if it is not listed.
func (db *IniDB) HookMask(exe string) (hook.Mask, error) {
	sec, err := db.file.GetSection(ExeKey(exe))
	if err != nil || !sec.HasKey("HookMask") {
		return 0, nil
	}
	return ParseMask(sec.Key("HookMask").String()), nil
}

// Entries lists every section that carries a HookMask, sorted by name.
func (db *IniDB) Entries() []Entry {
	var out []Entry
	for _, sec := range db.file.Sections() {
		if sec.Name() == ini.DefaultSection || !sec.HasKey("HookMask") {
			continue
		}
		out = append(out, Entry{
			Exe:      sec.Name(),
			HookMask: ParseMask(sec.Key("HookMask").String()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Exe < out[j].Exe })
	return out
}

// ParseMask reads a mask with the same rules as HookMask in x360ce.ini.
func ParseMask(s string) hook.Mask {
	return hook.Mask(config.ParseDword(s))
}

// FormatMask renders a mask the way x360ce.gdb writes it.
func FormatMask(m hook.Mask) string {
	return fmt.Sprintf("0x%08X", uint32(m))
}
