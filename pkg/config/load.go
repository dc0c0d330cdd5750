package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// File is a loaded x360ce.ini. Options and InputHook are read eagerly
// through the same Section rules as every other section.
type File struct {
	Path      string
	Options   Options
	InputHook InputHook

	ini *ini.File
}

// Windows profile lookups are case-insensitive, and values may carry a
// trailing ';' or '#' comment.
var loadOptions = ini.LoadOptions{
	Insensitive:      true,
	AllowBooleanKeys: true,
}

// IniPath returns the INI location: $PADMAP_CONFIG if set, otherwise
// x360ce.ini next to the executable.
func IniPath() (string, error) {
	return pathFor(UserConfigEnv, IniFileName)
}

// GameDbPath returns $PADMAP_GDB or x360ce.gdb next to the executable.
func GameDbPath() (string, error) {
	return pathFor(GameDbEnv, GameDbFileName)
}

// GameStorePath returns $PADMAP_STORE or x360ce.gdb.db next to the executable.
func GameStorePath() (string, error) {
	return pathFor(GameStoreEnv, GameStoreFileName)
}

func pathFor(env, name string) (string, error) {
	if p := os.Getenv(env); p != "" {
		return p, nil
	}
	exePath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exePath), name), nil
}

// Load parses the INI at path.
func Load(path string) (*File, error) {
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	f := newFile(cfg)
	f.Path = path
	return f, nil
}

// LoadBytes parses INI content held in memory.
func LoadBytes(data []byte) (*File, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parse ini: %w", err)
	}
	return newFile(cfg), nil
}

func newFile(cfg *ini.File) *File {
	f := &File{ini: cfg}
	f.Options = ReadOptions(f.Section(OptionsSection))
	f.InputHook = ReadInputHook(f.Section(InputHookSection))
	return f
}

// Section returns a read-only view of the named section. A missing section
// reads as empty.
func (f *File) Section(name string) Section {
	sec, err := f.ini.GetSection(name)
	if err != nil {
		return iniSection{}
	}
	return iniSection{sec: sec}
}
