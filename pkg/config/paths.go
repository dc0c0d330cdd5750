package config

const UserConfigEnv = "PADMAP_CONFIG"
const GameDbEnv = "PADMAP_GDB"
const GameStoreEnv = "PADMAP_STORE"

const IniFileName = "x360ce.ini"
const GameDbFileName = "x360ce.gdb"
const GameStoreFileName = "x360ce.gdb.db"
const LogFileName = "x360ce.log"

// Section names of the main INI.
const (
	OptionsSection   = "Options"
	InputHookSection = "InputHook"
	MappingsSection  = "Mappings"
)
