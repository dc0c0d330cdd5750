package config

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Section is a read-only view of one INI section. Lookups never fail: a
// missing key yields the supplied default (or ok=false for String).
type Section interface {
	// String returns the trimmed value and whether it is present and non-empty.
	String(key string) (string, bool)
	Bool(key string, def bool) bool
	Int(key string, def int64) int64
	// Dword reads an unsigned 32-bit value; 0x-prefixed hex is accepted.
	Dword(key string, def uint32) uint32
}

// Source hands out sections by name. Unknown sections read as empty.
type Source interface {
	Section(name string) Section
}

// Atoi parses the leading integer of s the way C's atoi does: leading
// whitespace and an optional sign are accepted, parsing stops at the first
// non-digit, and text without a numeric prefix yields 0.
func Atoi(s string) int64 {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			n = math.MaxInt64
			break
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}

// ParseDword parses decimal, 0x-prefixed hex or 0-prefixed octal. Anything
// else falls back to Atoi truncated to 32 bits, so "12abc" is 12.
func ParseDword(s string) uint32 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return uint32(v)
	}
	return uint32(Atoi(s))
}

// parseBool accepts the usual true/false words and falls back to a non-zero
// integer test, so "2" counts as enabled.
func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	}
	return Atoi(s) != 0
}

// --- ini.v1 backed ---

type iniSection struct {
	sec *ini.Section
}

func (s iniSection) value(key string) (string, bool) {
	if s.sec == nil || !s.sec.HasKey(key) {
		return "", false
	}
	return strings.TrimSpace(s.sec.Key(key).String()), true
}

func (s iniSection) String(key string) (string, bool) {
	v, ok := s.value(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s iniSection) Bool(key string, def bool) bool {
	v, ok := s.value(key)
	if !ok {
		return def
	}
	return parseBool(v, def)
}

func (s iniSection) Int(key string, def int64) int64 {
	v, ok := s.value(key)
	if !ok || v == "" {
		return def
	}
	return Atoi(v)
}

func (s iniSection) Dword(key string, def uint32) uint32 {
	v, ok := s.value(key)
	if !ok || v == "" {
		return def
	}
	return ParseDword(v)
}

// --- map backed ---

// MapSource is an in-memory Source keyed by section then key. Names are
// matched case-insensitively, like the INI loader.
type MapSource map[string]map[string]string

// NewMapSource copies sections into a MapSource with normalized names.
func NewMapSource(sections map[string]map[string]string) MapSource {
	m := make(MapSource, len(sections))
	for name, keys := range sections {
		dst := make(map[string]string, len(keys))
		for k, v := range keys {
			dst[strings.ToLower(k)] = v
		}
		m[strings.ToLower(name)] = dst
	}
	return m
}

func (m MapSource) Section(name string) Section {
	return mapSection(m[strings.ToLower(name)])
}

type mapSection map[string]string

func (s mapSection) value(key string) (string, bool) {
	v, ok := s[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(stripComment(v)), true
}

func (s mapSection) String(key string) (string, bool) {
	v, ok := s.value(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s mapSection) Bool(key string, def bool) bool {
	v, ok := s.value(key)
	if !ok {
		return def
	}
	return parseBool(v, def)
}

func (s mapSection) Int(key string, def int64) int64 {
	v, ok := s.value(key)
	if !ok || v == "" {
		return def
	}
	return Atoi(v)
}

func (s mapSection) Dword(key string, def uint32) uint32 {
	v, ok := s.value(key)
	if !ok || v == "" {
		return def
	}
	return ParseDword(v)
}

// stripComment drops an inline ';' or '#' comment.
func stripComment(s string) string {
	if i := strings.IndexAny(s, ";#"); i >= 0 {
		return s[:i]
	}
	return s
}
