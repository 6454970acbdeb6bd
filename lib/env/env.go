package env

import (
	"math"
	"os"
	"strconv"
	"strings"
)

// Environment is the subset of process environment operations the bootstrap
// code needs.
type Environment interface {
	// Lookup returns the value of the variable and whether it is set
	Lookup(key string) (string, bool)
	// Unset removes the variable
	Unset(key string) error
}

// --------------------------------------------------------------------------
// Process environment
// --------------------------------------------------------------------------

type osEnv struct{}

func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnv) Unset(key string) error {
	return os.Unsetenv(key)
}

// OS returns the environment of the running process.
// It is not synchronized against concurrent modification.
func OS() Environment {
	return osEnv{}
}

// --------------------------------------------------------------------------
// In-memory environment
// --------------------------------------------------------------------------

// Map is an Environment backed by a plain map. A nil Map is empty and
// ignores Unset.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Map) Unset(key string) error {
	delete(m, key)
	return nil
}

// Snapshot copies the process environment into a Map. Changes to the
// snapshot do not affect the process.
func Snapshot() Map {
	m := make(Map)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// Get returns the value of key, or "" if it is unset.
func Get(e Environment, key string) string {
	v, _ := e.Lookup(key)
	return v
}

// Int parses the variable as an integer. The base is taken from the prefix
// (0x for hex, a leading 0 for octal, decimal otherwise), the same way strtol
// with base 0 does. Go-only literal syntax (digit separators, 0b and 0o) is
// rejected. It reports false if the variable is unset, empty, not an integer or does
// not fit in 32 bits.
func Int(e Environment, key string) (int, bool) {
	raw, ok := e.Lookup(key)
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || !cLiteral(raw) {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

// cLiteral reports whether raw avoids the integer syntax strconv accepts but
// strtol does not.
func cLiteral(raw string) bool {
	if strings.ContainsRune(raw, '_') {
		return false
	}
	digits := strings.ToLower(strings.TrimLeft(raw, "+-"))
	return !strings.HasPrefix(digits, "0b") && !strings.HasPrefix(digits, "0o")
}
