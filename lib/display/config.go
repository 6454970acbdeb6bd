package display

import (
	"fmt"
	"github.com/ValentinKolb/wlconn/lib/env"
	"strconv"
	"strings"
)

// Environment variables consulted when connecting to a compositor
const (
	EnvSocket     = "WAYLAND_SOCKET"
	EnvDisplay    = "WAYLAND_DISPLAY"
	EnvRuntimeDir = "XDG_RUNTIME_DIR"
	EnvDebug      = "WAYLAND_DEBUG"

	// DefaultDisplay is used when neither an explicit name nor WAYLAND_DISPLAY is given
	DefaultDisplay = "wayland-0"
)

// Config is the environment state a connect attempt depends on.
type Config struct {
	// RuntimeDir is the base directory for relative display names
	RuntimeDir string
	// Display is the display name or an absolute socket path
	Display string
	// Socket is a pre-opened descriptor, valid if HasSocket is set
	Socket    int
	HasSocket bool
	// Debug is set when WAYLAND_DEBUG is non-empty
	Debug bool
}

// ConfigFromEnv reads the configuration from e. A WAYLAND_SOCKET value that
// parses as an integer is removed from e, so the descriptor is adopted at
// most once and child processes do not inherit the variable.
func ConfigFromEnv(e env.Environment) Config {
	conf := Config{
		RuntimeDir: env.Get(e, EnvRuntimeDir),
		Display:    env.Get(e, EnvDisplay),
		Debug:      env.Get(e, EnvDebug) != "",
	}

	if n, ok := env.Int(e, EnvSocket); ok {
		conf.Socket = n
		conf.HasSocket = true
		if err := e.Unset(EnvSocket); err != nil {
			Logger.Warningf("failed to unset %s: %v", EnvSocket, err)
		}
	}

	return conf
}

// String returns a formatted string representation of the configuration
func (c Config) String() string {
	var sb strings.Builder

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-16s: %s\n", name, value))
	}
	orUnset := func(s string) string {
		if s == "" {
			return "(unset)"
		}
		return s
	}

	sb.WriteString("DISPLAY CONNECTION\n")
	if c.HasSocket {
		addField(EnvSocket, strconv.Itoa(c.Socket))
	} else {
		addField(EnvSocket, "(unset)")
	}
	addField(EnvDisplay, orUnset(c.Display))
	addField(EnvRuntimeDir, orUnset(c.RuntimeDir))
	addField(EnvDebug, strconv.FormatBool(c.Debug))

	return sb.String()
}
