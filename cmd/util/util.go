package util

import (
	"github.com/ValentinKolb/wlconn/lib/common"
	"github.com/ValentinKolb/wlconn/lib/display"
	"github.com/ValentinKolb/wlconn/lib/env"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
	"sync"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

var Logger = logger.GetLogger("cmd")

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupDisplayFlags adds the flags shared by all commands that connect to a display
func SetupDisplayFlags(cmd *cobra.Command) {
	key := "display"
	cmd.Flags().String(key, "", WrapString("Display name or absolute socket path. Overrides WAYLAND_DISPLAY"))
}

// InitConfig loads .env files and enables WLCONN_* environment variables
// for all flags
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("wlconn")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

var initLoggersOnce sync.Once

// SetupLogging initializes the loggers from the log-level flag. WAYLAND_DEBUG
// raises the level to debug.
func SetupLogging() error {
	level := viper.GetString("log-level")
	if env.Get(env.OS(), display.EnvDebug) != "" {
		level = "debug"
	}

	var err error
	initLoggersOnce.Do(func() {
		err = common.InitLoggers(level)
	})
	return err
}

// LoadDisplayConfig reads the display configuration from the process
// environment. This consumes WAYLAND_SOCKET.
func LoadDisplayConfig() display.Config {
	return display.ConfigFromEnv(env.OS())
}

// DisplayName returns the explicit display name from the flags, if any
func DisplayName() string {
	return viper.GetString("display")
}
