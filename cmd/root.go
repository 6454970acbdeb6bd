package cmd

import (
	"fmt"
	"github.com/ValentinKolb/wlconn/cmd/connect"
	"github.com/ValentinKolb/wlconn/cmd/listen"
	"github.com/ValentinKolb/wlconn/cmd/probe"
	"github.com/ValentinKolb/wlconn/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "wlconn",
		Short: "Wayland display connection bootstrap",
		Long: fmt.Sprintf(`wlconn (v%s)

Locates and opens the connection of a Wayland client to its compositor,
the same way a client library does: an inherited WAYLAND_SOCKET descriptor,
or WAYLAND_DISPLAY (default wayland-0) below XDG_RUNTIME_DIR.

Flags can also be set as WLCONN_<FLAG> environment variables or in .env files.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of wlconn",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wlconn v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(connect.ConnectCmd)
	RootCmd.AddCommand(connect.ExecCmd)
	RootCmd.AddCommand(connect.EnvCmd)
	RootCmd.AddCommand(probe.ProbeCmd)
	RootCmd.AddCommand(listen.ListenCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("Log level (debug, info, warn, error). WAYLAND_DEBUG forces debug"))
}

// setup binds the flags of the executed command and initializes logging
func setup(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return util.SetupLogging()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
