package connect

import (
	"fmt"
	cmdUtil "github.com/ValentinKolb/wlconn/cmd/util"
	"github.com/ValentinKolb/wlconn/lib/display"
	"github.com/ValentinKolb/wlconn/lib/env"
	"github.com/spf13/cobra"
)

var (
	EnvCmd = &cobra.Command{
		Use:   "env",
		Short: "Show the display configuration without connecting",
		Args:  cobra.NoArgs,
		RunE:  runEnv,
	}
)

func init() {
	cmdUtil.SetupDisplayFlags(EnvCmd)
}

func runEnv(_ *cobra.Command, _ []string) error {
	// read from a snapshot so WAYLAND_SOCKET stays in place
	conf := display.ConfigFromEnv(env.Snapshot())

	fmt.Print(conf.String())
	fmt.Println()

	if conf.HasSocket {
		fmt.Printf("endpoint: inherited descriptor %d\n", conf.Socket)
		return nil
	}

	path, err := display.EndpointPath(conf, cmdUtil.DisplayName())
	if err != nil {
		return err
	}
	fmt.Printf("endpoint: %s\n", path)
	return nil
}
