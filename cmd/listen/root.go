package listen

import (
	"fmt"
	cmdUtil "github.com/ValentinKolb/wlconn/cmd/util"
	"github.com/ValentinKolb/wlconn/lib/display"
	"github.com/ValentinKolb/wlconn/lib/endpoint"
	"github.com/ValentinKolb/wlconn/lib/env"
	"github.com/spf13/cobra"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
)

var (
	ListenCmd = &cobra.Command{
		Use:   "listen [NAME|PATH]",
		Short: "Listen on a display socket as a stand-in compositor",
		Long: `Create a socket where a compositor would, log every client that connects and discard
whatever it sends. NAME is resolved like a display name (below XDG_RUNTIME_DIR unless it
is an absolute path); it defaults to WAYLAND_DISPLAY or wayland-0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}
)

func run(_ *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	conf := display.ConfigFromEnv(env.Snapshot())
	path, err := display.EndpointPath(conf, name)
	if err != nil {
		return err
	}

	server, err := endpoint.Listen(path)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cmdUtil.Logger.Infof("shutting down, %d clients connected", server.Active())
		server.Close()
	}()

	fmt.Printf("listening on %s\n", path)
	return server.Serve(handleClient)
}

func handleClient(conn *net.UnixConn) {
	if cred, err := endpoint.ConnCredentials(conn); err == nil {
		cmdUtil.Logger.Infof("client connected: %s", cred)
	} else {
		cmdUtil.Logger.Infof("client connected")
	}

	n, err := io.Copy(io.Discard, conn)
	if err != nil {
		cmdUtil.Logger.Debugf("read error: %v", err)
	}
	cmdUtil.Logger.Infof("client disconnected after %d bytes", n)
}
