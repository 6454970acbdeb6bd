package connect

import (
	"context"
	"errors"
	"fmt"
	cmdUtil "github.com/ValentinKolb/wlconn/cmd/util"
	"github.com/ValentinKolb/wlconn/lib/display"
	"github.com/ValentinKolb/wlconn/lib/endpoint"
	"github.com/ValentinKolb/wlconn/lib/fd"
	"github.com/cenkalti/backoff/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"time"
)

var (
	ConnectCmd = &cobra.Command{
		Use:   "connect",
		Short: "Connect to the display once and report the result",
		Long: `Connect to the Wayland display the way a client would, print the descriptor and the
credentials of the compositor process, and close the connection again.

With --wait, refused or missing sockets are retried with exponential backoff until the
compositor accepts or the duration elapses. Configuration errors are never retried.`,
		Args: cobra.NoArgs,
		RunE: runConnect,
	}
)

func init() {
	cmdUtil.SetupDisplayFlags(ConnectCmd)

	key := "wait"
	ConnectCmd.Flags().Duration(key, 0, cmdUtil.WrapString("How long to keep retrying while the compositor refuses connections (0 = single attempt)"))
}

func runConnect(cmd *cobra.Command, _ []string) error {
	conf := cmdUtil.LoadDisplayConfig()
	name := cmdUtil.DisplayName()

	conn, err := Dial(cmd.Context(), display.NewConnector(conf), name, viper.GetDuration("wait"))
	if err != nil {
		return err
	}
	defer conn.Close()

	target := "inherited " + display.EnvSocket
	if !conf.HasSocket {
		target, _ = display.EndpointPath(conf, name)
	}

	fmt.Printf("connected to %s on fd %d\n", target, conn.Int())
	if cred, err := endpoint.PeerCredentials(conn.Int()); err == nil {
		fmt.Printf("compositor %s\n", cred)
	} else {
		cmdUtil.Logger.Debugf("no peer credentials: %v", err)
	}
	return nil
}

// Dial connects with c. If wait is positive, ConnectFailed errors are retried
// with exponential backoff until wait has elapsed; every other error is
// returned immediately.
func Dial(ctx context.Context, c *display.Connector, name string, wait time.Duration) (*fd.FD, error) {
	if wait <= 0 {
		return c.Connect(name)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.InitialInterval = 50 * time.Millisecond
	backoffCfg.MaxInterval = time.Second

	return backoff.Retry(ctx, func() (*fd.FD, error) {
		conn, err := c.Connect(name)
		if err != nil && !errors.Is(err, display.ErrConnectFailed) {
			return nil, backoff.Permanent(err)
		}
		return conn, err
	},
		backoff.WithBackOff(backoffCfg),
		backoff.WithMaxElapsedTime(wait),
		backoff.WithNotify(func(err error, next time.Duration) {
			cmdUtil.Logger.Infof("%v, retrying in %s", err, next)
		}),
	)
}
