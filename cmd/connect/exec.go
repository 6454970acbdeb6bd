package connect

import (
	"errors"
	"fmt"
	cmdUtil "github.com/ValentinKolb/wlconn/cmd/util"
	"github.com/ValentinKolb/wlconn/lib/display"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// childSocketFD is the descriptor number of the connection in the child.
// ExtraFiles start at 3.
const childSocketFD = 3

var (
	ExecCmd = &cobra.Command{
		Use:   "exec [flags] -- COMMAND [ARGS...]",
		Short: "Run a command with an already connected display socket",
		Long: `Connect to the display and run COMMAND with the connection passed as descriptor 3
and WAYLAND_SOCKET=3, so the client adopts the socket instead of opening its own.
The exit code of COMMAND is returned.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExec,
	}
)

// ChildExitError carries a non-zero exit code of the executed command
type ChildExitError struct {
	Code int
}

func (e *ChildExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

func init() {
	cmdUtil.SetupDisplayFlags(ExecCmd)

	key := "wait"
	ExecCmd.Flags().Duration(key, 0, cmdUtil.WrapString("How long to keep retrying while the compositor refuses connections (0 = single attempt)"))
}

func runExec(cmd *cobra.Command, args []string) error {
	conf := cmdUtil.LoadDisplayConfig()

	conn, err := Dial(cmd.Context(), display.NewConnector(conf), cmdUtil.DisplayName(), viper.GetDuration("wait"))
	if err != nil {
		return err
	}
	file := conn.File("wayland-socket")
	defer file.Close()

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	child.ExtraFiles = []*os.File{file}
	child.Env = childEnv(os.Environ())

	cmdUtil.Logger.Debugf("running %s with display socket on fd %d", args[0], childSocketFD)
	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ChildExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return nil
}

// childEnv returns environ with WAYLAND_SOCKET pointing at the passed
// connection. WAYLAND_DISPLAY is kept so children of the child can still
// find the compositor.
func childEnv(environ []string) []string {
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if strings.HasPrefix(kv, display.EnvSocket+"=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, display.EnvSocket+"="+strconv.Itoa(childSocketFD))
}
