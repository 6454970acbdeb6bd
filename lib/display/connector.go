package display

import (
	"errors"
	"github.com/ValentinKolb/wlconn/lib/env"
	"github.com/ValentinKolb/wlconn/lib/fd"
	"github.com/lni/dragonboat/v4/logger"
	"golang.org/x/sys/unix"
	"time"
)

var Logger = logger.GetLogger("display")

// Connector opens connections to the compositor described by a Config.
// It holds no state besides the configuration; every Connect call is an
// independent attempt.
type Connector struct {
	config Config
	sys    sysCalls
}

// NewConnector creates a connector for the given configuration
func NewConnector(conf Config) *Connector {
	return &Connector{config: conf, sys: unixSysCalls{}}
}

// Connect reads a fresh configuration from e and connects to the display.
// See Connector.Connect.
func Connect(e env.Environment, name string) (*fd.FD, error) {
	return NewConnector(ConfigFromEnv(e)).Connect(name)
}

// Connect returns a connected, close-on-exec socket to the compositor.
//
// A pre-opened descriptor in the configuration is adopted as is and name is
// ignored. Otherwise name (or the configured display, or "wayland-0") is
// resolved to a socket path, either verbatim when it is absolute or relative
// to the runtime directory, and a new socket is connected to it.
//
// Connect blocks until the kernel accepts or rejects the connection. It never
// retries. On error no descriptor is left open, except that an advertised
// descriptor which cannot be queried at all is not touched.
func (c *Connector) Connect(name string) (conn *fd.FD, err error) {
	start := time.Now()
	source := sourcePath
	if c.config.HasSocket {
		source = sourceAdopted
	}
	defer func() {
		observe(source, start, err)
	}()

	if c.config.HasSocket {
		return c.adopt(c.config.Socket)
	}
	return c.dial(name)
}

// --------------------------------------------------------------------------
// Pre-opened descriptor
// --------------------------------------------------------------------------

func (c *Connector) adopt(n int) (*fd.FD, error) {
	flags, err := c.sys.FcntlInt(uintptr(n), unix.F_GETFD, 0)
	if errors.Is(err, unix.EBADF) {
		return nil, newError(KindInvalidAdvertisedDescriptor, "", n, err)
	}

	guard := fd.Own(n)
	defer guard.Close()

	if err != nil {
		return nil, newError(KindFlagConfigurationFailed, "", n, err)
	}
	if _, err := c.sys.FcntlInt(uintptr(n), unix.F_SETFD, flags|unix.FD_CLOEXEC); err != nil {
		return nil, newError(KindFlagConfigurationFailed, "", n, err)
	}

	Logger.Debugf("adopted pre-opened socket fd %d from %s", n, EnvSocket)
	return fd.Own(guard.Release()), nil
}

// --------------------------------------------------------------------------
// Path based endpoint
// --------------------------------------------------------------------------

func (c *Connector) dial(name string) (*fd.FD, error) {
	ep, err := resolveTarget(c.config, name)
	if err != nil {
		return nil, err
	}

	sock, err := c.socket()
	if err != nil {
		return nil, err
	}
	defer sock.Close()

	addr, err := ep.address()
	if err != nil {
		return nil, err
	}

	if err := c.sys.Connect(sock.Int(), addr.sockaddr()); err != nil {
		return nil, newError(KindConnectFailed, addr.String(), sock.Int(), err)
	}

	Logger.Debugf("connected to %s on fd %d", addr, sock.Int())
	return fd.Own(sock.Release()), nil
}

// socket creates a close-on-exec unix stream socket. Kernels that reject
// SOCK_CLOEXEC with EINVAL get the flag set in a second step.
func (c *Connector) socket() (*fd.FD, error) {
	n, err := c.sys.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err == nil {
		return fd.Own(n), nil
	}
	if !errors.Is(err, unix.EINVAL) {
		return nil, newError(KindSocketCreationFailed, "", -1, err)
	}

	Logger.Debugf("SOCK_CLOEXEC rejected, setting close-on-exec separately")
	n, err = c.sys.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, newError(KindSocketCreationFailed, "", -1, err)
	}

	sock := fd.Own(n)
	if err := c.setCloseOnExec(n); err != nil {
		sock.Close()
		return nil, err
	}
	return sock, nil
}

func (c *Connector) setCloseOnExec(n int) error {
	flags, err := c.sys.FcntlInt(uintptr(n), unix.F_GETFD, 0)
	if err != nil {
		return newError(KindFlagConfigurationFailed, "", n, err)
	}
	if _, err := c.sys.FcntlInt(uintptr(n), unix.F_SETFD, flags|unix.FD_CLOEXEC); err != nil {
		return newError(KindFlagConfigurationFailed, "", n, err)
	}
	return nil
}
