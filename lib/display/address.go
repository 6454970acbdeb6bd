package display

import (
	"strings"

	"golang.org/x/sys/unix"
)

// pathCapacity is the size of sun_path, including the terminating NUL.
const pathCapacity = len(unix.RawSockaddrUnix{}.Path)

// address is a sun_path buffer and the number of bytes in use.
type address struct {
	path [pathCapacity]byte
	n    int
}

// assign concatenates parts into the buffer. It fails without modifying the
// buffer if the result would leave no room for the terminator.
func (a *address) assign(parts ...string) bool {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	if total >= pathCapacity {
		return false
	}

	a.n = 0
	for _, p := range parts {
		a.n += copy(a.path[a.n:], p)
	}
	a.path[a.n] = 0
	return true
}

func (a *address) String() string {
	return string(a.path[:a.n])
}

// sockaddr returns the address for connect(2). Only the occupied prefix of
// the path is passed on, so the address length is the family plus the path
// and its terminator rather than the full structure.
func (a *address) sockaddr() *unix.SockaddrUnix {
	return &unix.SockaddrUnix{Name: a.String()}
}

// target is a resolved, not yet validated, path-based endpoint.
type target struct {
	name       string
	runtimeDir string
	absolute   bool
}

// resolveTarget picks the display name and checks the runtime directory.
func resolveTarget(conf Config, name string) (target, error) {
	if name == "" {
		name = conf.Display
	}
	if name == "" {
		name = DefaultDisplay
	}

	ep := target{name: name, absolute: strings.HasPrefix(name, "/")}
	if ep.absolute {
		return ep, nil
	}

	if conf.RuntimeDir == "" || !strings.HasPrefix(conf.RuntimeDir, "/") {
		Logger.Warningf("%s is invalid or not set (%q), cannot connect to display %q", EnvRuntimeDir, conf.RuntimeDir, name)
		return ep, newError(KindMissingOrInvalidRuntimeDirectory, conf.RuntimeDir, -1, nil)
	}
	ep.runtimeDir = conf.RuntimeDir
	return ep, nil
}

// address builds the sun_path for the endpoint.
func (ep target) address() (*address, error) {
	addr := &address{}

	var ok bool
	var path string
	if ep.absolute {
		path = ep.name
		ok = addr.assign(ep.name)
	} else {
		path = ep.runtimeDir + "/" + ep.name
		ok = addr.assign(ep.runtimeDir, "/", ep.name)
	}

	if !ok {
		Logger.Warningf("socket path %q plus terminator exceeds %d bytes", path, pathCapacity)
		return nil, newError(KindPathTooLong, path, -1, nil)
	}
	return addr, nil
}

// EndpointPath returns the socket path a connect attempt with the given name
// would use, without creating a socket. The pre-opened descriptor in conf is
// ignored.
func EndpointPath(conf Config, name string) (string, error) {
	ep, err := resolveTarget(conf, name)
	if err != nil {
		return "", err
	}
	addr, err := ep.address()
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}
