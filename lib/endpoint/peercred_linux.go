//go:build linux

package endpoint

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// PeerCredentials returns the credentials of the process on the other end of
// a connected unix socket.
func PeerCredentials(n int) (*Credentials, error) {
	cred, err := unix.GetsockoptUcred(n, unix.SOL_SOCKET, unix.SO_PEERCRED)
	if err != nil {
		return nil, fmt.Errorf("SO_PEERCRED on fd %d: %w", n, err)
	}
	return &Credentials{PID: int(cred.Pid), UID: int(cred.Uid), GID: int(cred.Gid)}, nil
}

// ConnCredentials is PeerCredentials for a net.UnixConn
func ConnCredentials(conn *net.UnixConn) (*Credentials, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}

	var cred *Credentials
	var credErr error
	if err := raw.Control(func(n uintptr) {
		cred, credErr = PeerCredentials(int(n))
	}); err != nil {
		return nil, err
	}
	return cred, credErr
}
