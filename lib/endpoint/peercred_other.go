//go:build !linux

package endpoint

import (
	"errors"
	"net"
)

var errNoPeerCred = errors.New("peer credentials are only supported on linux")

func PeerCredentials(n int) (*Credentials, error) {
	return nil, errNoPeerCred
}

func ConnCredentials(conn *net.UnixConn) (*Credentials, error) {
	return nil, errNoPeerCred
}
