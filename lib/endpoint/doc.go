// Package endpoint implements the compositor side of a display socket: a
// listener on a unix socket path that hands accepted connections to a
// handler. It is used as a stand-in compositor by the tests and by the
// "wlconn listen" command.
//
// Key Components:
//
//   - Server: listens on a path, removes stale socket files, tracks live
//     connections and closes them on shutdown
//
//   - PeerCredentials: SO_PEERCRED of a connected socket (Linux only)
package endpoint
