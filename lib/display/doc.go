// Package display implements the connection bootstrap of a Wayland client:
// deciding from environment state which compositor endpoint to use and
// returning a connected, close-on-exec unix stream socket for it.
//
// The procedure of a single attempt is:
//
//  1. If WAYLAND_SOCKET holds a descriptor number, the descriptor is adopted.
//     A closed descriptor is an error; there is no fallback to the path based
//     endpoint. The variable is removed from the environment when read.
//
//  2. Otherwise the display name is the explicit name, WAYLAND_DISPLAY or
//     "wayland-0". Absolute names are used verbatim, relative names are joined
//     with XDG_RUNTIME_DIR, which must then be an absolute path.
//
//  3. A new AF_UNIX/SOCK_STREAM socket is created with SOCK_CLOEXEC (falling
//     back to fcntl on kernels that reject the flag) and connected.
//
// Key Components:
//
//   - Config: the environment state an attempt depends on, read once by
//     ConfigFromEnv so the connector itself can be driven by any configuration.
//
//   - Connector: performs attempts and hands out owned descriptors (fd.FD).
//
//   - Error: the failure of an attempt, classified by Kind. Every kind has a
//     sentinel for errors.Is.
//
// The connector never retries and never exits the process; callers decide
// both.
package display
