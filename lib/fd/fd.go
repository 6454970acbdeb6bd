// Package fd implements an exclusively-owned operating system descriptor.
//
// An FD is closed exactly once. Code that acquires a descriptor keeps the FD
// as a guard with a deferred Close and calls Release on the success path,
// which hands the raw descriptor to the caller and turns the deferred Close
// into a no-op.
package fd

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// FD owns a single descriptor.
type FD struct {
	n     int
	owned bool
}

// Own takes ownership of the descriptor n.
func Own(n int) *FD {
	return &FD{n: n, owned: true}
}

// Int returns the descriptor number, or -1 once it is no longer owned.
func (f *FD) Int() int {
	if f == nil || !f.owned {
		return -1
	}
	return f.n
}

// Close closes the descriptor if it is still owned.
func (f *FD) Close() error {
	if f == nil || !f.owned {
		return nil
	}
	f.owned = false
	return unix.Close(f.n)
}

// Release gives up ownership without closing and returns the descriptor.
// It returns -1 if the descriptor was already released or closed.
func (f *FD) Release() int {
	if f == nil || !f.owned {
		return -1
	}
	f.owned = false
	return f.n
}

// File converts the descriptor into an *os.File which then owns it.
func (f *FD) File(name string) *os.File {
	n := f.Release()
	if n < 0 {
		return nil
	}
	return os.NewFile(uintptr(n), name)
}

// Conn converts a connected socket into a net.Conn. The FD is consumed in
// every case.
func (f *FD) Conn() (net.Conn, error) {
	file := f.File("wayland-connection")
	if file == nil {
		return nil, fmt.Errorf("descriptor already released")
	}
	defer file.Close()

	conn, err := net.FileConn(file)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap descriptor %d: %w", file.Fd(), err)
	}
	return conn, nil
}

func (f *FD) String() string {
	if f == nil || !f.owned {
		return "fd(released)"
	}
	return fmt.Sprintf("fd(%d)", f.n)
}

// CloseOnExec reports whether FD_CLOEXEC is set on n.
func CloseOnExec(n int) (bool, error) {
	flags, err := unix.FcntlInt(uintptr(n), unix.F_GETFD, 0)
	if err != nil {
		return false, err
	}
	return flags&unix.FD_CLOEXEC != 0, nil
}
