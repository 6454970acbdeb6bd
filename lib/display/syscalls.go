package display

import "golang.org/x/sys/unix"

// sysCalls is the set of system calls a connect attempt makes.
type sysCalls interface {
	Socket(domain, typ, proto int) (int, error)
	FcntlInt(fd uintptr, cmd, arg int) (int, error)
	Connect(fd int, sa unix.Sockaddr) error
}

type unixSysCalls struct{}

func (unixSysCalls) Socket(domain, typ, proto int) (int, error) {
	return unix.Socket(domain, typ, proto)
}

func (unixSysCalls) FcntlInt(fd uintptr, cmd, arg int) (int, error) {
	return unix.FcntlInt(fd, cmd, arg)
}

func (unixSysCalls) Connect(fd int, sa unix.Sockaddr) error {
	return unix.Connect(fd, sa)
}
