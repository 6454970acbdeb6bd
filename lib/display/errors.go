package display

import (
	"errors"
	"fmt"
)

// Kind classifies connect failures.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidAdvertisedDescriptor: WAYLAND_SOCKET names a closed descriptor
	KindInvalidAdvertisedDescriptor
	// KindMissingOrInvalidRuntimeDirectory: relative display name without an
	// absolute XDG_RUNTIME_DIR
	KindMissingOrInvalidRuntimeDirectory
	// KindPathTooLong: the endpoint path does not fit sockaddr_un
	KindPathTooLong
	// KindSocketCreationFailed: socket(2) failed for a reason other than an
	// unsupported SOCK_CLOEXEC
	KindSocketCreationFailed
	// KindFlagConfigurationFailed: reading or setting FD_CLOEXEC failed
	KindFlagConfigurationFailed
	// KindConnectFailed: connect(2) to the endpoint path failed
	KindConnectFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAdvertisedDescriptor:
		return "invalid_advertised_descriptor"
	case KindMissingOrInvalidRuntimeDirectory:
		return "missing_or_invalid_runtime_directory"
	case KindPathTooLong:
		return "path_too_long"
	case KindSocketCreationFailed:
		return "socket_creation_failed"
	case KindFlagConfigurationFailed:
		return "flag_configuration_failed"
	case KindConnectFailed:
		return "connect_failed"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidAdvertisedDescriptor      = &Error{Kind: KindInvalidAdvertisedDescriptor}
	ErrMissingOrInvalidRuntimeDirectory = &Error{Kind: KindMissingOrInvalidRuntimeDirectory}
	ErrPathTooLong                      = &Error{Kind: KindPathTooLong}
	ErrSocketCreationFailed             = &Error{Kind: KindSocketCreationFailed}
	ErrFlagConfigurationFailed          = &Error{Kind: KindFlagConfigurationFailed}
	ErrConnectFailed                    = &Error{Kind: KindConnectFailed}
)

// Error is returned by every failing connect attempt.
type Error struct {
	Kind Kind
	// Path is the endpoint path or the offending runtime directory, if any
	Path string
	// FD is the descriptor involved, or -1
	FD int
	// Err is the underlying system error, if any
	Err error
}

func newError(kind Kind, path string, fd int, err error) *Error {
	return &Error{Kind: kind, Path: path, FD: fd, Err: err}
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindInvalidAdvertisedDescriptor:
		msg = fmt.Sprintf("advertised socket descriptor %d is not valid", e.FD)
	case KindMissingOrInvalidRuntimeDirectory:
		if e.Path == "" {
			msg = "XDG_RUNTIME_DIR is not set"
		} else {
			msg = fmt.Sprintf("XDG_RUNTIME_DIR %q is not an absolute path", e.Path)
		}
	case KindPathTooLong:
		msg = fmt.Sprintf("socket path %q exceeds %d bytes", e.Path, pathCapacity-1)
	case KindSocketCreationFailed:
		msg = "failed to create socket"
	case KindFlagConfigurationFailed:
		msg = fmt.Sprintf("failed to set close-on-exec on descriptor %d", e.FD)
	case KindConnectFailed:
		msg = fmt.Sprintf("failed to connect to %s", e.Path)
	default:
		msg = "display connect failed"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && t.Path == "" && t.FD == 0
}

// KindOf returns the kind of a connect error, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
