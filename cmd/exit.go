package cmd

import (
	"errors"
	"github.com/ValentinKolb/wlconn/cmd/connect"
	"github.com/ValentinKolb/wlconn/lib/display"
)

// exitCode maps an error to the process exit code. Child exit codes of
// "wlconn exec" are passed through; connect failures get one code per kind.
func exitCode(err error) int {
	var childErr *connect.ChildExitError
	if errors.As(err, &childErr) {
		return childErr.Code
	}

	switch display.KindOf(err) {
	case display.KindInvalidAdvertisedDescriptor:
		return 3
	case display.KindMissingOrInvalidRuntimeDirectory:
		return 4
	case display.KindPathTooLong:
		return 5
	case display.KindSocketCreationFailed, display.KindFlagConfigurationFailed:
		return 6
	case display.KindConnectFailed:
		return 7
	default:
		return 1
	}
}
