package display

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sys/unix"
)

func TestErrorKindsAreDistinguishable(t *testing.T) {
	sentinels := map[Kind]error{
		KindInvalidAdvertisedDescriptor:      ErrInvalidAdvertisedDescriptor,
		KindMissingOrInvalidRuntimeDirectory: ErrMissingOrInvalidRuntimeDirectory,
		KindPathTooLong:                      ErrPathTooLong,
		KindSocketCreationFailed:             ErrSocketCreationFailed,
		KindFlagConfigurationFailed:          ErrFlagConfigurationFailed,
		KindConnectFailed:                    ErrConnectFailed,
	}

	for kind := range sentinels {
		err := fmt.Errorf("wrapped: %w", newError(kind, "/run/user/1/wayland-0", 3, unix.ECONNREFUSED))

		if KindOf(err) != kind {
			t.Errorf("KindOf = %v, want %v", KindOf(err), kind)
		}
		for other, sentinel := range sentinels {
			if got := errors.Is(err, sentinel); got != (other == kind) {
				t.Errorf("errors.Is(%v, %v) = %t", kind, other, got)
			}
		}
		if !errors.Is(err, unix.ECONNREFUSED) {
			t.Errorf("%v should unwrap to the system error", kind)
		}
		if kind.String() == "unknown" {
			t.Errorf("kind %d has no name", kind)
		}
	}

	if KindOf(errors.New("other")) != KindUnknown {
		t.Error("KindOf should return KindUnknown for foreign errors")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{newError(KindInvalidAdvertisedDescriptor, "", 7, unix.EBADF), "descriptor 7"},
		{newError(KindMissingOrInvalidRuntimeDirectory, "", -1, nil), "XDG_RUNTIME_DIR is not set"},
		{newError(KindMissingOrInvalidRuntimeDirectory, "tmp", -1, nil), `"tmp" is not an absolute path`},
		{newError(KindPathTooLong, "/x", -1, nil), `"/x" exceeds`},
		{newError(KindConnectFailed, "/run/wayland-0", 4, unix.ENOENT), "failed to connect to /run/wayland-0: " + unix.ENOENT.Error()},
	}

	for _, tt := range tests {
		if !strings.Contains(tt.err.Error(), tt.want) {
			t.Errorf("%v: message %q does not contain %q", tt.err.Kind, tt.err.Error(), tt.want)
		}
	}
}

func TestConnectUpdatesMetrics(t *testing.T) {
	c, _ := newTestConnector(Config{RuntimeDir: "/" + strings.Repeat("m", pathCapacity)})
	if _, err := c.Connect(""); err == nil {
		t.Fatal("Connect should fail")
	}

	var buf bytes.Buffer
	metrics.WritePrometheus(&buf, false)
	out := buf.String()

	for _, want := range []string{
		`wlconn_connect_total{source="path"}`,
		`wlconn_connect_errors_total{kind="path_too_long"}`,
		`wlconn_connect_duration_seconds_bucket`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output misses %s", want)
		}
	}
}
