package connect

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ValentinKolb/wlconn/lib/display"
	"github.com/ValentinKolb/wlconn/lib/endpoint"
)

func runtimeDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "wl")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestDialWaitsForCompositor(t *testing.T) {
	dir := runtimeDir(t)
	path := filepath.Join(dir, "wayland-0")

	// the compositor comes up after the first attempts have failed
	started := make(chan *endpoint.Server, 1)
	go func() {
		time.Sleep(200 * time.Millisecond)
		s, err := endpoint.Listen(path)
		if err != nil {
			started <- nil
			return
		}
		go s.Serve(func(conn *net.UnixConn) { io.Copy(io.Discard, conn) })
		started <- s
	}()

	conn, err := Dial(context.Background(), display.NewConnector(display.Config{RuntimeDir: dir}), "", 10*time.Second)
	if s := <-started; s != nil {
		defer s.Close()
	} else {
		t.Fatal("failed to start compositor")
	}
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	conn.Close()
}

func TestDialDoesNotRetryConfigurationErrors(t *testing.T) {
	start := time.Now()
	_, err := Dial(context.Background(), display.NewConnector(display.Config{}), "wayland-0", 10*time.Second)
	if !errors.Is(err, display.ErrMissingOrInvalidRuntimeDirectory) {
		t.Fatalf("error = %v, want missing runtime directory", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("configuration errors should not be retried")
	}
}

func TestDialGivesUp(t *testing.T) {
	_, err := Dial(context.Background(), display.NewConnector(display.Config{RuntimeDir: runtimeDir(t)}), "", 300*time.Millisecond)
	if !errors.Is(err, display.ErrConnectFailed) {
		t.Fatalf("error = %v, want connect failed", err)
	}
}

func TestDialSingleAttempt(t *testing.T) {
	_, err := Dial(context.Background(), display.NewConnector(display.Config{RuntimeDir: runtimeDir(t)}), "", 0)
	if !errors.Is(err, display.ErrConnectFailed) {
		t.Fatalf("error = %v, want connect failed", err)
	}
}

func TestChildEnv(t *testing.T) {
	in := []string{
		"PATH=/usr/bin",
		"WAYLAND_SOCKET=9",
		"WAYLAND_DISPLAY=wayland-1",
		"WAYLAND_SOCKETS=unrelated",
	}

	out := childEnv(in)

	want := map[string]bool{
		"PATH=/usr/bin":             true,
		"WAYLAND_DISPLAY=wayland-1": true,
		"WAYLAND_SOCKETS=unrelated": true,
		"WAYLAND_SOCKET=3":          true,
	}
	if len(out) != len(want) {
		t.Fatalf("childEnv() = %v", out)
	}
	for _, kv := range out {
		if !want[kv] {
			t.Errorf("unexpected entry %q", kv)
		}
	}
}

func TestChildExitError(t *testing.T) {
	var err error = &ChildExitError{Code: 42}
	var exitErr *ChildExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 42 {
		t.Fatalf("errors.As failed for %v", err)
	}
	if err.Error() != "command exited with code 42" {
		t.Errorf("Error() = %q", err.Error())
	}
}
