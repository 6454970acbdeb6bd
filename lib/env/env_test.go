package env

import (
	"os"
	"testing"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name  string
		env   Map
		want  int
		found bool
	}{
		{"unset", Map{}, 0, false},
		{"empty", Map{"FD": ""}, 0, false},
		{"blank", Map{"FD": "   "}, 0, false},
		{"decimal", Map{"FD": "7"}, 7, true},
		{"surrounding space", Map{"FD": " 12 "}, 12, true},
		{"hex", Map{"FD": "0x1f"}, 31, true},
		{"octal", Map{"FD": "010"}, 8, true},
		{"negative", Map{"FD": "-1"}, -1, true},
		{"trailing garbage", Map{"FD": "3abc"}, 0, false},
		{"word", Map{"FD": "three"}, 0, false},
		{"underscore", Map{"FD": "1_0"}, 0, false},
		{"binary", Map{"FD": "0b11"}, 0, false},
		{"octal prefix", Map{"FD": "0o7"}, 0, false},
		{"negative binary", Map{"FD": "-0B1"}, 0, false},
		{"too large", Map{"FD": "4294967296"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Int(tt.env, "FD")
			if found != tt.found || got != tt.want {
				t.Errorf("Int() = (%d, %t), want (%d, %t)", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestMap(t *testing.T) {
	m := Map{"A": "1"}

	if v, ok := m.Lookup("A"); !ok || v != "1" {
		t.Fatalf("Lookup(A) = (%q, %t)", v, ok)
	}
	if err := m.Unset("A"); err != nil {
		t.Fatalf("Unset(A) failed: %v", err)
	}
	if _, ok := m.Lookup("A"); ok {
		t.Error("A should be unset")
	}

	var empty Map
	if _, ok := empty.Lookup("A"); ok {
		t.Error("nil map should be empty")
	}
	if err := empty.Unset("A"); err != nil {
		t.Errorf("Unset on nil map failed: %v", err)
	}
}

func TestOS(t *testing.T) {
	t.Setenv("WLCONN_ENV_TEST", "value")

	e := OS()
	if got := Get(e, "WLCONN_ENV_TEST"); got != "value" {
		t.Fatalf("Get() = %q, want %q", got, "value")
	}
	if err := e.Unset("WLCONN_ENV_TEST"); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	if _, ok := os.LookupEnv("WLCONN_ENV_TEST"); ok {
		t.Error("variable should be removed from the process environment")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Setenv("WLCONN_SNAPSHOT_TEST", "a=b")

	snap := Snapshot()
	if got := Get(snap, "WLCONN_SNAPSHOT_TEST"); got != "a=b" {
		t.Fatalf("snapshot value = %q, want %q", got, "a=b")
	}

	snap.Unset("WLCONN_SNAPSHOT_TEST")
	if os.Getenv("WLCONN_SNAPSHOT_TEST") != "a=b" {
		t.Error("unsetting in the snapshot changed the process environment")
	}
}
