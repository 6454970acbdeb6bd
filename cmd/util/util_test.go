package util

import (
	"strings"
	"testing"
)

func TestWrapString(t *testing.T) {
	text := "Display name or absolute socket path. Overrides WAYLAND_DISPLAY and is used for every connect attempt made by the command"

	wrapped := WrapString(text)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > Wrap {
			t.Errorf("line exceeds %d characters: %q", Wrap, line)
		}
	}
	if strings.Join(strings.Fields(wrapped), " ") != text {
		t.Errorf("wrapping changed the words: %q", wrapped)
	}

	if WrapString("") != "" {
		t.Error("empty text should stay empty")
	}

	long := strings.Repeat("x", Wrap+10)
	if WrapString(long) != long {
		t.Error("a single long word should not be split")
	}
}
