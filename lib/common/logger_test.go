package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

func TestParseLogLevel(t *testing.T) {
	valid := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"error":   logger.ERROR,
	}
	for in, want := range valid {
		got, err := ParseLogLevel(in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("ParseLogLevel should reject unknown levels")
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("display", &buf)
	l.SetLevel(logger.WARNING)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	l.Warningf("shown %d", 3)
	l.Errorf("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("lines below the level were written: %q", out)
	}
	if !strings.Contains(out, "WARN  | display  | shown 3") {
		t.Errorf("warning line missing or malformed: %q", out)
	}
	if !strings.Contains(out, "ERROR | display  | shown 4") {
		t.Errorf("error line missing or malformed: %q", out)
	}
}
