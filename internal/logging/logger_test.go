package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestNameToLevelRoundTrip(t *testing.T) {
	for _, name := range []string{"disabled", "error", "warn", "info", "debug"} {
		level, ok := NameToLevel(name)
		if !ok {
			t.Fatalf("level %q not recognized", name)
		}
		if level.String() != name {
			t.Errorf("level %q stringified as %q", name, level.String())
		}
	}
	if _, ok := NameToLevel("verbose"); ok {
		t.Error("unknown level accepted")
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.Debugf("debug %d", 1)
	logger.Infof("info %d", 2)
	logger.Warn(errors.New("careful"))
	logger.Error(errors.New("broken"))

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("lines below warn level were written: %q", out)
	}
	if !strings.Contains(out, "Warning: careful") {
		t.Errorf("warning missing: %q", out)
	}
	if !strings.Contains(out, "Error: broken") {
		t.Errorf("error missing: %q", out)
	}
}

func TestSubloggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).Sublogger("http").Sublogger("upload")

	logger.Infof("saved %s", "a.txt")

	if !strings.Contains(buf.String(), "[http.upload] saved a.txt") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	var logger *Logger
	logger.Infof("ignored")
	logger.Print("ignored")
	logger.Error(errors.New("ignored"))
	if logger.Sublogger("x") != nil {
		t.Error("sublogger of nil logger is not nil")
	}
	if logger.Level() != LevelDisabled {
		t.Error("nil logger reports an enabled level")
	}
}
