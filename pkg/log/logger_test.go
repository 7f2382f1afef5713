package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(&bytes.Buffer{})

	logger := New("test")

	SetLevel(Notice)
	logger.Debugf("hidden %d", 1)
	logger.Noticef("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug message should be filtered at notice level: %q", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "[test]") {
		t.Errorf("Expected module-tagged notice message, got %q", out)
	}

	SetLevel(Debug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("Debug message should be emitted at debug level")
	}
	SetLevel(Notice)
}
