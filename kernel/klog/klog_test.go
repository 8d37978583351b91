package klog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogfWritesLineToSink(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(nil)

	Logf("task %s pri=%d", "alpha", 10)

	got := buf.String()
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("Logf() wrote %q, want a trailing newline", got)
	}
	if !strings.Contains(got, "task alpha pri=10") {
		t.Fatalf("Logf() wrote %q, want it to contain the formatted message", got)
	}
}

func TestSetSinkNilDiscards(t *testing.T) {
	SetSink(nil)
	defer SetSink(nil)
	Logf("this must not panic even with no sink installed")
}

func TestDefaultSinkIsNeverNil(t *testing.T) {
	if defaultSink() == nil {
		t.Fatalf("defaultSink() = nil, want a non-nil io.Writer (hal console or io.Discard)")
	}
}
