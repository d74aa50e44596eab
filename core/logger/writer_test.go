package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestAsyncWriterDeliversAndFlushes(t *testing.T) {
	var buf bytes.Buffer
	w := newAsyncWriter([]io.Writer{&buf}, 0)

	if err := w.Write([]byte("first\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "first") {
		t.Errorf("sink = %q, want record delivered", got)
	}
}

func TestAsyncWriterWriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w := newAsyncWriter([]io.Writer{&buf}, 0)

	if err := w.Write([]byte("before\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A record emitted during shutdown is dropped, never a panic.
	if err := w.Write([]byte("after\n")); err != nil {
		t.Fatalf("Write after Close: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush after Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "before") {
		t.Errorf("sink = %q, want pre-close record", got)
	}
	if strings.Contains(got, "after") {
		t.Errorf("sink = %q, post-close record must be dropped", got)
	}
}

func TestAsyncWriterEmptyRecordIsNoop(t *testing.T) {
	var buf bytes.Buffer
	w := newAsyncWriter([]io.Writer{&buf}, 0)
	defer w.Close()

	if err := w.Write(nil); err != nil {
		t.Fatalf("Write(nil): %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("sink = %q, want empty", buf.String())
	}
}
