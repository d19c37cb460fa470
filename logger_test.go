package tileatlas

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// captureLog routes tileatlas logging into a buffer for the test.
func captureLog(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("tile", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs did not return a nopHandler")
	}
	if _, ok := h.WithGroup("atlas").(nopHandler); !ok {
		t.Error("WithGroup did not return a nopHandler")
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) left a nil logger")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestLogPageGrowth(t *testing.T) {
	buf := captureLog(t, slog.LevelDebug)

	a, _ := newTestAggregator(t)
	addSquare(t, a, 128)
	addSquare(t, a, 64)

	out := buf.String()
	for _, want := range []string{
		"tileatlas: page created",
		"tileatlas: page grown",
		"width=128 height=256",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestLogCopyFailure(t *testing.T) {
	buf := captureLog(t, slog.LevelWarn)

	a, p := newTestAggregator(t)
	addSquare(t, a, 128)
	p.failCopy = errors.New("copy lost")
	if _, err := a.AddTile(fakeImage{64, 64}, Pt(0, 0), Pt(1, 1)); err == nil {
		t.Fatal("AddTile succeeded with a failing copy")
	}

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "page copy failed") {
		t.Errorf("copy failure not logged as a warning:\n%s", out)
	}
	if !strings.Contains(out, "copy lost") {
		t.Errorf("log missing the provider error:\n%s", out)
	}
}

func TestLogRepackFailure(t *testing.T) {
	buf := captureLog(t, slog.LevelError)

	a, p := newTestAggregator(t)
	id := addSquare(t, a, 32)
	p.failCreate = errors.New("out of memory")
	if err := a.Repack(); err == nil {
		t.Fatal("Repack succeeded without a page")
	}

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "repack could not place tile") {
		t.Errorf("repack failure not logged as an error:\n%s", out)
	}
	if want := "tile=" + strconv.Itoa(int(id)); !strings.Contains(out, want) {
		t.Errorf("log missing %q:\n%s", want, out)
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("tileatlas: concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("tileatlas: page grown", "width", 256, "height", 256)
	}
}
