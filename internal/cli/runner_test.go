package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/todolist"
	"github.com/idilsaglam/tada/internal/ui"
)

type harness struct {
	opt      Options
	out, err *bytes.Buffer
	dir      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })
	dir := t.TempDir()
	h := &harness{out: &bytes.Buffer{}, err: &bytes.Buffer{}, dir: dir}
	h.opt = Options{
		Config: &config.Config{DataDir: dir, Slot: "todos", Blur: "commit", Theme: "mono", LogLevel: "warn"},
		Out:    h.out,
		Err:    h.err,
	}
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return Run(args, h.opt)
}

func (h *harness) items(t *testing.T) []model.Todo {
	t.Helper()
	items, err := jsonstore.Load(jsonstore.NewFileSlot(h.dir, "todos"))
	if err != nil && !errors.Is(err, jsonstore.ErrEmpty) {
		t.Fatalf("load: %v", err)
	}
	return items
}

func TestAddListEditRemove(t *testing.T) {
	h := newHarness(t)

	if code := h.run("add", "buy", "milk"); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.err)
	}
	if code := h.run("add", "call", "mom"); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.err)
	}
	items := h.items(t)
	if len(items) != 2 || items[0].Text != "buy milk" || items[1].Text != "call mom" {
		t.Fatalf("items = %v", items)
	}

	if code := h.run("ls"); code != 0 {
		t.Fatalf("ls exit %d", code)
	}
	out := h.out.String()
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "call mom") || !strings.Contains(out, items[0].ID[:8]) {
		t.Errorf("ls output missing items:\n%s", out)
	}

	if code := h.run("edit", "1", "buy", "oat", "milk"); code != 0 {
		t.Fatalf("edit exit %d: %s", code, h.err)
	}
	if got := h.items(t); got[0].Text != "buy oat milk" || got[0].ID != items[0].ID {
		t.Fatalf("after edit: %v", got)
	}

	if code := h.run("rm", items[1].ID[:8]); code != 0 {
		t.Fatalf("rm exit %d: %s", code, h.err)
	}
	if got := h.items(t); len(got) != 1 || got[0].ID != items[0].ID {
		t.Fatalf("after rm: %v", got)
	}
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	tests := [][]string{
		{"add"},
		{"add", "   "},
		{"edit", "1"},
		{"rm"},
		{"rm", "1", "2"},
		{"frobnicate"},
		{},
	}
	for _, args := range tests {
		if code := h.run(args...); code != 2 {
			t.Errorf("%v: exit %d, want 2", args, code)
		}
	}
	if len(h.items(t)) != 0 {
		t.Error("usage errors must not mutate the list")
	}
}

func TestRefErrors(t *testing.T) {
	h := newHarness(t)
	h.run("add", "one")

	if code := h.run("rm", "5"); code != 2 {
		t.Errorf("rm 5: exit %d, want 2", code)
	}
	if !strings.Contains(h.err.String(), "Hint") {
		t.Errorf("missing hint: %q", h.err.String())
	}
	if code := h.run("edit", "1", "  "); code != 2 {
		t.Errorf("blank edit: exit %d, want 2", code)
	}
	if got := h.items(t); len(got) != 1 || got[0].Text != "one" {
		t.Errorf("items = %v", got)
	}
}

func TestMalformedSlotListsEmpty(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(filepath.Join(h.dir, "todos.json"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := h.run("ls"); code != 0 {
		t.Fatalf("ls exit %d", code)
	}
	if !strings.Contains(h.out.String(), "no items") {
		t.Errorf("ls output:\n%s", h.out)
	}

	if code := h.run("status"); code != 0 {
		t.Fatalf("status exit %d", code)
	}
	if !strings.Contains(h.out.String(), "unreadable") {
		t.Errorf("status should report the bad slot:\n%s", h.out)
	}

	if code := h.run("add", "fresh start"); code != 0 {
		t.Fatalf("add exit %d", code)
	}
	if got := h.items(t); len(got) != 1 || got[0].Text != "fresh start" {
		t.Errorf("items = %v", got)
	}
}

func TestStatus(t *testing.T) {
	h := newHarness(t)
	h.run("add", "one")
	if code := h.run("status"); code != 0 {
		t.Fatalf("status exit %d", code)
	}
	out := h.out.String()
	for _, want := range []string{filepath.Join(h.dir, "todos.json"), "ok", "commit", "(none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
}

func TestEphemeralDoesNotTouchDisk(t *testing.T) {
	h := newHarness(t)
	h.opt.Config.Ephemeral = true
	if code := h.run("add", "temp"); code != 0 {
		t.Fatalf("add exit %d", code)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "todos.json")); !os.IsNotExist(err) {
		t.Errorf("ephemeral run wrote to disk: %v", err)
	}
}

func TestTUIDispatch(t *testing.T) {
	h := newHarness(t)
	var got *todolist.Store
	h.opt.RunTUI = func(s *todolist.Store) error {
		got = s
		return nil
	}
	h.opt.Interactive = true
	h.opt.Config.Blur = "cancel"

	if code := h.run(); code != 0 {
		t.Fatalf("interactive run exit %d", code)
	}
	if got == nil || got.BlurPolicy() != todolist.BlurCancel {
		t.Fatalf("TUI not started with configured store: %v", got)
	}

	h.opt.RunTUI = func(*todolist.Store) error { return errors.New("no tty") }
	if code := h.run("tui"); code != 1 {
		t.Errorf("tui failure exit %d, want 1", code)
	}
}

func TestHelp(t *testing.T) {
	h := newHarness(t)
	if code := h.run("help"); code != 0 {
		t.Fatalf("help exit %d", code)
	}
	if !strings.Contains(h.out.String(), "Subcommands:") {
		t.Errorf("help output:\n%s", h.out)
	}
}
