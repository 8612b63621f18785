package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/todolist"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options carries resolved configuration and I/O for a run.
type Options struct {
	Config *config.Config
	Logger *log.Logger
	Out    io.Writer
	Err    io.Writer

	// Slot overrides the slot derived from Config.
	Slot jsonstore.Slot
	// Interactive starts the TUI when no subcommand is given.
	Interactive bool
	// RunTUI replaces tui.Run, for tests.
	RunTUI func(*todolist.Store) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt = withDefaults(opt)

	if len(args) == 0 {
		if opt.Interactive {
			return doTUI(opt)
		}
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ls":
		return doList(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: tada add <text...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "edit":
		if len(a) < 2 {
			ui.Fail(opt.Err, "usage: tada edit <ref> <text...>")
			return 2
		}
		return doEdit(opt, a[0], strings.Join(a[1:], " "))

	case "rm":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: tada rm <ref>")
			return 2
		}
		return doRemove(opt, a[0])

	case "status":
		return doStatus(opt)

	case "tui":
		return doTUI(opt)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - a tiny local to-do list

Usage:
  tada [flags] <subcommand> [args]

Subcommands:
  add <text...>         Add a new item (text can be multiple words)
  ls                    List items
  edit <ref> <text...>  Replace the text of an item
  rm <ref>              Remove an item
  status                Show where the list is stored
  tui                   Interactive mode (default on a terminal)

<ref> is an id, a 1-based index or an id prefix as shown by ls.

Flags:
  -data-dir <dir>   -slot <name>   -blur commit|cancel
  -theme classic|neon|mono   -log-level <level>   -ephemeral

Examples:
  tada add "Buy milk"
  tada ls
  tada edit 1 "Buy oat milk"
  tada rm 1
`)
}

func withDefaults(opt Options) Options {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	if opt.RunTUI == nil {
		opt.RunTUI = tui.Run
	}
	return opt
}

func openStore(opt Options) *todolist.Store {
	return todolist.New(slotOf(opt),
		todolist.WithLogger(opt.Logger),
		todolist.WithBlurPolicy(opt.Config.BlurPolicy()),
	)
}

func slotOf(opt Options) jsonstore.Slot {
	if opt.Slot != nil {
		return opt.Slot
	}
	if opt.Config.Ephemeral {
		return jsonstore.NewMemorySlot(nil)
	}
	return jsonstore.NewFileSlot(opt.Config.DataDir, opt.Config.Slot)
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	store := openStore(opt)
	items := store.Items()
	t := ui.Current()

	header := fmt.Sprintf("%s  %s %d", t.Title.Render("Todos"), t.Accent.Render("Total"), len(items))
	lines := []string{header, ""}
	if len(items) == 0 {
		lines = append(lines, t.Muted.Render("no items"))
	}
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			t.Accent.Render(shortID(it.ID)),
			ui.Truncate(it.Text, 80)))
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
	ui.Panel(opt.Out, lines)
	return 0
}

func doAdd(opt Options, text string) int {
	store := openStore(opt)
	todo, ok := store.Add(text)
	if !ok {
		ui.Fail(opt.Err, "add: empty text")
		return 2
	}
	ui.OK(opt.Out, "added "+shortID(todo.ID))
	return 0
}

func doEdit(opt Options, ref, text string) int {
	store := openStore(opt)
	id, code := resolve(opt, store, ref)
	if code != 0 {
		return code
	}
	if _, ok := model.NormalizeText(text); !ok {
		ui.Fail(opt.Err, "edit: empty text, item left unchanged")
		return 2
	}
	store.StartEdit(id)
	store.UpdateEditBuffer(text)
	store.CommitEdit()
	ui.OK(opt.Out, "edited "+shortID(id))
	return 0
}

func doRemove(opt Options, ref string) int {
	store := openStore(opt)
	id, code := resolve(opt, store, ref)
	if code != 0 {
		return code
	}
	store.Delete(id)
	ui.OK(opt.Out, "removed "+shortID(id))
	return 0
}

func doStatus(opt Options) int {
	slot := slotOf(opt)
	opt.Slot = slot
	store := openStore(opt)
	t := ui.Current()
	location := "memory (ephemeral)"
	if fs, ok := slot.(*jsonstore.FileSlot); ok {
		location = fs.Path()
	}
	cfgFile := opt.Config.File
	if cfgFile == "" {
		cfgFile = "(none)"
	}
	health := t.Success.Render("ok")
	if err := store.LoadError(); err != nil {
		health = t.Error.Render("unreadable, treated as empty: " + err.Error())
	}
	lines := []string{
		t.Title.Render("Status"),
		"",
		fmt.Sprintf("%s %s", t.Muted.Render("slot:  "), location),
		fmt.Sprintf("%s %s", t.Muted.Render("health:"), health),
		fmt.Sprintf("%s %d", t.Muted.Render("items: "), store.Len()),
		fmt.Sprintf("%s %s", t.Muted.Render("blur:  "), store.BlurPolicy()),
		fmt.Sprintf("%s %s", t.Muted.Render("config:"), cfgFile),
	}
	ui.Panel(opt.Out, lines)
	return 0
}

func doTUI(opt Options) int {
	store := openStore(opt)
	if err := opt.RunTUI(store); err != nil {
		ui.Fail(opt.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

func resolve(opt Options, store *todolist.Store, ref string) (string, int) {
	id, err := store.Resolve(ref)
	if err != nil {
		ui.Fail(opt.Err, err.Error())
		if errors.Is(err, todolist.ErrNotFound) {
			fmt.Fprintln(opt.Err, ui.Current().Muted.Render("Hint: run `tada ls` to see valid references"))
		}
		return "", 2
	}
	return id, 0
}

// shortID is the id prefix shown to users; Resolve accepts it back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
