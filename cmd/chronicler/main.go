// Package main is the entry point for Chronicler, the shell command and
// directory history recorder that uses Sweep as its picker (spec.md §1,
// §6 "Chronicler interface to the core").
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/sweep/internal/app"
	"github.com/dshills/sweep/internal/engine"
	"github.com/dshills/sweep/internal/history"
	"github.com/dshills/sweep/internal/picker"
	"github.com/dshills/sweep/internal/tty"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	switch args[0] {
	case "update":
		return runUpdate(args[1:])
	case "pick":
		return runPick(args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	case "--version":
		fmt.Printf("chronicler %s (commit %s, built %s)\n", version, commit, date)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "chronicler: unknown subcommand %q\n\n", args[0])
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Chronicler - shell command and directory history")
	fmt.Fprintln(os.Stderr, "Usage: chronicler [update|pick] [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  update   Read \\x0C-delimited key/value records from stdin and append them")
	fmt.Fprintln(os.Stderr, "  pick     Launch the picker over recorded history")
}

// runUpdate implements `chronicler update`: the shell hook pipes one block
// of key=value lines per invocation, terminated by a form-feed sentinel
// line (§6).
func runUpdate(args []string) int {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	dbPath := fs.String("db", "", "Path to the history log (defaults to "+history.DefaultPath()+")")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: chronicler update [--db PATH]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := app.GetLogger().WithComponent("chronicler-update")

	path := *dbPath
	if path == "" {
		path = history.DefaultPath()
	}
	store, err := history.Open(path, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chronicler: %v\n", err)
		return 1
	}

	records, err := history.ParseUpdate(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chronicler: update: %v\n", err)
		return 1
	}
	for _, rec := range records {
		if err := store.Append(rec); err != nil {
			fmt.Fprintf(os.Stderr, "chronicler: update: %v\n", err)
			return 1
		}
	}
	return 0
}

// runPick implements `chronicler pick`: load history, rank it with Sweep's
// picker, and print the selected command (or directory) to stdout so the
// calling shell function can `eval`/`cd` it.
func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	dbPath := fs.String("db", "", "Path to the history log (defaults to "+history.DefaultPath()+")")
	limit := fs.Int("limit", 0, "Most recent N records to load (0 = all)")
	query := fs.String("query", "", "Initial query string")
	keepOrder := fs.Bool("keep-order", false, "Preserve most-recent-first order")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: chronicler pick [--db PATH] [--limit N] [--query S] [--keep-order]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := app.GetLogger().WithComponent("chronicler-pick")

	path := *dbPath
	if path == "" {
		path = history.DefaultPath()
	}
	store, err := history.Open(path, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chronicler: %v\n", err)
		return 1
	}

	recs, err := store.Recent(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chronicler: %v\n", err)
		return 1
	}
	items := history.ToItems(recs)

	p := picker.New(picker.Config{
		Prompt:    "history> ",
		Query:     *query,
		KeepOrder: *keepOrder,
		Scorer:    "fuzzy",
	}, log)
	defer p.Close()
	p.ItemsExtend(items)

	src, err := tty.Open(tty.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "chronicler: %v\n", err)
		return 1
	}

	eng := engine.New(engine.Config{
		Picker:  p,
		Logger:  log,
		TTY:     src,
		Version: version,
	})
	result := eng.Run()

	if result.Selected == nil {
		return 1
	}
	rec, ok := result.Selected.Payload.(history.Record)
	if !ok {
		for _, f := range result.Selected.Target {
			fmt.Println(f.Text)
		}
		return 0
	}
	if rec.Kind == history.KindDirectory {
		fmt.Println(rec.Directory)
	} else {
		fmt.Println(rec.Command)
	}
	return 0
}
