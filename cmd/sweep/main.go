// Package main is the entry point for the sweep picker binary.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/dshills/sweep/internal/app"
	"github.com/dshills/sweep/internal/config"
	"github.com/dshills/sweep/internal/engine"
	"github.com/dshills/sweep/internal/haystack"
	"github.com/dshills/sweep/internal/picker"
	"github.com/dshills/sweep/internal/rpc"
	"github.com/dshills/sweep/internal/stdin"
	"github.com/dshills/sweep/internal/tty"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// options holds the resolved CLI surface of SPEC_FULL.md §6.
type options struct {
	height     int
	prompt     string
	query      string
	theme      string
	nth        string
	delim      string
	keepOrder  bool
	scorer     string
	rpcMode    bool
	ttyPath    string
	noMatch    string
	title      string
	altScreen  bool
	jsonMode   bool
	ioSocket   string
	input      string
	border     bool
	preview    bool
	logPath    string
	configPath string
}

func run() int {
	opts, showVersion, showHelp := parseFlags()

	if showHelp {
		flag.Usage()
		return 0
	}
	if showVersion {
		fmt.Printf("sweep %s (commit %s, built %s)\n", version, commit, date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweep: config: %v\n", err)
		return 1
	}
	applyFlagOverrides(&cfg, opts)

	log := newLogger(opts, cfg)
	app.SetLogger(log)

	nth, err := stdin.ParseNth(opts.nth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweep: %v\n", err)
		return 1
	}

	p := picker.New(picker.Config{
		Prompt:    cfg.UI.Prompt,
		Query:     opts.query,
		KeepOrder: cfg.Ranker.KeepOrder,
		Scorer:    cfg.Ranker.Scorer,
		Preview:   opts.preview,
	}, log)
	defer p.Close()

	engCfg := engine.Config{
		Picker:  p,
		Logger:  log,
		Version: version,
	}

	var peer *rpc.Peer
	if opts.rpcMode || opts.ioSocket != "" {
		peer, err = openPeer(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sweep: rpc: %v\n", err)
			return 1
		}
		defer peer.Close()
		d := rpc.NewDispatcher(peer, log)
		rpc.RegisterPickerMethods(d, p)
		engCfg.RPC = d
	}

	// The TTY is needed whenever there is a human driving keystrokes. In
	// pure stdio-RPC mode with no --tty, there is no controlling terminal
	// to multiplex (the peer supplies all input/query edits instead).
	needTTY := opts.ttyPath != "" || !(opts.rpcMode && opts.ioSocket == "")
	if needTTY {
		src, err := tty.Open(tty.Options{Path: opts.ttyPath, AltScreen: opts.altScreen})
		if err != nil {
			fmt.Fprintf(os.Stderr, "sweep: %v\n", err)
			return 1
		}
		engCfg.TTY = src
	}

	stdinClosed := make(chan struct{})
	engCfg.StdinClosed = stdinClosed
	go feedCandidates(opts, nth, p, stdinClosed)

	eng := engine.New(engCfg)
	result := eng.Run()

	return report(opts, result)
}

// feedCandidates streams candidates from stdin or --input into p, closing
// done once the source reaches EOF (§4.6, §6 stdin formats).
func feedCandidates(opts options, nth stdin.NthSpec, p *picker.Picker, done chan<- struct{}) {
	defer close(done)

	if opts.rpcMode && opts.ioSocket == "" && opts.input == "" {
		// stdio is occupied by the RPC peer stream (§6 "stdout carries the
		// RPC peer stream"); candidates arrive only via items_extend.
		return
	}

	var src *os.File
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			app.GetLogger().WithComponent("stdin").Error("failed to open --input: %v", err)
			return
		}
		defer f.Close()
		src = f
	} else {
		src = os.Stdin
	}

	rd := stdin.NewReader(stdin.ReaderConfig{
		JSON:  opts.jsonMode,
		Delim: opts.delim,
		Nth:   nth,
	})
	_ = rd.Run(src, func(items []haystack.Item) {
		p.ItemsExtend(items)
	})
}

// openPeer constructs the RPC peer from --io-socket (a UNIX socket path or
// an already-open file descriptor number) or, absent that, stdio.
func openPeer(opts options) (*rpc.Peer, error) {
	if opts.ioSocket == "" {
		return rpc.NewPeer(os.Stdin, os.Stdout, nil, rpc.FramingLine), nil
	}
	if fd, err := strconv.Atoi(opts.ioSocket); err == nil {
		f := os.NewFile(uintptr(fd), "io-socket")
		return rpc.NewPeer(f, f, f, rpc.FramingLine), nil
	}
	ln, err := net.Listen("unix", opts.ioSocket)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", opts.ioSocket, err)
	}
	conn, err := ln.Accept()
	ln.Close()
	if err != nil {
		return nil, fmt.Errorf("accept %s: %w", opts.ioSocket, err)
	}
	return rpc.NewPeer(conn, conn, conn, rpc.FramingLine), nil
}

// report writes the selected item (or --no-match fallback) to stdout and
// returns the process exit code per §6.
func report(opts options, result engine.Result) int {
	if opts.rpcMode {
		// stdout already carried protocol frames; nothing further to print.
		if engine.IsExitClean(result.Err) {
			return 0
		}
		return exitCodeFor(result.Err)
	}

	if result.Selected != nil {
		printSelection(opts, *result.Selected)
		return 0
	}

	if errors.Is(result.Err, app.ErrTerminate) {
		return 0
	}

	switch opts.noMatch {
	case "input":
		fmt.Println(opts.query)
	case "nothing", "":
		// print nothing
	default:
		fmt.Println(opts.noMatch)
	}

	return exitCodeFor(result.Err)
}

func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, app.ErrQuit) || errors.Is(err, app.ErrNoCandidates) {
		return 1
	}
	return 2
}

func printSelection(opts options, item haystack.Item) {
	if opts.jsonMode {
		data, err := json.Marshal(rpc.ItemToWire(item))
		if err != nil {
			fmt.Fprintf(os.Stderr, "sweep: %v\n", err)
			return
		}
		fmt.Println(string(data))
		return
	}
	var text string
	for _, f := range item.Target {
		if text != "" {
			text += " "
		}
		text += f.Text
	}
	fmt.Println(text)
}

func newLogger(opts options, cfg config.Config) *app.Logger {
	if opts.rpcMode && opts.logPath == "" {
		return app.NullLogger
	}
	lcfg := app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Logging.Level),
		Prefix: "sweep",
	}
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			lcfg.Output = f
		}
	}
	return app.NewLogger(lcfg)
}

func applyFlagOverrides(cfg *config.Config, opts options) {
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if opts.height != 0 {
		cfg.UI.Height = opts.height
	}
	if opts.prompt != "" {
		cfg.UI.Prompt = opts.prompt
	}
	if opts.scorer != "" {
		cfg.Ranker.Scorer = opts.scorer
	}
	if opts.keepOrder {
		cfg.Ranker.KeepOrder = true
	}
}

func parseFlags() (opts options, showVersion, showHelp bool) {
	flag.IntVar(&opts.height, "height", 0, "Result list height in rows (0 = full screen)")
	flag.StringVar(&opts.prompt, "prompt", "", "Prompt text")
	flag.StringVar(&opts.query, "query", "", "Initial query string")
	flag.StringVar(&opts.theme, "theme", "", "Theme spec: comma-separated fg,bg,accent attributes")
	flag.StringVar(&opts.nth, "nth", "", "Comma-separated field indices/ranges to search")
	flag.StringVar(&opts.delim, "d", "", "Field delimiter for --nth splitting")
	flag.BoolVar(&opts.keepOrder, "keep-order", false, "Preserve input order instead of ranking by score")
	flag.StringVar(&opts.scorer, "scorer", "", "Scorer: fuzzy, substr, or keep_order")
	flag.BoolVar(&opts.rpcMode, "rpc", false, "Run as a JSON-RPC control-plane peer")
	flag.StringVar(&opts.ttyPath, "tty", "", "Open this device instead of the controlling terminal")
	flag.StringVar(&opts.noMatch, "no-match", "nothing", "On no-selection exit: nothing, input, or a literal string")
	flag.StringVar(&opts.title, "title", "", "Window/terminal title")
	flag.BoolVar(&opts.altScreen, "altscreen", false, "Use the terminal's alternate screen buffer")
	flag.BoolVar(&opts.jsonMode, "json", false, "Read/write candidates as one Item JSON value per line")
	flag.StringVar(&opts.ioSocket, "io-socket", "", "UNIX socket path or open fd for the RPC peer, instead of stdio")
	flag.StringVar(&opts.input, "input", "", "Read candidates from this file instead of stdin")
	flag.BoolVar(&opts.border, "border", false, "Draw a border around the picker")
	flag.BoolVar(&opts.preview, "preview", false, "Show the preview pane on startup")
	flag.StringVar(&opts.logPath, "log", "", "Write structured logs to this file")
	flag.StringVar(&opts.configPath, "config", "", "Path to sweep.toml")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Sweep - interactive fuzzy finder\n\n")
		fmt.Fprintf(os.Stderr, "Usage: sweep [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts, showVersion, showHelp
}
