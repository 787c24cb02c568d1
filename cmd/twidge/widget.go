package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/grindlemire/twidge"
	"github.com/grindlemire/twidge/internal/config"
	"github.com/grindlemire/twidge/internal/debug"
	"github.com/mattn/go-isatty"
)

// options are the flags shared by the widget commands.
type options struct {
	configPath    string
	format        string
	escapeTimeout time.Duration
	frame         bool
}

// parseFlags parses the shared flags, which may precede the arguments.
func parseFlags(command string, args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{}
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file")
	fs.StringVar(&opts.format, "o", "text", "result format: text, json or yaml")
	fs.DurationVar(&opts.escapeTimeout, "escape-timeout", 0, "escape sequence timeout")
	fs.BoolVar(&opts.frame, "frame", false, "draw a border around the widget")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if _, ok := formats[opts.format]; !ok {
		return nil, nil, fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}
	if opts.escapeTimeout < 0 {
		return nil, nil, fmt.Errorf("escape timeout must be positive")
	}
	return opts, fs.Args(), nil
}

// runWidget implements the widget commands.
func runWidget(command string, args []string, stdout, stderr io.Writer) int {
	opts, args, err := parseFlags(command, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: config: %v\n", err)
		return exitError
	}

	// Validate arguments before touching the terminal.
	build, err := widgetFor(command, args, cfg, opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	app, cleanup, err := newApp(cfg, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	result, err := build(ctx, app)
	if code := exitCode(err); code != exitOK {
		if code == exitInterrupted {
			debug.Log("run interrupted", "command", command, "err", err)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return code
	}

	if err := writeResult(stdout, opts.format, result); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

// exitCode maps the error of a run to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, twidge.ErrInterrupted), errors.Is(err, twidge.ErrAborted):
		return exitInterrupted
	default:
		return exitError
	}
}

// runner runs a widget on app and returns its result.
type runner func(ctx context.Context, app *twidge.App) (result, error)

// widgetFor builds the widget for command and returns a function running it.
func widgetFor(command string, args []string, cfg *config.Config, opts *options) (runner, error) {
	abort, err := twidge.ParseKeySet(cfg.Keys.Abort)
	if err != nil {
		return nil, fmt.Errorf("keys.abort: %w", err)
	}
	wrap := wrapper{frame: opts.frame, abort: abort}

	switch command {
	case "echo":
		if err := noArgs(command, args); err != nil {
			return nil, err
		}
		return runValue(twidge.NewEcho(), wrap, func(v []string) result {
			return result{text: strings.Join(v, " "), value: v}
		}), nil

	case "echobytes":
		if err := noArgs(command, args); err != nil {
			return nil, err
		}
		return runValue(twidge.NewEchoBytes(), wrap, func(v []byte) result {
			return result{text: fmt.Sprintf("%q", v), value: string(v)}
		}), nil

	case "edit":
		if len(args) > 1 {
			return nil, fmt.Errorf("edit takes at most one argument, got %d", len(args))
		}
		initial := ""
		if len(args) == 1 {
			initial = args[0]
		}
		return runValue(twidge.NewEditString(initial), wrap, func(v string) result {
			return result{text: v, value: v}
		}), nil

	case "form":
		if len(args) != 1 {
			return nil, fmt.Errorf("form needs one argument: comma-separated labels")
		}
		form, err := twidge.NewFormValues(formFields(args[0]))
		if err != nil {
			return nil, err
		}
		keys, err := formKeys(cfg)
		if err != nil {
			return nil, err
		}
		form.SetKeys(keys)
		return runValue(form, wrap, func(v twidge.Values) result {
			return result{text: v.String(), value: v}
		}), nil

	case "filter":
		if len(args) != 1 {
			return nil, fmt.Errorf("filter needs one argument: comma-separated options")
		}
		return runValue(twidge.NewSearchList(splitList(args[0])), wrap, func(v []string) result {
			return result{text: strings.Join(v, "\n"), value: v}
		}), nil

	case "select":
		if len(args) != 1 {
			return nil, fmt.Errorf("select needs one argument: comma-separated options")
		}
		return runValue(twidge.NewSelectList(splitList(args[0])), wrap, func(v []string) result {
			return result{text: strings.Join(v, "\n"), value: v}
		}), nil
	}
	return nil, fmt.Errorf("unknown command: %s", command)
}

// wrapper holds the decorations every widget command applies.
type wrapper struct {
	frame bool
	abort twidge.KeySet // Abort sequence; empty disables it
}

// runValue returns a runner for w, decorated by wrap, that converts its
// value with conv.
func runValue[T any](w twidge.Valuer[T], wrap wrapper, conv func(T) result) runner {
	if wrap.frame {
		w = twidge.NewFramed(w)
	}
	if len(wrap.abort) > 0 {
		w = twidge.NewAbort(w, wrap.abort)
	}
	return func(ctx context.Context, app *twidge.App) (result, error) {
		v, err := twidge.Run(ctx, app, w)
		if err != nil {
			return result{}, err
		}
		return conv(v), nil
	}
}

func noArgs(command string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%s takes no arguments", command)
	}
	return nil
}

// splitList splits a comma-separated list, trimming spaces and dropping
// empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// formFields parses comma-separated "Label" or "Label=initial" items.
func formFields(s string) twidge.Values {
	items := splitList(s)
	fields := make(twidge.Values, 0, len(items))
	for _, item := range items {
		label, value, _ := strings.Cut(item, "=")
		fields = append(fields, twidge.Field{Label: strings.TrimSpace(label), Value: value})
	}
	return fields
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if opts.escapeTimeout > 0 {
		cfg.EscapeTimeout = config.Duration{Duration: opts.escapeTimeout}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formKeys converts the configured form keys.
func formKeys(cfg *config.Config) (twidge.FormKeys, error) {
	var keys twidge.FormKeys
	var err error
	if keys.Submit, err = twidge.ParseKeySet(cfg.Keys.Submit); err != nil {
		return keys, fmt.Errorf("keys.submit: %w", err)
	}
	if keys.NextField, err = twidge.ParseKeySet(cfg.Keys.NextField); err != nil {
		return keys, fmt.Errorf("keys.next_field: %w", err)
	}
	if keys.PrevField, err = twidge.ParseKeySet(cfg.Keys.PrevField); err != nil {
		return keys, fmt.Errorf("keys.prev_field: %w", err)
	}
	return keys, nil
}

// newApp creates the app on the controlling terminal.
//
// Input comes from stdin, or from /dev/tty when stdin is redirected. The
// widget is drawn on stdout, or on stderr when stdout is redirected.
func newApp(cfg *config.Config, stdout io.Writer) (*twidge.App, func(), error) {
	interrupt, err := twidge.ParseKeySet(cfg.Keys.Interrupt)
	if err != nil {
		return nil, nil, fmt.Errorf("keys.interrupt: %w", err)
	}

	in := os.Stdin
	closeIn := func() {}
	if !isTerminal(in) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return nil, nil, twidge.ErrNotTerminal
		}
		in = tty
		closeIn = func() { tty.Close() }
	}

	var ui io.Writer = os.Stderr
	if f, ok := stdout.(*os.File); ok && isTerminal(f) {
		ui = f
	}

	app, err := twidge.NewApp(
		twidge.WithInput(in),
		twidge.WithOutput(ui),
		twidge.WithEscapeTimeout(cfg.EscapeTimeout.Duration),
		twidge.WithInterruptKeys(interrupt),
		twidge.WithColors(twidge.ThemeColors(cfg.Theme)),
	)
	if err != nil {
		closeIn()
		return nil, nil, err
	}

	cleanup := func() {
		app.Close()
		closeIn()
	}
	return app, cleanup, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
