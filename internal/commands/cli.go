package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cristalhq/acmd"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/gerunddev/linkmark/internal/config"
	"github.com/gerunddev/linkmark/internal/logger"
	"github.com/gerunddev/linkmark/internal/notify"
	"github.com/gerunddev/linkmark/internal/vault"
)

var cliCommands []acmd.Command

// CLI returns the command line commands, in the order they were added
func CLI() []acmd.Command {
	return append([]acmd.Command(nil), cliCommands...)
}

func init() {
	cliCommands = append(cliCommands,
		acmd.Command{
			Name:        "extract",
			Description: "Bookmark the selected URL (Extract)",
			ExecFunc:    runByID(ExtractURLID, true),
		},
		acmd.Command{
			Name:        "import",
			Description: "Bookmark the URL on the clipboard (Import From Clipboard)",
			ExecFunc:    runByID(ImportURLID, false),
		},
		acmd.Command{
			Name:        "all",
			Description: "Bookmark every link in a note (Bookmark All Links)",
			ExecFunc:    runAll,
		},
		acmd.Command{
			Name:        "frontmatter",
			Description: "Bookmark the link key of a note's frontmatter",
			ExecFunc:    runByID(BookmarkFrontmatterLinkID, false),
		},
		acmd.Command{
			Name:        "run",
			Description: "Run a command by id",
			ExecFunc:    runCommand,
		},
		acmd.Command{
			Name:        "commands",
			Description: "List command ids and names",
			ExecFunc:    runList,
		},
	)
}

// appFlags are shared by every bookmarking command
type appFlags struct {
	note      string
	selection string
	tui       bool
	plain     bool
	fs        *flag.FlagSet
}

func (f *appFlags) Flags(name string) *flag.FlagSet {
	f.fs = flag.NewFlagSet(name, flag.ContinueOnError)
	f.fs.StringVar(&f.note, "note", "", "vault-relative path of the active note")
	f.fs.StringVar(&f.note, "n", "", "active note (shorthand)")
	f.fs.StringVar(&f.selection, "selection", "", "selected text")
	return f.fs
}

// parse parses args; a request for help is reported as done
func (f *appFlags) parse(args []string) (bool, error) {
	if err := f.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	if f.selection == "" {
		f.selection = strings.Join(f.fs.Args(), " ")
	}
	return true, nil
}

// session is one CLI invocation: a logger, an environment and its registry
type session struct {
	env     *Env
	cleanup func()
}

func newSession(flags *appFlags, n notify.Notifier) *session {
	l, cleanup := cliLogger()
	ws := vault.NewWorkspace(flags.note, flags.selection)
	return &session{
		env:     DefaultEnv(ws, n, l),
		cleanup: cleanup,
	}
}

// cliLogger logs to the configured file, or warnings and up to stderr.
// Each invocation carries its own run id.
func cliLogger() (*logger.Logger, func()) {
	l := logger.NewWithLevel(os.Stderr, log.WarnLevel)
	cleanup := func() {}

	if cfg, err := config.Load(); err == nil && cfg.LogFile != "" {
		if fl, done, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel)); err == nil {
			l, cleanup = fl, done
		}
	}

	return l.With("run", uuid.NewString()[:8]), cleanup
}

func runByID(id string, positional bool) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		var flags appFlags
		fs := flags.Flags(id)
		if positional {
			fs.Usage = func() {
				fmt.Fprintf(fs.Output(), "Usage: %s [arguments...] [URL]\n", fs.Name())
				fs.PrintDefaults()
			}
		}

		ok, err := flags.parse(args)
		if !ok {
			return err
		}

		s := newSession(&flags, notify.NewConsole(os.Stdout))
		defer s.cleanup()

		return s.env.NewRegistry().Invoke(ctx, id)
	}
}

func runCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("command id is required")
	}
	id := args[0]

	var flags appFlags
	flags.Flags(id)
	ok, err := flags.parse(args[1:])
	if !ok {
		return err
	}

	if id == BookmarkAllLinksID {
		return runBatch(ctx, &flags)
	}

	s := newSession(&flags, notify.NewConsole(os.Stdout))
	defer s.cleanup()

	return s.env.NewRegistry().Invoke(ctx, id)
}

func runList(_ context.Context, _ []string) error {
	env := DefaultEnv(vault.NewWorkspace("", ""), nil, logger.Discard())
	for _, cmd := range env.NewRegistry().Commands() {
		fmt.Printf("%-28s %s\n", cmd.ID, cmd.Name)
	}
	return nil
}

func runAll(ctx context.Context, args []string) error {
	var flags appFlags
	fs := flags.Flags("all")
	fs.BoolVar(&flags.tui, "tui", false, "show a progress display")
	fs.BoolVar(&flags.plain, "plain", false, "print plain notices even on a terminal")

	ok, err := flags.parse(args)
	if !ok {
		return err
	}

	if !flags.tui && !flags.plain {
		flags.tui = isatty.IsTerminal(os.Stdout.Fd())
	}

	return runBatch(ctx, &flags)
}
