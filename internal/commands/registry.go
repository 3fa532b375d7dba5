package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerunddev/linkmark/internal/logger"
	"github.com/gerunddev/linkmark/internal/notify"
)

// Command IDs
const (
	ExtractURLID              = "extract-url"
	ImportURLID               = "import-url"
	BookmarkAllLinksID        = "bookmarkAllLinks"
	BookmarkFrontmatterLinkID = "bookmark-frontmatter-link"
)

// ErrUnknownCommand is returned by Invoke for an ID nobody registered
var ErrUnknownCommand = errors.New("unknown command")

// Handler runs a command
type Handler func(ctx context.Context) error

// Command is a named action. Commands are values: registering one copies it.
type Command struct {
	ID      string
	Name    string
	Handler Handler
}

// Registry holds the commands available to the user
type Registry struct {
	commands []Command
	byID     map[string]int
	notifier notify.Notifier
	logger   *logger.Logger
}

// NewRegistry creates an empty registry reporting failures to n
func NewRegistry(n notify.Notifier, l *logger.Logger) *Registry {
	if l == nil {
		l = logger.Discard()
	}
	return &Registry{
		byID:     map[string]int{},
		notifier: n,
		logger:   l,
	}
}

// Register adds cmd. IDs must be unique.
func (r *Registry) Register(cmd Command) error {
	if cmd.ID == "" || cmd.Handler == nil {
		return fmt.Errorf("command %q needs an id and a handler", cmd.Name)
	}
	if _, ok := r.byID[cmd.ID]; ok {
		return fmt.Errorf("command %s already registered", cmd.ID)
	}
	r.byID[cmd.ID] = len(r.commands)
	r.commands = append(r.commands, cmd)
	return nil
}

// Lookup returns the command with the given ID
func (r *Registry) Lookup(id string) (Command, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}

// Commands returns the registered commands in registration order
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Invoke runs the command with the given ID. A failing handler produces
// exactly one "error: ..." notice; the returned error is marked as reported.
func (r *Registry) Invoke(ctx context.Context, id string) error {
	cmd, ok := r.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}

	r.logger.CommandStarted(id)
	if err := cmd.Handler(ctx); err != nil {
		r.logger.CommandFailed(id, err)
		if r.notifier != nil {
			r.notifier.Notice("error: " + err.Error())
		}
		return &ReportedError{Err: err}
	}
	return nil
}

// ReportedError is a command failure the user has already been told about
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var re *ReportedError
	return errors.As(err, &re)
}
