// Package todonext wires configuration, storage and the list engine into the
// operations the CLI exposes.
package todonext

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/todonext/internal/core/config"
	"github.com/colonyops/todonext/internal/core/dates"
	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/store/textfile"
	"github.com/colonyops/todonext/pkg/executil"
)

// App is the central entry point for all todonext operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	Dates   *dates.Parser
	Store   *textfile.Store
	Archive textfile.Archive
	Editor  *Editor
	Doctor  *DoctorService

	exec executil.Executor
	log  zerolog.Logger
}

type settings struct {
	now  func() time.Time
	exec executil.Executor
}

// Option configures an App.
type Option func(*settings)

// WithClock replaces time.Now for every date computation.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithExecutor replaces the executor used for the editor and for opening
// attachments.
func WithExecutor(e executil.Executor) Option {
	return func(s *settings) { s.exec = e }
}

// New constructs an App from a loaded configuration.
func New(cfg *config.Config, log zerolog.Logger, opts ...Option) *App {
	s := settings{now: time.Now, exec: &executil.RealExecutor{}}
	for _, opt := range opts {
		opt(&s)
	}

	a := &App{
		Config: cfg,
		Dates:  dates.NewParser(dates.WithFormats(cfg.DateFormats...), dates.WithClock(s.now)),
		Archive: textfile.Archive{
			Dir:      cfg.TodoDir(),
			Scheme:   cfg.Archive.FilenameScheme,
			Unsorted: cfg.Archive.UnsortedFilename,
		},
		exec: s.exec,
		log:  log,
	}
	a.Store = textfile.New(cfg.TodoFile, a.ListOptions(), log)
	a.Editor = NewEditor(cfg.EditorCommand(), s.exec)
	a.Doctor = NewDoctorService(a)
	return a
}

// ItemOptions returns the item options derived from the configuration.
func (a *App) ItemOptions() todo.Options {
	return todo.Options{
		DonePrefix:   a.Config.DonePrefix,
		ReportPrefix: a.Config.ReportPrefix,
		IDSupport:    a.Config.IDSupport,
		BaseDir:      a.Config.TodoDir(),
		Dates:        a.Dates,
	}
}

// ListOptions returns the options of the main todo list.
func (a *App) ListOptions() todolist.Options {
	return todolist.Options{Item: a.ItemOptions(), Sort: a.Config.Sort}
}

// archiveOptions keeps archive files in append order and leaves IDs and
// dependencies of archived items alone.
func (a *App) archiveOptions() todolist.Options {
	opts := a.ListOptions()
	opts.Item.IDSupport = false
	opts.Sort = false
	return opts
}

// Now returns the current time as seen by the date parser.
func (a *App) Now() time.Time {
	return a.Dates.Now()
}

// Load reads the todo list without writing it back.
func (a *App) Load() (*todolist.List, error) {
	return a.Store.Load()
}

// WithList loads the todo list, runs fn and writes the list back when fn
// succeeded and changed it. When fn fails nothing is written.
func (a *App) WithList(ctx context.Context, fn func(l *todolist.List) error) error {
	l, err := a.Store.Load()
	if err != nil {
		return fmt.Errorf("load todo list: %w", err)
	}

	if err := fn(l); err != nil {
		if l.Dirty() {
			a.log.Error().Ctx(ctx).Err(err).Msg("command failed, changes not written")
		}
		return err
	}

	if !l.Dirty() {
		return nil
	}

	if err := a.Store.Save(l); err != nil {
		return fmt.Errorf("write todo list: %w", err)
	}
	return nil
}
