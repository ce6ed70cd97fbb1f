package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/services"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/token"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	store    *store.Store
	metadata services.MetadataService
	insight  services.InsightService
	clip     func(string) error
	browse   func(string) error
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Store    *store.Store
	Metadata services.MetadataService
	Insight  services.InsightService
	Clip     func(string) error
	Browse   func(string) error
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clip == nil {
		opts.Clip = clipboard.WriteAll
	}
	if opts.Browse == nil {
		opts.Browse = shared.OpenBrowser
	}

	return &Runner{
		config:   opts.Config,
		store:    opts.Store,
		metadata: opts.Metadata,
		insight:  opts.Insight,
		clip:     opts.Clip,
		browse:   opts.Browse,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

// SetLogger swaps the runner's logger, used by the TUI to redirect logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, logoutCommand, whoamiCommand, openCommand,
		songsCommand, voteCommand, shareCommand, requestCommand, approveCommand,
		importCommand, membersCommand, insightCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// withStore runs fn against the injected store when one was provided,
// otherwise it opens the configured database for the duration of the call.
// Migrations run on open so that pasting a share link works on a fresh
// machine without a separate setup step.
func (r *Runner) withStore(fn func(*store.Store) error) error {
	if r.store != nil {
		return fn(r.store)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return fn(store.New(db))
}

func (r *Runner) signedIn(st *store.Store) (models.User, error) {
	session, err := st.LoadSession()
	if err != nil {
		return models.User{}, err
	}
	if session == nil {
		return models.User{}, fmt.Errorf("%w: run `playlistvote login` first", shared.ErrNotAuthenticated)
	}
	return *session, nil
}

func (r *Runner) signedInAdmin(st *store.Store) (models.User, error) {
	user, err := r.signedIn(st)
	if err != nil {
		return user, err
	}
	if !user.IsAdmin() {
		return user, fmt.Errorf("%w: admin access required", shared.ErrInvalidCredentials)
	}
	return user, nil
}

func (r *Runner) linkOptions() token.LinkOptions {
	return token.LinkOptions{
		BaseURL: r.config.Share.BaseURL,
		Escape:  r.config.Share.EscapeTokens,
	}
}

// deliver prints a share link or code and optionally copies it to the
// clipboard or opens it in the browser.
func (r *Runner) deliver(text string, copyIt, openIt bool) error {
	if err := r.writePlain("%s\n", text); err != nil {
		return err
	}

	if copyIt {
		if err := r.clip(text); err != nil {
			r.logger.Warn("failed to copy to clipboard", "error", err)
		} else {
			r.writePlain("✓ Copied to clipboard\n")
		}
	}

	if openIt {
		if err := r.browse(text); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
