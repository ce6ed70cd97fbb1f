package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive voting view for the signed-in member.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/playlistvote-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	return r.withStore(func(st *store.Store) error {
		user, err := r.signedIn(st)
		if err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		// Every keypress mutation re-reads stored state before applying so
		// a sync import racing the TUI never gets clobbered wholesale.
		apply := func(mutate ui.Mutator) ([]models.Song, error) {
			current, err := st.LoadSongs()
			if err != nil {
				return nil, err
			}
			next, err := mutate(current)
			if err != nil {
				return nil, err
			}
			if err := st.SaveSongs(next); err != nil {
				return nil, err
			}
			return next, nil
		}

		var p *tea.Program
		model := ui.NewModel(ui.ModelOpts{
			User:     user,
			Songs:    songs,
			Apply:    apply,
			Metadata: r.metadata,
			Debounce: time.Duration(r.config.Metadata.DebounceMS) * time.Millisecond,
			Send:     func(msg tea.Msg) { p.Send(msg) },
		})
		p = tea.NewProgram(model)

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}

		return nil
	})
}
