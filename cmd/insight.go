package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/catalog"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/formatter"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/urfave/cli/v3"
)

// Insight asks the setlist assistant for an order suggestion based on the
// current vote tallies. Advisory only; nothing is written back.
func (r *Runner) Insight(ctx context.Context, cmd *cli.Command) error {
	if r.insight == nil {
		return fmt.Errorf("%w: insight assistant not initialized", shared.ErrServiceUnavailable)
	}

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedIn(st); err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		r.logger.Info("requesting setlist insight", "songs", len(songs))
		text, err := r.insight.SetlistInsight(ctx, songs)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		r.writePlainHeader("Setlist Insight")
		return r.writePlain("%s\n", text)
	})
}

// Export writes the member's view of the catalog with vote tallies to a
// file or stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	outputPath := cmd.String("output")

	return r.withStore(func(st *store.Store) error {
		user, err := r.signedIn(st)
		if err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		visible := catalog.VisibleTo(songs, user)

		var data []byte
		switch format {
		case "csv":
			data, err = formatter.ExportToCSV(visible)
		case "markdown", "md":
			data, err = formatter.ExportToMarkdown("Song Suggestions", visible)
		case "text", "txt":
			data, err = formatter.ExportToText("Song Suggestions", visible)
		default:
			return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if outputPath == "" {
			return r.writePlain("%s", data)
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}

		r.logger.Info("catalog exported", "path", outputPath, "format", format)
		return r.writePlain("✓ Exported %d songs to %s\n", len(visible), outputPath)
	})
}
