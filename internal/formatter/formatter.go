// package formatter exports the song catalog to shareable formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
)

// ExportToCSV converts the catalog to CSV with columns: ID, Title, Artist, URL, Added, Average, Votes, Public
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "URL", "Added", "Average", "Votes", "Public"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			song.Artist,
			song.YoutubeURL,
			time.UnixMilli(song.AddedAt).UTC().Format(time.RFC3339),
			strconv.FormatFloat(song.AverageRating(), 'f', 1, 64),
			strconv.Itoa(len(song.Ratings)),
			strconv.FormatBool(song.IsPublic),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the catalog to a Markdown voting summary.
func ExportToMarkdown(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	buf.WriteString("| # | Song | Artist | Average | Votes |\n")
	buf.WriteString("|---|------|--------|---------|-------|\n")
	for i, song := range songs {
		name := song.Title
		if song.YoutubeURL != "" {
			name = fmt.Sprintf("[%s](%s)", song.Title, song.YoutubeURL)
		}
		avg := "—"
		if len(song.Ratings) > 0 {
			avg = strconv.FormatFloat(song.AverageRating(), 'f', 1, 64)
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %d |\n",
			i+1, name, song.Artist, avg, len(song.Ratings)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts the catalog to plain text.
func ExportToText(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))

	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s", i+1, song.Artist, song.Title))
		if len(song.Ratings) > 0 {
			buf.WriteString(fmt.Sprintf(" [%.1f from %d votes]", song.AverageRating(), len(song.Ratings)))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}
