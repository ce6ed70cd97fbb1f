package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
)

func exportSongs() []models.Song {
	return []models.Song{
		{
			ID: "s1", Title: "Oceans", Artist: "Hillsong",
			YoutubeURL: "https://youtu.be/dQw4w9WgXcQ", AddedAt: 1700000000000,
			Ratings:  []models.Rating{{UserID: "a", Score: 5}, {UserID: "b", Score: 4}},
			IsPublic: true,
		},
		{
			ID: "s2", Title: "Só Tu És Santo", Artist: "Morada",
			AddedAt: 1700000001000, Ratings: []models.Rating{}, IsPublic: false,
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(exportSongs())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][1] != "Oceans" || records[1][5] != "4.5" || records[1][6] != "2" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][1] != "Só Tu És Santo" || records[2][7] != "false" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown("Repertório", exportSongs())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "# Repertório\n") {
		t.Errorf("missing title header: %s", out)
	}
	if !strings.Contains(out, "[Oceans](https://youtu.be/dQw4w9WgXcQ)") {
		t.Errorf("songs with URLs should be linked: %s", out)
	}
	if !strings.Contains(out, "| 2 | Só Tu És Santo | Morada | — | 0 |") {
		t.Errorf("unvoted song row malformed: %s", out)
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText("Repertório", exportSongs())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "1. Hillsong - Oceans [4.5 from 2 votes]") {
		t.Errorf("voted line malformed:\n%s", out)
	}
	if !strings.Contains(out, "2. Morada - Só Tu És Santo\n") {
		t.Errorf("unvoted line malformed:\n%s", out)
	}
}
