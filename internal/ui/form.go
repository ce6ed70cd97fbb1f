package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/catalog"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/services"
)

const (
	fieldURL = iota
	fieldTitle
	fieldArtist
	fieldCount
)

const lookupTimeout = 5 * time.Second

// prefillMsg carries a finished metadata lookup back into the update
// loop. The URL is echoed so a stale lookup cannot fill a changed form.
type prefillMsg struct {
	url  string
	meta *services.Metadata
}

// addForm is the admin's song suggestion form.
type addForm struct {
	inputs []textinput.Model
	focus  int
}

func newAddForm() addForm {
	f := addForm{inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		in := textinput.New()
		switch i {
		case fieldURL:
			in.Placeholder = "YouTube URL"
			in.Focus()
		case fieldTitle:
			in.Placeholder = "Title (filled from the URL)"
		case fieldArtist:
			in.Placeholder = "Artist"
		}
		f.inputs[i] = in
	}
	return f
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.debounce != nil {
				m.debounce.Cancel()
			}
			m.mode = modeList
			return m, nil

		case "enter":
			if m.form.focus == fieldArtist {
				return m.submitForm(), nil
			}
			return m.cycleFocus(1), nil

		case "tab", "down":
			return m.cycleFocus(1), nil

		case "shift+tab", "up":
			return m.cycleFocus(-1), nil
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	if m.form.focus == fieldURL {
		m.scheduleLookup()
	}
	return m, cmd
}

func (m Model) cycleFocus(delta int) Model {
	m.form.inputs[m.form.focus].Blur()
	m.form.focus = (m.form.focus + delta + fieldCount) % fieldCount
	m.form.inputs[m.form.focus].Focus()
	return m
}

// scheduleLookup holds the metadata lookup until typing pauses. The
// result arrives as a [prefillMsg] over the program's Send, since the
// debounced call runs outside the update loop.
func (m Model) scheduleLookup() {
	if m.metadata == nil || m.debounce == nil || m.send == nil {
		return
	}

	url := strings.TrimSpace(m.form.inputs[fieldURL].Value())
	if url == "" {
		m.debounce.Cancel()
		return
	}

	metadata, send := m.metadata, m.send
	m.debounce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		meta, err := metadata.Lookup(ctx, url)
		if err != nil || meta == nil {
			return
		}
		send(prefillMsg{url: url, meta: meta})
	})
}

func (m Model) applyPrefill(msg prefillMsg) Model {
	if m.mode != modeForm {
		return m
	}
	if strings.TrimSpace(m.form.inputs[fieldURL].Value()) != msg.url {
		return m
	}

	if m.form.inputs[fieldTitle].Value() == "" {
		m.form.inputs[fieldTitle].SetValue(msg.meta.Title)
	}
	if m.form.inputs[fieldArtist].Value() == "" {
		m.form.inputs[fieldArtist].SetValue(msg.meta.Author)
	}
	return m
}

func (m Model) submitForm() Model {
	url := strings.TrimSpace(m.form.inputs[fieldURL].Value())
	if url == "" {
		m.status = "a URL is required"
		m.statusOK = false
		return m
	}

	if m.debounce != nil {
		m.debounce.Cancel()
	}

	song := catalog.NewSong(
		m.form.inputs[fieldTitle].Value(),
		m.form.inputs[fieldArtist].Value(),
		url, true,
	)

	updated, err := m.apply(func(songs []models.Song) ([]models.Song, error) {
		return catalog.Add(songs, song), nil
	})
	if err != nil {
		m.status = fmt.Sprintf("add failed: %v", err)
		m.statusOK = false
		return m
	}

	m.songs = updated
	m.songList.SetItems(m.items())
	m.mode = modeList
	m.status = fmt.Sprintf("added %s", song.Title)
	m.statusOK = true
	return m
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Add a song"))
	b.WriteString("\n")

	labels := []string{"URL", "Title", "Artist"}
	for i, in := range m.form.inputs {
		b.WriteString(labels[i] + "\n" + in.View() + "\n")
	}

	if m.status != "" && !m.statusOK {
		b.WriteString("\n" + styles.err.Render(m.status) + "\n")
	}

	b.WriteString("\n" + styles.help.Render("enter next/submit · esc cancel"))
	return b.String()
}
