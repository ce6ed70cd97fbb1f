package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/catalog"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/services"
)

// Mutator applies a catalog change and persists it, returning the full
// updated catalog. The TUI never touches storage directly.
type Mutator func(songs []models.Song) ([]models.Song, error)

// Apply is the persistence callback supplied by the caller.
type Apply func(mutate Mutator) ([]models.Song, error)

const (
	modeList = iota
	modeForm
)

// Model represents the voting TUI state.
type Model struct {
	user     models.User
	songs    []models.Song
	songList list.Model
	apply    Apply
	mode     int
	form     addForm
	metadata services.MetadataService
	debounce *services.Debouncer
	send     func(tea.Msg)
	status   string
	statusOK bool
	width    int
	height   int
	help     help.Model
	keys     keyMap
}

// ModelOpts configures the voting view. Metadata, Debounce, and Send are
// optional as a group; when any is missing the add form simply skips the
// URL prefill.
type ModelOpts struct {
	User     models.User
	Songs    []models.Song
	Apply    Apply
	Metadata services.MetadataService
	Debounce time.Duration
	Send     func(tea.Msg)
}

// NewModel creates the voting view for a signed-in user.
func NewModel(opts ModelOpts) Model {
	m := Model{
		user:     opts.User,
		songs:    opts.Songs,
		apply:    opts.Apply,
		metadata: opts.Metadata,
		send:     opts.Send,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	if opts.Debounce > 0 {
		m.debounce = services.NewDebouncer(opts.Debounce)
	}

	m.songList = list.New(m.items(), list.NewDefaultDelegate(), 0, 0)
	m.songList.Title = "Song Voting"
	m.songList.SetShowHelp(false)
	return m
}

func (m Model) items() []list.Item {
	visible := catalog.VisibleTo(m.songs, m.user)
	items := make([]list.Item, 0, len(visible))
	for _, s := range visible {
		items = append(items, songItem{song: s, voterID: m.user.ID})
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(prefillMsg); ok {
		return m.applyPrefill(msg), nil
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.add):
			if m.user.IsAdmin() {
				m.mode = modeForm
				m.form = newAddForm()
				m.status = ""
			}
			return m, nil

		case key.Matches(msg, m.keys.stars):
			score, err := strconv.Atoi(msg.String())
			if err != nil {
				return m, nil
			}
			return m.vote(score), nil

		case key.Matches(msg, m.keys.visibility):
			if m.user.IsAdmin() {
				return m.toggleVisibility(), nil
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m Model) selected() (models.Song, bool) {
	item, ok := m.songList.SelectedItem().(songItem)
	if !ok {
		return models.Song{}, false
	}
	return item.song, true
}

func (m Model) vote(score int) Model {
	song, ok := m.selected()
	if !ok {
		return m
	}

	updated, err := m.apply(func(songs []models.Song) ([]models.Song, error) {
		return catalog.Vote(songs, song.ID, m.user.ID, score)
	})
	if err != nil {
		m.status = fmt.Sprintf("vote failed: %v", err)
		m.statusOK = false
		return m
	}

	m.songs = updated
	m.status = fmt.Sprintf("voted %d on %s", score, song.Title)
	m.statusOK = true
	m.songList.SetItems(m.items())
	return m
}

func (m Model) toggleVisibility() Model {
	song, ok := m.selected()
	if !ok {
		return m
	}

	updated, err := m.apply(func(songs []models.Song) ([]models.Song, error) {
		return catalog.ToggleVisibility(songs, song.ID)
	})
	if err != nil {
		m.status = fmt.Sprintf("toggle failed: %v", err)
		m.statusOK = false
		return m
	}

	m.songs = updated
	m.status = fmt.Sprintf("visibility toggled for %s", song.Title)
	m.statusOK = true
	m.songList.SetItems(m.items())
	return m
}

func (m Model) View() string {
	if m.mode == modeForm {
		return m.formView()
	}

	view := m.songList.View() + "\n"

	if m.status != "" {
		if m.statusOK {
			view += styles.ok.Render(m.status)
		} else {
			view += styles.err.Render(m.status)
		}
		view += "\n"
	}

	view += styles.help.Render(m.help.View(m.keys))
	return view
}
