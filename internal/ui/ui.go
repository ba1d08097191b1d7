package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/tasks"
	"github.com/desertthunder/chordex/internal/theory"
)

// recentLines is how many finished songs the harvest view keeps on screen.
const recentLines = 8

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GenreListView ViewState = iota
	ConfirmView
	HarvestView
	ResultView
)

// SongLoader returns the catalog songs of a genre.
type SongLoader func(genre string) ([]models.Song, error)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	engine       *tasks.HarvestEngine
	load         SongLoader
	opts         tasks.HarvestOpts
	width        int
	height       int
	genreList    list.Model
	genre        string
	songs        []models.Song
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	recent       []string
	saved        int
	skipped      int
	failed       int
	result       *tasks.HarvestResult
	err          error
	quitting     bool
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. opts is used for every harvest with the picked genre filled in.
func NewModel(ctx context.Context, engine *tasks.HarvestEngine, genres []string, load SongLoader, opts tasks.HarvestOpts) *Model {
	items := make([]list.Item, len(genres))
	for i, g := range genres {
		item := genreItem{genre: g, songs: -1}
		if songs, err := load(g); err == nil {
			item.songs = len(songs)
		}
		items[i] = item
	}

	genreList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	genreList.Title = "Genres"

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.title.UnsetMarginBottom()

	return &Model{
		ctx:       ctx,
		view:      GenreListView,
		engine:    engine,
		load:      load,
		opts:      opts,
		genreList: genreList,
		spinner:   s,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init does nothing until a genre is picked.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.genreList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GenreListView:
			return m.handleGenreListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case HarvestView:
			return m.handleHarvestKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case spinner.TickMsg:
		if m.view != HarvestView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	if m.view == GenreListView {
		m.genreList, cmd = m.genreList.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsLoaded:
		data := msg.data.(songsLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.songs = data.songs
		m.err = nil
		m.view = ConfirmView
		return m, nil

	case MsgProgressUpdate:
		update := msg.data.(tasks.ProgressUpdate)
		m.progress = update
		if update.Phase == tasks.SongDone {
			m.record(update)
		}
		return m, m.waitForProgress()

	case MsgHarvestComplete:
		data := msg.data.(harvestComplete)
		m.result = data.result
		m.err = data.err
		m.progressChan = nil
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if m.quitting {
			return m, tea.Quit
		}
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// record counts a finished song and keeps its line for display.
func (m *Model) record(update tasks.ProgressUpdate) {
	if r, ok := update.Data.(tasks.SongResult); ok {
		switch r.Status {
		case tasks.StatusSaved:
			m.saved++
		case tasks.StatusSkipped:
			m.skipped++
		case tasks.StatusFailed:
			m.failed++
		}
	}
	m.recent = append(m.recent, update.Message)
	if len(m.recent) > recentLines {
		m.recent = m.recent[len(m.recent)-recentLines:]
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case GenreListView:
		return m.renderGenreList()
	case ConfirmView:
		return m.renderConfirm()
	case HarvestView:
		return m.renderHarvest()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleGenreListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.genreList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.genreList, cmd = m.genreList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.genreList.SelectedItem().(genreItem); ok {
			m.genre = item.genre
			return m, m.loadSongs(item.genre)
		}
	}

	var cmd tea.Cmd
	m.genreList, cmd = m.genreList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.view = HarvestView
		return m, tea.Batch(m.spinner.Tick, m.startHarvest())
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = GenreListView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleHarvestKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.cancel) && m.cancel != nil {
		m.quitting = true
		m.cancel()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.reset()
		return m, nil
	}
	return m, nil
}

func (m *Model) reset() {
	m.view = GenreListView
	m.genre = ""
	m.songs = nil
	m.result = nil
	m.err = nil
	m.recent = nil
	m.saved, m.skipped, m.failed = 0, 0, 0
	m.progress = tasks.ProgressUpdate{}
}

func (m *Model) loadSongs(genre string) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.load(genre)
		return songsLoadedMsg(songs, err)
	}
}

func (m *Model) startHarvest() tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	opts := m.opts
	opts.Genre = m.genre
	songs := m.songs
	progress := m.progressChan

	go func() {
		result, err := m.engine.Run(ctx, progress, songs, opts)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return harvestCompleteMsg(m.result, m.err)
		}

		update, ok := <-progress
		if !ok {
			return harvestCompleteMsg(m.result, m.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderGenreList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var errView string
	if m.err != nil {
		errView = "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return fmt.Sprintf("%s%s\n\n%s", m.genreList.View(), errView, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Harvest %d %s songs?", len(m.songs), m.genre))
	windowSize := m.opts.WindowSize
	if windowSize <= 0 {
		windowSize = theory.DefaultWindowSize
	}
	info := fmt.Sprintf("Delay: %s\nWindow size: %d\n", m.opts.Delay, windowSize)
	if m.opts.OutputDir != "" {
		info += fmt.Sprintf("CSV output: %s\n", m.opts.OutputDir)
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func counters(saved, skipped, failed int) string {
	return fmt.Sprintf("%s  %s  %s",
		styles.ok.Render(fmt.Sprintf("%d saved", saved)),
		styles.warn.Render(fmt.Sprintf("%d skipped", skipped)),
		styles.err.Render(fmt.Sprintf("%d failed", failed)),
	)
}

func (m *Model) renderHarvest() string {
	title := styles.title.Render(fmt.Sprintf("Harvesting %s", m.genre))

	status := "Stopping after the current step..."
	if !m.quitting {
		status = fmt.Sprintf("%s %s", m.spinner.View(), m.progress.Message)
	}

	var recent string
	if len(m.recent) > 0 {
		recent = "\n\n" + styles.box.Render(strings.Join(m.recent, "\n"))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.cancel})
	return fmt.Sprintf("%s\n%s\n%s%s\n\n%s", title, status, counters(m.saved, m.skipped, m.failed), recent, helpView)
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.result == nil {
		msg := "No result available"
		if m.err != nil {
			msg = fmt.Sprintf("Harvest failed: %v", m.err)
		}
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(msg), helpView)
	}

	title := styles.ok.Render("✓ Harvest Complete!")
	if m.err != nil {
		title = styles.warn.Render(fmt.Sprintf("Harvest stopped: %v", m.err))
	}

	run := m.result.Run
	info := fmt.Sprintf("\nGenre: %s\nProcessed: %d/%d\n%s",
		run.Genre, len(m.result.Results), run.Total, counters(run.Saved, run.Skipped, run.Failed))

	var failed string
	if run.Failed > 0 {
		failed = "\n\n" + styles.warn.Render(fmt.Sprintf("Failed %d songs:", run.Failed))
		for _, r := range m.result.Results {
			if r.Status == tasks.StatusFailed {
				failed += fmt.Sprintf("\n  • %s - %s: %s", r.Song.Artist, r.Song.Title, r.Reason)
			}
		}
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
