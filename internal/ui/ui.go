package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hanshat/infinitunes/internal/cache"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/services"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/hanshat/infinitunes/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeListView ViewState = iota
	TrackListView
	ConfirmView
	DownloadView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	store        *cache.HomeStore
	catalog      services.Catalog
	engine       *tasks.MediaEngine
	quality      models.Quality
	width        int
	height       int
	homeList     list.Model
	trackList    list.Model
	album        *models.Album
	single       *models.Song
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.AlbumRunResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, store *cache.HomeStore, catalog services.Catalog, engine *tasks.MediaEngine, quality models.Quality) *Model {
	return &Model{
		ctx:     ctx,
		view:    HomeListView,
		store:   store,
		catalog: catalog,
		engine:  engine,
		quality: quality,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching the home feed.
func (m *Model) Init() tea.Cmd {
	return m.fetchHome()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.homeList.Width() == 0 {
			m.homeList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case HomeListView:
			return m.handleHomeListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case homeFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		// A missing payload is not an error; it renders as an empty list.
		var items []list.Item
		if msg.home != nil {
			items = make([]list.Item, 0, len(msg.home.Trending)+len(msg.home.Albums))
			for _, entry := range msg.home.Trending {
				items = append(items, catalogItem{item: entry})
			}
			for _, entry := range msg.home.Albums {
				items = append(items, catalogItem{item: entry})
			}
		}
		m.homeList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.homeList.Title = "Trending & New Releases"
		m.homeList.SetSize(m.width-4, m.height-8)
		return m, nil

	case tracksFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = HomeListView
			return m, nil
		}
		m.album = msg.album
		items := make([]list.Item, len(msg.album.Songs))
		for i, song := range msg.album.Songs {
			items[i] = trackItem{song: song}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", shared.DecodeEntities(msg.album.Name))
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case downloadCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case HomeListView:
		return m.renderHomeList()
	case TrackListView:
		return m.renderTrackList()
	case ConfirmView:
		return m.renderConfirm()
	case DownloadView:
		return m.renderDownload()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleHomeListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.homeList.SelectedItem()
		if selected != nil {
			if entry, ok := selected.(catalogItem); ok {
				return m, m.fetchTracks(entry.item)
			}
		}
	}

	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = HomeListView
		return m, nil
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = TrackListView
		return m, nil
	case "y":
		m.view = DownloadView
		return m, m.startDownload()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = HomeListView
		m.album = nil
		m.single = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeListView:
		m.homeList, cmd = m.homeList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchHome() tea.Cmd {
	return func() tea.Msg {
		home, err := m.store.Get(m.ctx)
		return homeFetchedMsg{home: home, err: err}
	}
}

// fetchTracks loads the track listing for a home entry. Songs become a
// single-track listing; everything else is fetched as an album.
func (m *Model) fetchTracks(item models.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		if item.Type == "song" {
			song, err := m.catalog.Song(m.ctx, item.ItemID)
			if err != nil {
				return tracksFetchedMsg{err: err}
			}
			m.single = song
			return tracksFetchedMsg{album: &models.Album{
				CatalogItem: song.CatalogItem,
				Songs:       []models.Song{*song},
			}}
		}

		m.single = nil
		album, err := m.catalog.Album(m.ctx, item.ItemID)
		return tracksFetchedMsg{album: album, err: err}
	}
}

func (m *Model) startDownload() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		var result *tasks.AlbumRunResult
		var err error

		if m.single != nil {
			var track *tasks.TrackDownloadResult
			track, err = m.engine.DownloadSong(m.ctx, m.progressChan, m.single.ItemID, m.quality)
			if track != nil {
				result = &tasks.AlbumRunResult{
					Album:       m.album,
					Results:     []tasks.TrackDownloadResult{*track},
					TotalTracks: 1,
				}
				if track.Success {
					result.SuccessCount = 1
				} else {
					result.FailedCount = 1
				}
			}
		} else {
			result, err = m.engine.DownloadAlbum(m.ctx, m.progressChan, m.album.ItemID, tasks.AlbumDownloadOpts{
				Quality: m.quality,
			})
		}

		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return downloadCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return downloadCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderHomeList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.homeList.View(), helpView)
}

func (m *Model) renderTrackList() string {
	downloadKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "download"),
	)
	helpKeys := []key.Binding{downloadKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	name := shared.DecodeEntities(m.album.Name)
	title := styles.title.Render(fmt.Sprintf("Download '%s' at %s quality?", name, m.quality))
	info := fmt.Sprintf("\nAlbum: %s\nTracks: %d\n", name, len(m.album.Songs))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderDownload() string {
	title := styles.title.Render("Downloading")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchSong, tasks.FetchAlbum:
		phase = "Fetching details..."
	case tasks.DownloadTracks:
		phase = fmt.Sprintf("Downloading tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.RecordLibrary:
		phase = "Recording to library..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Download failed: %v\n\nPress r to start over, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to start over, q to quit")
	}

	title := styles.ok.Render("✓ Download Complete!")
	info := fmt.Sprintf(
		"\nAlbum: %s\nDownloaded: %d/%d tracks\nOutput: %s",
		shared.DecodeEntities(m.result.Album.Name),
		m.result.SuccessCount,
		m.result.TotalTracks,
		m.result.OutputDirectory,
	)

	var failed string
	if m.result.FailedCount > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed to download %d tracks:", m.result.FailedCount)))
		for _, track := range m.result.Results {
			if track.Error != nil {
				failed += fmt.Sprintf("\n  • %s", shared.DecodeEntities(track.Song.Name))
			}
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
