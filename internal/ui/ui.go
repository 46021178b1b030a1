package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
)

// Service is the slice of the enrichment service client the TUI depends on.
type Service interface {
	Recommendations(ctx context.Context) ([]models.Recommendation, error)
	Search(ctx context.Context, query string) ([]models.Recommendation, error)
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RecommendationsView ViewState = iota
	SearchView
	NowPlayingView
)

// Model represents the TUI application state. Remote results and playback
// selections live on the session so they survive view changes and errors.
type Model struct {
	ctx         context.Context
	view        ViewState
	svc         Service
	session     *Session
	width       int
	height      int
	recList     list.Model
	searchList  list.Model
	searchInput textinput.Model
	searchQuery string
	hasSearched bool
	loading     bool
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model with the provided dependencies. A nil
// session is replaced with a fresh one.
func NewModel(ctx context.Context, svc Service, session *Session) *Model {
	if session == nil {
		session = NewSession()
	}

	input := textinput.New()
	input.Placeholder = "song or artist"
	input.CharLimit = 120
	input.Width = 40

	recList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	recList.Title = "Recent Favorites"
	recList.SetShowHelp(false)

	searchList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	searchList.Title = "Results"
	searchList.SetShowHelp(false)

	return &Model{
		ctx:         ctx,
		view:        RecommendationsView,
		svc:         svc,
		session:     session,
		recList:     recList,
		searchList:  searchList,
		searchInput: input,
		loading:     true,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the TUI by fetching recommendations from the service.
func (m *Model) Init() tea.Cmd {
	return m.fetchRecommendations()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recList.SetSize(msg.Width-4, msg.Height-8)
		m.searchList.SetSize(msg.Width-4, msg.Height-12)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RecommendationsView:
			return m.handleRecommendationsKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case NowPlayingView:
			return m.handleNowPlayingKeys(msg)
		}

	case recommendationsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, m.recList.SetItems(recommendationItems(msg.recs))

	case searchResultsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if !msg.cached {
			m.session.StoreSearch(msg.query, msg.recs)
		}
		m.searchQuery = msg.query
		m.hasSearched = true
		m.searchInput.Blur()
		m.searchList.Title = fmt.Sprintf("Results for %q", msg.query)
		return m, m.searchList.SetItems(recommendationItems(msg.recs))

	case browserOpenedMsg:
		m.err = msg.err
		return m, nil
	}

	return m.updateComponents(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case RecommendationsView:
		return m.renderRecommendations()
	case SearchView:
		return m.renderSearch()
	case NowPlayingView:
		return m.renderNowPlaying()
	default:
		return ""
	}
}

func (m *Model) handleRecommendationsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/", "s":
		m.view = SearchView
		m.err = nil
		m.searchInput.Focus()
		return m, textinput.Blink
	case "r":
		m.loading = true
		m.err = nil
		return m, m.fetchRecommendations()
	case "enter":
		selected := m.recList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(recommendationItem); ok {
				m.session.SetNowPlaying(item.rec)
				m.view = NowPlayingView
				m.err = nil
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.recList, cmd = m.recList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchInput.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.searchInput.Blur()
			m.view = RecommendationsView
			m.err = nil
			return m, nil
		case "enter":
			query := strings.TrimSpace(m.searchInput.Value())
			if query == "" {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, m.search(query)
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = RecommendationsView
		m.err = nil
		return m, nil
	case "/", "s":
		m.searchInput.Focus()
		return m, textinput.Blink
	case "enter":
		selected := m.searchList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(recommendationItem); ok {
				m.session.SetNowPlaying(item.rec)
				m.view = NowPlayingView
				m.err = nil
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchList, cmd = m.searchList.Update(msg)
	return m, cmd
}

func (m *Model) handleNowPlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = RecommendationsView
		m.err = nil
		return m, nil
	case "o":
		return m, m.openNowPlaying()
	}
	return m, nil
}

// updateComponents forwards messages the view handlers did not consume, such
// as cursor blinks and list animation frames.
func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case RecommendationsView:
		m.recList, cmd = m.recList.Update(msg)
	case SearchView:
		if m.searchInput.Focused() {
			m.searchInput, cmd = m.searchInput.Update(msg)
		} else {
			m.searchList, cmd = m.searchList.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) fetchRecommendations() tea.Cmd {
	return func() tea.Msg {
		recs, err := m.svc.Recommendations(m.ctx)
		return recommendationsMsg{recs: recs, err: err}
	}
}

// search serves fresh cached results without a network call, otherwise it
// queries the service. A failed fetch never evicts the cached entry.
func (m *Model) search(query string) tea.Cmd {
	if recs, ok := m.session.CachedSearch(query); ok {
		return func() tea.Msg {
			return searchResultsMsg{query: query, recs: recs, cached: true}
		}
	}

	return func() tea.Msg {
		recs, err := m.svc.Search(m.ctx, query)
		return searchResultsMsg{query: query, recs: recs, err: err}
	}
}

// openNowPlaying launches the embedded player for the selected track in the
// system browser. Playback starts immediately via the autoplay parameter.
func (m *Model) openNowPlaying() tea.Cmd {
	rec := m.session.NowPlaying()
	if rec == nil || !rec.HasVideo() {
		return nil
	}

	url := rec.EmbedURL()
	return func() tea.Msg {
		return browserOpenedMsg{err: shared.OpenBrowser(url)}
	}
}

func (m *Model) renderRecommendations() string {
	if m.loading {
		return fmt.Sprintf("%s\n\nLoading recommendations...", styles.title.Render("Replay"))
	}

	if m.err != nil {
		return m.renderUnavailable(m.keys.refresh)
	}

	if len(m.recList.Items()) == 0 {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.search, m.keys.refresh, m.keys.quit})
		return fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			styles.title.Render("Replay"),
			styles.warn.Render("No playable tracks right now."),
			helpView,
		)
	}

	view := m.recList.View()
	if rec := m.session.NowPlaying(); rec != nil {
		view = fmt.Sprintf("%s\n\n%s", view, styles.ok.Render(fmt.Sprintf("▶ %s - %s", rec.Artist, rec.Name)))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", view, helpView)
}

func (m *Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("\nSearching...\n")
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(styles.err.Render("The service is unavailable. Try again in a moment."))
		b.WriteString("\n")
	case m.hasSearched && len(m.searchList.Items()) == 0:
		b.WriteString("\n")
		b.WriteString(styles.warn.Render(fmt.Sprintf("No playable results for %q.", m.searchQuery)))
		b.WriteString("\n")
	case m.hasSearched:
		b.WriteString("\n")
		b.WriteString(m.searchList.View())
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

func (m *Model) renderNowPlaying() string {
	rec := m.session.NowPlaying()
	if rec == nil {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", styles.warn.Render("Nothing is playing."), helpView)
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Now Playing"))
	b.WriteString("\n\n")
	b.WriteString(styles.ok.Render(fmt.Sprintf("▶ %s - %s", rec.Artist, rec.Name)))
	b.WriteString("\n\n")
	if rec.Playcount > 0 {
		b.WriteString(fmt.Sprintf("Scrobbles: %d\n", rec.Playcount))
	}
	if rec.URL != "" {
		b.WriteString(fmt.Sprintf("Last.fm: %s\n", rec.URL))
	}
	b.WriteString(fmt.Sprintf("Video: %s\n", rec.WatchURL()))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.err.Render("Could not open the browser."))
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.open, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

// renderUnavailable shows a transient failure notice. Session state is left
// alone so cached results are still there after a retry.
func (m *Model) renderUnavailable(retry key.Binding) string {
	helpView := m.help.ShortHelpView([]key.Binding{retry, m.keys.quit})
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		styles.title.Render("Replay"),
		styles.err.Render("The service is unavailable. Try again in a moment."),
		helpView,
	)
}
