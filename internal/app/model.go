package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brain/internal/logging"
	"brain/internal/notes"
	"brain/internal/types"
)

const (
	defaultFetchTimeout = 10 * time.Second
	defaultWidth        = 80
	defaultHeight       = 24
	minBodyHeight       = 3
	chromeHeight        = 7
	pageStep            = 5
)

type uiMode int

const (
	uiModeLogin uiMode = iota
	uiModeBrowse
	uiModeSearch
)

type Options struct {
	Fetcher  notes.Fetcher
	Logger   logging.Logger
	Timeout  time.Duration
	Identity string
}

// Model is the terminal presentation of notes.State. It forwards user
// input to the state and renders snapshots; it owns no filtering rules.
type Model struct {
	state           *notes.State
	fetcher         notes.Fetcher
	logger          logging.Logger
	timeout         time.Duration
	mode            uiMode
	login           textinput.Model
	search          textinput.Model
	loader          spinner.Model
	viewport        viewport.Model
	cursor          int
	status          string
	statusErr       bool
	width           int
	height          int
	pendingIdentity string
	copyText        func(string) (clipboardMethod, error)
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	login := textinput.New()
	login.Placeholder = "Enter Workspace ID"
	login.Prompt = "> "
	login.Focus()

	search := textinput.New()
	search.Placeholder = "Search through notes..."
	search.Prompt = "/ "

	loader := spinner.New()
	loader.Spinner = spinner.Line
	loader.Style = lipgloss.NewStyle()

	vp := viewport.New(defaultWidth, defaultHeight-chromeHeight)

	return Model{
		state:           notes.NewState(logger),
		fetcher:         opts.Fetcher,
		logger:          logger,
		timeout:         timeout,
		mode:            uiModeLogin,
		login:           login,
		search:          search,
		loader:          loader,
		viewport:        vp,
		width:           defaultWidth,
		height:          defaultHeight,
		pendingIdentity: opts.Identity,
		copyText:        copyTextToClipboard,
	}
}

func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(&model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if m.pendingIdentity == "" {
		return textinput.Blink
	}
	identity := m.pendingIdentity
	m.pendingIdentity = ""
	return m.submitLogin(identity)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncBody()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case notesFetchedMsg:
		m.applyFetch(msg.result)
	case spinner.TickMsg:
		if !m.state.Loading() {
			return nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return cmd
	case tea.KeyMsg:
		switch m.mode {
		case uiModeLogin:
			return m.reduceLoginKey(msg)
		case uiModeSearch:
			return m.reduceSearchKey(msg)
		default:
			return m.reduceBrowseKey(msg)
		}
	}
	return nil
}

func (m *Model) submitLogin(identity string) tea.Cmd {
	req, err := m.state.Login(identity)
	if err != nil {
		return nil
	}
	m.mode = uiModeBrowse
	m.login.Blur()
	m.cursor = 0
	m.setStatus("loading notes for "+req.Identity, false)
	return tea.Batch(fetchNotesCmd(m.fetcher, req, m.timeout), m.loader.Tick)
}

func (m *Model) refresh() tea.Cmd {
	req, err := m.state.Retry()
	if err != nil {
		return nil
	}
	m.setStatus("refreshing notes", false)
	return tea.Batch(fetchNotesCmd(m.fetcher, req, m.timeout), m.loader.Tick)
}

func (m *Model) logout() tea.Cmd {
	m.state.Logout()
	m.mode = uiModeLogin
	m.login.SetValue("")
	m.search.Blur()
	m.cursor = 0
	m.setStatus("logged out", false)
	return m.login.Focus()
}

func (m *Model) applyFetch(result notes.RefreshResult) {
	outcome := m.state.Apply(result)
	switch {
	case outcome.Stale:
		return
	case outcome.Err != nil:
		m.setStatus(fetchErrorStatus(outcome.Err), true)
	default:
		m.setStatus(fmt.Sprintf("%d notes", outcome.Count), false)
	}
	m.clampCursor()
}

func fetchErrorStatus(err error) string {
	var fetchErr *notes.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Retryable() {
		return "fetch failed: " + fetchErr.Err.Error() + " (r to retry)"
	}
	return "fetch failed: " + err.Error()
}

func (m *Model) toggleCursor() {
	note, ok := m.cursorNote()
	if !ok {
		return
	}
	if !note.HasExtraContent() {
		m.setStatus("nothing to expand", false)
		return
	}
	m.state.ToggleExpand(note.ID)
}

func (m *Model) copyCursor() {
	note, ok := m.cursorNote()
	if !ok {
		return
	}
	method, err := m.copyText(noteClipboardText(note))
	if err != nil {
		m.logger.Warn("clipboard_copy_failed", logging.F("note_id", note.ID), logging.Err(err))
		m.setStatus("copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("copied note #%d (%s)", note.ID, method), false)
}

func (m *Model) cycleFilter(step int) {
	categories := m.state.Categories()
	current := 0
	for i, category := range categories {
		if category == m.state.Filter() {
			current = i
			break
		}
	}
	next := (current + step + len(categories)) % len(categories)
	m.state.SetSelectedFilter(categories[next])
	m.cursor = 0
	m.viewport.GotoTop()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := len(m.state.Visible())
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) cursorNote() (types.Note, bool) {
	visible := m.state.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return types.Note{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(minBodyHeight, height-chromeHeight)
	m.search.Width = max(10, width/2)
	m.login.Width = max(10, min(40, width-10))
}

func fetchNotesCmd(fetcher notes.Fetcher, req notes.RefreshRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return notesFetchedMsg{result: notes.Execute(ctx, fetcher, req)}
	}
}

type notesFetchedMsg struct {
	result notes.RefreshResult
}
