// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/config"
	"github.com/jeranaias/courier/internal/ui/components"
	"github.com/jeranaias/courier/internal/ui/styles"
)

// =============================================================================
// PAGES
// =============================================================================

// Page identifies one screen of the interface.
type Page int

const (
	PageHome Page = iota
	PageHealth
	PageHistory
	PageMessage
)

var pageTitles = []string{"Home", "Health", "History", "Message"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageTitles) {
		return "Unknown"
	}
	return pageTitles[p]
}

// Home page focus targets.
const (
	focusName = iota
	focusMessage
	focusSend
	focusCount
)

// ErrNameRequired is shown when a message is submitted without a name.
var ErrNameRequired = errors.New("name is required")

// =============================================================================
// SERVICE
// =============================================================================

// Service is the backend surface the interface drives. *api.Client satisfies it.
type Service interface {
	SendMessage(ctx context.Context, msg api.MessageRequest) (*api.MessageResponse, error)
	GetHistory(ctx context.Context, limit int) (*api.HistoryResponse, error)
	GetHistoryByID(ctx context.Context, id string) (*api.HistoryResponse, error)
	ClearHistory(ctx context.Context) (*api.Response, error)
	HealthCheck(ctx context.Context) (*api.Response, error)
	TestConnection(ctx context.Context) bool
	SetBaseURL(baseURL string)
	BaseURL() string
}

// =============================================================================
// PAGE STATE
// =============================================================================

type homeState struct {
	loading bool
	reply   *api.MessageResponseData
	errText string
}

type healthState struct {
	loading bool
	body    string
	errText string
	checked time.Time
}

type historyState struct {
	loading      bool
	loaded       bool
	errText      string
	notice       string
	confirmClear bool
	clearing     bool
	lookupActive bool
	detail       *api.HistoryItem
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures New.
type Options struct {
	Client Service
	Config *config.Config
	// ConfigPath is where the profile is saved. Empty disables saving.
	ConfigPath string
	Theme      *styles.Theme
	Logger     *slog.Logger
	// Reloads delivers config file changes. Nil disables live reload.
	Reloads <-chan ConfigReloadedMsg

	// URLOverride and NameOverride come from command line flags. They win
	// over reloaded values and are never saved.
	URLOverride  string
	NameOverride string
}

// Model is the root Bubble Tea model.
type Model struct {
	client     Service
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	reloads    <-chan ConfigReloadedMsg

	urlOverride  string
	nameOverride string

	theme    *styles.Theme
	keys     KeyMap
	help     help.Model
	header   *components.Header
	status   *components.StatusBar
	table    *components.HistoryTable
	markdown *components.Markdown
	jsonView components.JSONView
	spinner  spinner.Model
	viewport viewport.Model

	page   Page
	width  int
	height int

	nameInput    textinput.Model
	messageInput textinput.Model
	lookupInput  textinput.Model
	focus        int

	home      homeState
	health    healthState
	history   historyState
	lastReply *api.MessageResponseData
	lastName  string

	quitting bool
}

// New creates the root model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewThemeFor(cfg.UI.Theme)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Your name"
	name.CharLimit = 100
	name.SetValue(cfg.Profile.Name)
	name.Focus()

	message := textinput.New()
	message.Prompt = ""
	message.Placeholder = "Type a message"
	message.CharLimit = 2000

	lookup := textinput.New()
	lookup.Prompt = "id: "
	lookup.Placeholder = "history item id"

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	header := components.NewHeader(theme)
	header.SetName(cfg.Profile.Name)
	if opts.Client != nil {
		header.SetAPIURL(opts.Client.BaseURL())
	}

	status := components.NewStatusBar(theme, pageTitles...)
	status.Shortcuts = []components.Shortcut{
		{Key: "enter", Desc: "submit"},
		{Key: "F1-F4", Desc: "pages"},
		{Key: "?", Desc: "help"},
	}

	return Model{
		client:       opts.Client,
		cfg:          cfg,
		configPath:   opts.ConfigPath,
		logger:       logger,
		reloads:      opts.Reloads,
		urlOverride:  opts.URLOverride,
		nameOverride: opts.NameOverride,
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		header:       header,
		status:       status,
		table:        components.NewHistoryTable(theme),
		markdown:     &components.Markdown{Disabled: !cfg.UI.RenderMarkdown},
		jsonView:     components.JSONView{Highlight: cfg.UI.HighlightJSON},
		spinner:      sp,
		viewport:     viewport.New(80, 10),
		nameInput:    name,
		messageInput: message,
		lookupInput:  lookup,
		lastName:     cfg.Profile.Name,
		width:        80,
		height:       24,
	}
}

// Init starts the cursor blink, the initial connection test and the
// config reload listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.testConnectionCmd()}
	if m.reloads != nil {
		cmds = append(cmds, waitForReload(m.reloads))
	}
	return tea.Batch(cmds...)
}

// Page returns the visible page.
func (m Model) Page() Page {
	return m.page
}

// busy reports whether any page has a request in flight.
func (m Model) busy() bool {
	return m.home.loading || m.health.loading || m.history.loading || m.history.clearing
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MessageSentMsg:
		return m.handleMessageSent(msg)

	case HealthCheckedMsg:
		return m.handleHealthChecked(msg)

	case ConnectionTestedMsg:
		if msg.OK {
			m.status.SetConnection(components.ConnectionOnline)
		} else {
			m.status.SetConnection(components.ConnectionOffline)
		}
		return m, nil

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case HistoryLookupMsg:
		return m.handleHistoryLookup(msg)

	case HistoryClearedMsg:
		return m.handleHistoryCleared(msg)

	case ProfileSavedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to save profile", "error", msg.Err)
		} else {
			m.logger.Debug("profile saved", "name", msg.Name)
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to whichever input currently has focus.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.page == PageHome && m.focus == focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case m.page == PageHome && m.focus == focusMessage:
		m.messageInput, cmd = m.messageInput.Update(msg)
	case m.page == PageHistory && m.history.lookupActive:
		m.lookupInput, cmd = m.lookupInput.Update(msg)
	case m.page == PageMessage:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.status.SetWidth(msg.Width)
	m.table.SetWidth(msg.Width - 2)
	m.help.Width = msg.Width

	inputWidth := msg.Width - 8
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.nameInput.Width = inputWidth
	m.messageInput.Width = inputWidth
	m.lookupInput.Width = inputWidth

	m.viewport.Width = msg.Width - 2
	m.viewport.Height = msg.Height - chromeHeight
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) inputFocused() bool {
	return m.page == PageHome && m.focus != focusSend ||
		m.page == PageHistory && m.history.lookupActive
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// A pending clear confirmation swallows every other key.
	if m.history.confirmClear {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.history.confirmClear = false
			return m.startClear()
		case key.Matches(msg, m.keys.Deny):
			m.history.confirmClear = false
			m.history.notice = "Clear cancelled."
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Back) {
		if m.page == PageHistory && (m.history.lookupActive || m.history.detail != nil) {
			m.history.lookupActive = false
			m.history.detail = nil
			m.lookupInput.Blur()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Home):
		return m.switchPage(PageHome)
	case key.Matches(msg, m.keys.Health):
		return m.switchPage(PageHealth)
	case key.Matches(msg, m.keys.History):
		return m.switchPage(PageHistory)
	case key.Matches(msg, m.keys.Message):
		return m.switchPage(PageMessage)
	}

	if !m.inputFocused() {
		switch msg.String() {
		case "1", "2", "3", "4":
			return m.switchPage(Page(msg.Runes[0] - '1'))
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch m.page {
	case PageHome:
		return m.handleHomeKey(msg)
	case PageHealth:
		return m.handleHealthKey(msg)
	case PageHistory:
		return m.handleHistoryKey(msg)
	}
	return m.updateFocused(msg)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevField):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.testConnectionCmd()
	}
	return m.updateFocused(msg)
}

func (m Model) handleHealthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) || key.Matches(msg, m.keys.Refresh) {
		return m.startHealthCheck()
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.history.lookupActive {
		if key.Matches(msg, m.keys.Submit) {
			return m.startLookup()
		}
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.startHistoryLoad()
	case key.Matches(msg, m.keys.Clear):
		if !m.history.clearing {
			m.history.confirmClear = true
			m.history.notice = ""
		}
		return m, nil
	case key.Matches(msg, m.keys.Lookup):
		m.history.lookupActive = true
		m.history.errText = ""
		m.lookupInput.SetValue("")
		return m, m.lookupInput.Focus()
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown()
	case key.Matches(msg, m.keys.Submit):
		m.history.detail = m.table.SelectedItem()
	}
	return m, nil
}

func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.focus = i
	m.nameInput.Blur()
	m.messageInput.Blur()
	switch i {
	case focusName:
		return m, m.nameInput.Focus()
	case focusMessage:
		return m, m.messageInput.Focus()
	}
	return m, nil
}

func (m Model) switchPage(p Page) (tea.Model, tea.Cmd) {
	if p < PageHome || p > PageMessage {
		return m, nil
	}
	m.page = p
	m.status.SetActive(int(p))

	switch p {
	case PageHistory:
		if !m.history.loaded && !m.history.loading {
			return m.startHistoryLoad()
		}
	case PageMessage:
		m.refreshViewport()
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.home.loading {
		return m, nil
	}

	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.home.reply = nil
		m.home.errText = ErrNameRequired.Error()
		return m, nil
	}

	m.home.loading = true
	m.home.reply = nil
	m.home.errText = ""
	m.status.SetStatus(components.StatusLoading, "sending message")

	req := api.MessageRequest{Name: name, Message: m.messageInput.Value()}
	cmds := []tea.Cmd{m.sendCmd(req), m.spinner.Tick}
	if name != m.lastName {
		m.lastName = name
		m.nameOverride = ""
		m.header.SetName(name)
		cmds = append(cmds, m.saveProfileCmd(name))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) startHealthCheck() (tea.Model, tea.Cmd) {
	if m.health.loading {
		return m, nil
	}
	m.health.loading = true
	m.health.body = ""
	m.health.errText = ""
	m.status.SetStatus(components.StatusLoading, "checking health")
	return m, tea.Batch(m.healthCmd(), m.testConnectionCmd(), m.spinner.Tick)
}

func (m Model) startHistoryLoad() (tea.Model, tea.Cmd) {
	if m.history.loading {
		return m, nil
	}
	m.history.loading = true
	m.history.errText = ""
	m.status.SetStatus(components.StatusLoading, "loading history")
	return m, tea.Batch(m.historyCmd(m.cfg.History.DefaultLimit), m.spinner.Tick)
}

func (m Model) startLookup() (tea.Model, tea.Cmd) {
	id := strings.TrimSpace(m.lookupInput.Value())
	if id == "" {
		m.history.errText = "id is required"
		return m, nil
	}
	if m.history.loading {
		return m, nil
	}
	m.history.loading = true
	m.history.errText = ""
	m.history.detail = nil
	m.status.SetStatus(components.StatusLoading, "looking up "+id)
	return m, tea.Batch(m.lookupCmd(id), m.spinner.Tick)
}

func (m Model) startClear() (tea.Model, tea.Cmd) {
	if m.history.clearing {
		return m, nil
	}
	m.history.clearing = true
	m.history.errText = ""
	m.history.notice = ""
	m.status.SetStatus(components.StatusLoading, "clearing history")
	return m, tea.Batch(m.clearCmd(), m.spinner.Tick)
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

// failure records a request error in the status bar and returns its display text.
func (m *Model) failure(err error) string {
	if api.IsNetwork(err) {
		m.status.SetConnection(components.ConnectionOffline)
	}
	m.status.SetStatus(components.StatusError, err.Error())
	m.logger.Warn("request failed", "error", err)
	return err.Error()
}

// rejected records a success:false envelope and returns its display text.
func (m *Model) rejected(reason string) string {
	text := "Error: " + reason
	m.status.SetConnection(components.ConnectionOnline)
	m.status.SetStatus(components.StatusError, reason)
	return text
}

func (m *Model) succeeded(message string) {
	m.status.SetConnection(components.ConnectionOnline)
	m.status.SetStatus(components.StatusReady, message)
}

func (m Model) handleMessageSent(msg MessageSentMsg) (tea.Model, tea.Cmd) {
	m.home.loading = false
	m.home.reply = nil
	m.home.errText = ""

	switch {
	case msg.Err != nil:
		m.home.errText = m.failure(msg.Err)
	case msg.Response == nil:
		m.home.errText = m.failure(errors.New("empty response"))
	case !msg.Response.Success:
		m.home.errText = m.rejected(msg.Response.Error)
	case msg.Response.Data == nil:
		m.home.errText = m.rejected("response has no data")
	default:
		m.home.reply = msg.Response.Data
		m.lastReply = msg.Response.Data
		m.messageInput.SetValue("")
		m.succeeded("message sent")
		// History is stale once a message lands.
		m.history.loaded = false
		m.refreshViewport()
	}
	return m, nil
}

func (m Model) handleHealthChecked(msg HealthCheckedMsg) (tea.Model, tea.Cmd) {
	m.health.loading = false
	m.health.checked = time.Now()
	m.health.body = ""
	m.health.errText = ""

	if msg.Err != nil {
		m.health.errText = m.failure(msg.Err)
		return m, nil
	}
	if msg.Response == nil {
		m.health.errText = m.failure(errors.New("empty response"))
		return m, nil
	}

	m.health.body = m.jsonView.RenderValue(msg.Response)
	if !msg.Response.Success {
		m.health.errText = m.rejected(msg.Response.Error)
		return m, nil
	}
	m.succeeded("backend healthy")
	return m, nil
}

func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	m.history.loading = false
	m.history.errText = ""

	switch {
	case msg.Err != nil:
		m.history.errText = m.failure(msg.Err)
	case msg.Response == nil:
		m.history.errText = m.failure(errors.New("empty response"))
	case !msg.Response.Success:
		m.history.errText = m.rejected(msg.Response.Error)
	default:
		m.history.loaded = true
		m.table.SetData(msg.Response.Data)
		m.succeeded(fmt.Sprintf("loaded %d item(s)", len(m.table.Items)))
	}
	return m, nil
}

func (m Model) handleHistoryLookup(msg HistoryLookupMsg) (tea.Model, tea.Cmd) {
	m.history.loading = false

	switch {
	case msg.Err != nil:
		if api.IsNotFound(msg.Err) {
			m.history.errText = fmt.Sprintf("history item %q not found", msg.ID)
			m.status.SetStatus(components.StatusError, "not found")
			return m, nil
		}
		m.history.errText = m.failure(msg.Err)
	case msg.Response == nil:
		m.history.errText = m.failure(errors.New("empty response"))
	case !msg.Response.Success:
		m.history.errText = m.rejected(msg.Response.Error)
	case msg.Response.Data == nil || len(msg.Response.Data.History) == 0:
		m.history.errText = fmt.Sprintf("history item %q not found", msg.ID)
		m.status.SetStatus(components.StatusError, "not found")
	default:
		item := msg.Response.Data.History[0]
		m.history.detail = &item
		m.history.lookupActive = false
		m.lookupInput.Blur()
		m.succeeded("found " + msg.ID)
	}
	return m, nil
}

func (m Model) handleHistoryCleared(msg HistoryClearedMsg) (tea.Model, tea.Cmd) {
	m.history.clearing = false

	switch {
	case msg.Err != nil:
		m.history.errText = m.failure(msg.Err)
		return m, nil
	case msg.Response == nil:
		m.history.errText = m.failure(errors.New("empty response"))
		return m, nil
	case !msg.Response.Success:
		m.history.errText = m.rejected(msg.Response.Error)
		return m, nil
	}

	var result struct {
		Cleared int `json:"cleared"`
	}
	if err := api.DecodeData(msg.Response, &result); err != nil {
		m.logger.Debug("clear reply carried no count", "error", err)
	}
	m.history.notice = fmt.Sprintf("Cleared %d item(s).", result.Cleared)
	m.history.detail = nil
	m.table.SetData(nil)
	m.succeeded("history cleared")
	return m.startHistoryLoad()
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.reloads)
	if msg.Err != nil {
		m.status.SetStatus(components.StatusError, "config reload failed: "+msg.Err.Error())
		m.logger.Warn("config reload failed", "error", msg.Err)
		return m, next
	}
	if msg.Config == nil {
		return m, next
	}

	m.cfg = msg.Config
	if m.urlOverride != "" {
		m.cfg.Profile.APIURL = m.urlOverride
	}
	if m.nameOverride != "" {
		m.cfg.Profile.Name = m.nameOverride
	}
	m.markdown.Disabled = !m.cfg.UI.RenderMarkdown
	m.jsonView.Highlight = m.cfg.UI.HighlightJSON

	if name := strings.TrimSpace(m.cfg.Profile.Name); name != "" && name != m.lastName {
		m.lastName = name
		m.nameInput.SetValue(name)
		m.header.SetName(name)
	}

	url := m.cfg.ActiveAPIURL()
	if m.client != nil && api.NormalizeBaseURL(url) != m.client.BaseURL() {
		m.client.SetBaseURL(url)
		m.header.SetAPIURL(m.client.BaseURL())
		m.status.SetConnection(components.ConnectionUnknown)
		m.history.loaded = false
		m.logger.Info("backend changed", "url", m.client.BaseURL())
		return m, tea.Batch(next, m.testConnectionCmd())
	}
	m.status.SetStatus(components.StatusReady, "config reloaded")
	return m, next
}

// =============================================================================
// COMMANDS
// =============================================================================

// requestContext bounds a single call. The client's own timeout applies too.
func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (m Model) sendCmd(req api.MessageRequest) tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		resp, err := client.SendMessage(ctx, req)
		return MessageSentMsg{Request: req, Response: resp, Err: err}
	}
}

func (m Model) healthCmd() tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		resp, err := client.HealthCheck(ctx)
		return HealthCheckedMsg{Response: resp, Err: err}
	}
}

func (m Model) testConnectionCmd() tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return ConnectionTestedMsg{OK: client.TestConnection(ctx)}
	}
}

func (m Model) historyCmd(limit int) tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		resp, err := client.GetHistory(ctx, limit)
		return HistoryLoadedMsg{Response: resp, Err: err}
	}
}

func (m Model) lookupCmd(id string) tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		resp, err := client.GetHistoryByID(ctx, id)
		return HistoryLookupMsg{ID: id, Response: resp, Err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		resp, err := client.ClearHistory(ctx)
		return HistoryClearedMsg{Response: resp, Err: err}
	}
}

// saveProfileCmd stores only the name. The URL on disk is left as it is.
func (m Model) saveProfileCmd(name string) tea.Cmd {
	path := m.configPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		err := config.UpdateProfile(path, func(p *config.ProfileConfig) { p.Name = name })
		return ProfileSavedMsg{Name: name, Err: err}
	}
}

func waitForReload(ch <-chan ConfigReloadedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
