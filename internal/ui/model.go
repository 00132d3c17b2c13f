package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/tabstrip/internal/host"
	"github.com/atomicstack/tabstrip/internal/strip"
	"github.com/atomicstack/tabstrip/internal/theme"
	"github.com/atomicstack/tabstrip/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeTabs Mode = iota
	ModeSearch
)

const (
	defaultWidth  = 80
	searchPrompt  = "find tab: "
	searchLimit   = 64
	commandBudget = 2 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options describes how the model starts.
type Options struct {
	Tabs       []string
	TabIndex   int
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model for the host application.
type Model struct {
	host   *host.Endpoint
	window *strip.Window
	bus    *command.Bus

	tabs     []string
	tabIndex int

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	mode    Mode
	search  textinput.Model
	errMsg  string
	infoMsg string
	pending string

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the host endpoint and the strip window into a model.
func NewModel(endpoint *host.Endpoint, window *strip.Window, opts Options) *Model {
	search := textinput.New()
	search.Prompt = searchPrompt
	search.CharLimit = searchLimit
	search.Cursor.SetMode(cursor.CursorStatic)
	if styles.SearchPrompt != nil {
		search.PromptStyle = *styles.SearchPrompt
	}
	if styles.SearchText != nil {
		search.TextStyle = *styles.SearchText
	}
	m := &Model{
		host:       endpoint,
		window:     window,
		bus:        command.New(commandBudget),
		tabs:       append([]string(nil), opts.Tabs...),
		tabIndex:   opts.TabIndex,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		mode:       ModeTabs,
		search:     search,
		width:      defaultWidth,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.host != nil {
		cmds = append(cmds, waitForBridgeEvent(m.host), m.setupCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == ModeSearch {
		if handled, cmd := m.handleSearch(msg); handled {
			return m, cmd
		}
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleResultMsg,
		reflect.TypeOf(bridgeEventMsg{}):    m.handleBridgeEventMsg,
		reflect.TypeOf(bridgeDoneMsg{}):     m.handleBridgeDoneMsg,
		reflect.TypeOf(stripTapMsg{}):       m.handleStripTapMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

func (m *Model) clearStatus() {
	m.errMsg = ""
	m.infoMsg = ""
}
