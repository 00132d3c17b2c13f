package app

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tabstrip/internal/channel"
	"github.com/atomicstack/tabstrip/internal/host"
	"github.com/atomicstack/tabstrip/internal/protocol"
	"github.com/atomicstack/tabstrip/internal/strip"
	"github.com/atomicstack/tabstrip/internal/touchbar"
	"github.com/atomicstack/tabstrip/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	queueDepth = 16
	windowName = "main"
)

// Config describes user-provided application options.
type Config struct {
	Tabs       []string
	TabIndex   int
	AppName    string
	Channel    string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Bridge holds both ends of a wired tab bridge.
type Bridge struct {
	Messenger *channel.Messenger
	Host      *host.Endpoint
	Adapter   *touchbar.Adapter
	Window    *strip.Window
}

// Close stops dispatch on both sides and ends host event delivery.
func (b *Bridge) Close() {
	b.Messenger.Close()
	b.Host.Close()
}

// NewBridge wires the host endpoint and the native adapter onto one messenger.
func NewBridge(cfg Config) (*Bridge, error) {
	name := cfg.Channel
	if name == "" {
		name = protocol.ChannelName
	}
	appName := cfg.AppName
	if appName == "" {
		appName = touchbar.DefaultAppName
	}
	if len(cfg.Tabs) > 0 && !protocol.ValidIndex(cfg.TabIndex, len(cfg.Tabs)) {
		return nil, fmt.Errorf("start index %d outside %d tabs", cfg.TabIndex, len(cfg.Tabs))
	}
	messenger := channel.NewMessenger(queueDepth)
	window := strip.NewWindow(windowName, appName)
	adapter := touchbar.New(touchbar.StaticWindow(window), strip.Factory(), touchbar.WithAppName(appName))
	adapter.Register(messenger.Channel(channel.SideNative, name))
	endpoint := host.Register(messenger.Channel(channel.SideHost, name))
	return &Bridge{Messenger: messenger, Host: endpoint, Adapter: adapter, Window: window}, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	bridge, err := NewBridge(cfg)
	if err != nil {
		return fmt.Errorf("wire bridge: %w", err)
	}
	defer bridge.Close()
	model := ui.NewModel(bridge.Host, bridge.Window, ui.Options{
		Tabs:       cfg.Tabs,
		TabIndex:   cfg.TabIndex,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
