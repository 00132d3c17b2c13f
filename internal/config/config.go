package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tabstrip/internal/app"
	"github.com/atomicstack/tabstrip/internal/protocol"
	"github.com/atomicstack/tabstrip/internal/touchbar"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

// DefaultTabs is the tab set shown when none is configured.
const DefaultTabs = "Received,Send,Tracker,Requests,Directory,Order,Settings"

const (
	envTabs       = "TABSTRIP_TABS"
	envTabIndex   = "TABSTRIP_TAB_INDEX"
	envAppName    = "TABSTRIP_APP_NAME"
	envChannel    = "TABSTRIP_CHANNEL"
	envWidth      = "TABSTRIP_WIDTH"
	envHeight     = "TABSTRIP_HEIGHT"
	envShowFooter = "TABSTRIP_FOOTER"
	envVerbose    = "TABSTRIP_VERBOSE"
	envTrace      = "TABSTRIP_TRACE"
	envLogFile    = "TABSTRIP_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tabstrip", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	tabs := fs.String("tabs", envOrDefault(env, envTabs, DefaultTabs), "comma-separated tab labels")
	tabIndex := fs.Int("tab-index", envOrInt(env, envTabIndex, 0), "initially active tab (0-based)")
	appName := fs.String("app-name", envOrDefault(env, envAppName, touchbar.DefaultAppName), "application name shown on the strip")
	channelName := fs.String("channel", envOrDefault(env, envChannel, protocol.ChannelName), "bridge channel name")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Tabs:       splitTabs(*tabs),
			TabIndex:   *tabIndex,
			AppName:    *appName,
			Channel:    *channelName,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Verbose:    *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"tabs":     *tabs,
			"tabIndex": strconv.Itoa(*tabIndex),
			"appName":  *appName,
			"channel":  *channelName,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func splitTabs(value string) []string {
	parts := strings.Split(value, ",")
	tabs := make([]string, 0, len(parts))
	for _, part := range parts {
		if label := strings.TrimSpace(part); label != "" {
			tabs = append(tabs, label)
		}
	}
	return tabs
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the tab set and start index describe a usable session.
func Validate(cfg Config) error {
	if len(cfg.App.Tabs) == 0 {
		return errors.New("tabs must name at least one tab")
	}
	if !protocol.ValidIndex(cfg.App.TabIndex, len(cfg.App.Tabs)) {
		return fmt.Errorf("tab-index %d outside [0, %d)", cfg.App.TabIndex, len(cfg.App.Tabs))
	}
	if strings.TrimSpace(cfg.App.Channel) == "" {
		return errors.New("channel must not be empty")
	}
	return nil
}
