package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/tabstrip/internal/app"
	"github.com/atomicstack/tabstrip/internal/config"
	"github.com/atomicstack/tabstrip/internal/logging"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("tabstrip needs an interactive terminal on stdin or stdout")

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := probeTerminals(standardDescriptors())
	events.App.Start(startupTracePayload(runtimeCfg, tty))
	if err := requireTerminal(tty); err != nil {
		events.App.Stop(err)
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err := app.Run(runtimeCfg.App)
	events.App.Stop(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"bridge": map[string]interface{}{
			"channel":  cfg.App.Channel,
			"appName":  cfg.App.AppName,
			"tabCount": len(cfg.App.Tabs),
			"tabIndex": cfg.App.TabIndex,
		},
		"tty": tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

// probeTerminals inspects descriptors for terminal support and dimensions.
// The first terminal with a readable size becomes the detected one.
func probeTerminals(fds []descriptor) ttyDetails {
	results := make([]ttyProbeResult, 0, len(fds))
	var detected *ttyDetected
	for _, probe := range fds {
		entry := ttyProbeResult{Name: probe.name}
		if probe.fd >= 0 && term.IsTerminal(probe.fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(probe.fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}

// requireTerminal fails unless stdin or stdout is a terminal; the program
// reads keys from one and draws to the other.
func requireTerminal(tty ttyDetails) error {
	for _, probe := range tty.Probes {
		if probe.IsTerminal && (probe.Name == "stdin" || probe.Name == "stdout") {
			return nil
		}
	}
	return errNoTerminal
}
