package main

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/atomicstack/tabstrip/internal/app"
	"github.com/atomicstack/tabstrip/internal/config"
)

func TestProbeTerminalsKeepsDescriptorOrder(t *testing.T) {
	info := probeTerminals(standardDescriptors())
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestProbeTerminalsRejectsPipes(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	info := probeTerminals([]descriptor{{"stdin", int(r.Fd())}, {"stdout", int(w.Fd())}, {"closed", -1}})
	if info.Detected != nil {
		t.Fatalf("expected no terminal detected, got %#v", info.Detected)
	}
	if err := requireTerminal(info); !errors.Is(err, errNoTerminal) {
		t.Fatalf("expected errNoTerminal, got %v", err)
	}
}

func TestRequireTerminalAcceptsStdout(t *testing.T) {
	info := ttyDetails{Probes: []ttyProbeResult{
		{Name: "stdin"},
		{Name: "stdout", IsTerminal: true},
	}}
	if err := requireTerminal(info); err != nil {
		t.Fatalf("expected stdout terminal to be enough, got %v", err)
	}
	info = ttyDetails{Probes: []ttyProbeResult{{Name: "stderr", IsTerminal: true}}}
	if err := requireTerminal(info); err == nil {
		t.Fatalf("expected stderr alone to be rejected")
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Tabs:       []string{"Received", "Send"},
			TabIndex:   1,
			AppName:    "ToothFile",
			Channel:    "toothfile.touchbar",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"tabs":    "Received,Send",
			"channel": "toothfile.touchbar",
			"width":   "80",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{"--tabs", "Received,Send"},
	}
	tty := ttyDetails{Probes: []ttyProbeResult{{Name: "stdout", IsTerminal: true, Width: 80, Height: 24}}}

	payload := startupTracePayload(cfg, tty)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["tabs"] != "Received,Send" {
		t.Fatalf("expected tabs flag %q, got %v", "Received,Send", flagsValue["tabs"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	bridge, ok := payload["bridge"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected bridge summary in payload")
	}
	if bridge["channel"] != "toothfile.touchbar" || bridge["tabCount"] != 2 || bridge["tabIndex"] != 1 {
		t.Fatalf("unexpected bridge summary %#v", bridge)
	}
	if got, ok := payload["tty"].(ttyDetails); !ok || len(got.Probes) != 1 {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if !reflect.DeepEqual(cfgValue.App, cfg.App) {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
