package config

import (
	"reflect"
	"testing"

	"github.com/atomicstack/tabstrip/internal/protocol"
	"github.com/atomicstack/tabstrip/internal/touchbar"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"Received", "Send", "Tracker", "Requests", "Directory", "Order", "Settings"}
	if !reflect.DeepEqual(cfg.App.Tabs, want) {
		t.Fatalf("unexpected default tabs %v", cfg.App.Tabs)
	}
	if cfg.App.AppName != touchbar.DefaultAppName || cfg.App.Channel != protocol.ChannelName {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{
		"TABSTRIP_TABS=Inbox, Outbox",
		"TABSTRIP_TAB_INDEX=1",
		"TABSTRIP_APP_NAME=Courier",
		"TABSTRIP_TRACE=true",
		"TABSTRIP_WIDTH=not-a-number",
	}
	cfg, err := LoadArgs([]string{"-tab-index", "0", "-channel", "example.tabs", "-log-file", "/tmp/strip.log"}, environ)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg.App.Tabs, []string{"Inbox", "Outbox"}) {
		t.Fatalf("expected tabs from environment, got %v", cfg.App.Tabs)
	}
	if cfg.App.TabIndex != 0 {
		t.Fatalf("expected flag to override env index, got %d", cfg.App.TabIndex)
	}
	if cfg.App.AppName != "Courier" || cfg.App.Channel != "example.tabs" {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if cfg.App.Width != 0 {
		t.Fatalf("expected invalid env width to fall back to 0, got %d", cfg.App.Width)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/strip.log" {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}
	if cfg.Flags["channel"] != "example.tabs" || cfg.Flags["tabIndex"] != "0" {
		t.Fatalf("unexpected flag snapshot %#v", cfg.Flags)
	}
}

func TestLoadArgsRejectsNegativeSizes(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected negative width error")
	}
	if _, err := LoadArgs([]string{"-height", "-3"}, nil); err == nil {
		t.Fatalf("expected negative height error")
	}
}

func TestValidateRejectsUnusableSessions(t *testing.T) {
	cases := map[string][]string{
		"empty tabs":    {"-tabs", " , "},
		"index high":    {"-tabs", "A,B", "-tab-index", "2"},
		"index low":     {"-tab-index", "-1"},
		"empty channel": {"-channel", " "},
	}
	for name, args := range cases {
		cfg, err := LoadArgs(args, nil)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
