package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeSetupAcceptsWellFormedPayload(t *testing.T) {
	args, err := DecodeSetup(json.RawMessage(`{"tabs":["Received","Send","Tracker"],"tabIndex":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args.Tabs) != 3 || args.Tabs[2] != "Tracker" {
		t.Fatalf("unexpected tabs %#v", args.Tabs)
	}
	if args.TabIndex != 2 {
		t.Fatalf("expected tab index 2, got %d", args.TabIndex)
	}
}

func TestDecodeSetupNamesOffendingField(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		field string
	}{
		{"no payload", ``, ""},
		{"not an object", `[1,2]`, ""},
		{"missing tabs", `{"tabIndex":0}`, KeyTabs},
		{"tabs wrong type", `{"tabs":"A,B","tabIndex":0}`, KeyTabs},
		{"tabs with number", `{"tabs":["A",3],"tabIndex":0}`, KeyTabs},
		{"empty tabs", `{"tabs":[],"tabIndex":0}`, KeyTabs},
		{"missing index", `{"tabs":["A"]}`, KeyTabIndex},
		{"index as string", `{"tabs":["A"],"tabIndex":"0"}`, KeyTabIndex},
		{"fractional index", `{"tabs":["A"],"tabIndex":0.5}`, KeyTabIndex},
		{"null index", `{"tabs":["A"],"tabIndex":null}`, KeyTabIndex},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSetup(json.RawMessage(tc.raw))
			if !errors.Is(err, ErrInvalidArguments) {
				t.Fatalf("expected invalid arguments, got %v", err)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if perr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, perr.Field)
			}
			if perr.Method != MethodSetup {
				t.Fatalf("expected method %q, got %q", MethodSetup, perr.Method)
			}
		})
	}
}

func TestDecodeUpdate(t *testing.T) {
	args, err := DecodeUpdate(json.RawMessage(`{"tabIndex":-1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.TabIndex != -1 {
		t.Fatalf("expected -1 to decode untouched, got %d", args.TabIndex)
	}
	if _, err := DecodeUpdate(json.RawMessage(`{"index":1}`)); !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("expected invalid arguments for missing tabIndex, got %v", err)
	}
}

func TestDecodeTabSelectedBareInteger(t *testing.T) {
	index, err := DecodeTabSelected(json.RawMessage(`4`))
	if err != nil || index != 4 {
		t.Fatalf("expected 4, got %d (%v)", index, err)
	}
	if _, err := DecodeTabSelected(json.RawMessage(`{"tabIndex":4}`)); !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("expected object payload to be rejected, got %v", err)
	}
	if _, err := DecodeTabSelected(nil); !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("expected empty payload to be rejected, got %v", err)
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := IndexOutOfRange(MethodUpdateTab, 3, 3)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected index error to match sentinel")
	}
	if errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("expected index error not to match invalid arguments")
	}
	if got := err.Error(); got != `updateTouchBarTab: INDEX_OUT_OF_RANGE (field "tabIndex"): index 3 outside [0, 3)` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNewCallOmitsNilArguments(t *testing.T) {
	call, err := NewCall(MethodRestoreDefault, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Arguments != nil {
		t.Fatalf("expected no arguments, got %s", call.Arguments)
	}
	call, err = NewCall(MethodUpdateTab, UpdateArgs{TabIndex: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(call.Arguments) != `{"tabIndex":1}` {
		t.Fatalf("unexpected encoding %s", call.Arguments)
	}
}
