package protocol

import (
	"bytes"
	"encoding/json"
	"math"
)

// DecodeSetup validates and decodes a setupTouchBar payload. It checks
// shape only; range checks against the tab set happen in the handler.
func DecodeSetup(raw json.RawMessage) (SetupArgs, error) {
	fields, err := decodeObject(MethodSetup, raw)
	if err != nil {
		return SetupArgs{}, err
	}
	tabsRaw, ok := fields[KeyTabs]
	if !ok || isNull(tabsRaw) {
		return SetupArgs{}, InvalidArguments(MethodSetup, KeyTabs, "missing required field")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(tabsRaw, &items); err != nil {
		return SetupArgs{}, InvalidArguments(MethodSetup, KeyTabs, "expected a list of strings")
	}
	tabs := make([]string, 0, len(items))
	for _, item := range items {
		var label string
		if err := json.Unmarshal(item, &label); err != nil || isNull(item) {
			return SetupArgs{}, InvalidArguments(MethodSetup, KeyTabs, "expected a list of strings")
		}
		tabs = append(tabs, label)
	}
	if len(tabs) == 0 {
		return SetupArgs{}, InvalidArguments(MethodSetup, KeyTabs, "tab list must not be empty")
	}
	index, err := decodeIndex(MethodSetup, fields)
	if err != nil {
		return SetupArgs{}, err
	}
	return SetupArgs{Tabs: tabs, TabIndex: index}, nil
}

// DecodeUpdate validates and decodes an updateTouchBarTab payload.
func DecodeUpdate(raw json.RawMessage) (UpdateArgs, error) {
	fields, err := decodeObject(MethodUpdateTab, raw)
	if err != nil {
		return UpdateArgs{}, err
	}
	index, err := decodeIndex(MethodUpdateTab, fields)
	if err != nil {
		return UpdateArgs{}, err
	}
	return UpdateArgs{TabIndex: index}, nil
}

// DecodeTabSelected decodes the bare integer carried by touchBarTabSelected.
func DecodeTabSelected(raw json.RawMessage) (int, error) {
	if len(bytes.TrimSpace(raw)) == 0 || isNull(raw) {
		return 0, InvalidArguments(MethodTabSelected, "index", "missing selection index")
	}
	index, ok := parseInt(raw)
	if !ok {
		return 0, InvalidArguments(MethodTabSelected, "index", "expected an integer")
	}
	return index, nil
}

func decodeObject(method string, raw json.RawMessage) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 || isNull(raw) {
		return nil, InvalidArguments(method, "", "missing arguments")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, InvalidArguments(method, "", "expected an object")
	}
	return fields, nil
}

func decodeIndex(method string, fields map[string]json.RawMessage) (int, error) {
	raw, ok := fields[KeyTabIndex]
	if !ok || isNull(raw) {
		return 0, InvalidArguments(method, KeyTabIndex, "missing required field")
	}
	index, ok := parseInt(raw)
	if !ok {
		return 0, InvalidArguments(method, KeyTabIndex, "expected an integer")
	}
	return index, nil
}

// parseInt accepts JSON numbers with no fractional part that fit an int.
func parseInt(raw json.RawMessage) (int, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return 0, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var num json.Number
	if err := dec.Decode(&num); err != nil {
		return 0, false
	}
	v, err := num.Int64()
	if err != nil {
		return 0, false
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
