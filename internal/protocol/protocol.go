// Package protocol defines the messages exchanged between the host
// application and the native control strip over the bridge channel.
package protocol

import "encoding/json"

// ChannelName is the well-known name both endpoints register under.
const ChannelName = "toothfile.touchbar"

// Commands flowing host -> native.
const (
	MethodSetup          = "setupTouchBar"
	MethodUpdateTab      = "updateTouchBarTab"
	MethodRestoreDefault = "restoreDefaultTouchBar"
)

// Events flowing native -> host.
const (
	MethodTabSelected = "touchBarTabSelected"
)

// Payload keys.
const (
	KeyTabs     = "tabs"
	KeyTabIndex = "tabIndex"
)

// MethodCall is a decoded envelope body: a method name plus its raw JSON
// arguments. Arguments is nil when the call carries no payload.
type MethodCall struct {
	Method    string
	Arguments json.RawMessage
}

// SetupArgs is the payload of setupTouchBar.
type SetupArgs struct {
	Tabs     []string `json:"tabs"`
	TabIndex int      `json:"tabIndex"`
}

// UpdateArgs is the payload of updateTouchBarTab.
type UpdateArgs struct {
	TabIndex int `json:"tabIndex"`
}

// NewCall builds a MethodCall, encoding args unless they are nil.
func NewCall(method string, args interface{}) (MethodCall, error) {
	call := MethodCall{Method: method}
	if args == nil {
		return call, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return MethodCall{}, err
	}
	call.Arguments = raw
	return call, nil
}

// ValidIndex reports whether index addresses an element of a tab set of the
// given length.
func ValidIndex(index, length int) bool {
	return index >= 0 && index < length
}
