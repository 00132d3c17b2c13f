package protocol

import (
	"errors"
	"fmt"
)

// Error codes carried back through the channel's error-result path.
const (
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeIndexOutOfRange  = "INDEX_OUT_OF_RANGE"
	CodeNotImplemented   = "NOT_IMPLEMENTED"
	CodeUndeliverable    = "UNDELIVERABLE"
)

// Sentinels for errors.Is matching against *Error values.
var (
	ErrInvalidArguments = &Error{Code: CodeInvalidArguments}
	ErrIndexOutOfRange  = &Error{Code: CodeIndexOutOfRange}
	ErrNotImplemented   = &Error{Code: CodeNotImplemented}
	ErrUndeliverable    = &Error{Code: CodeUndeliverable}
)

// Error is a rejected call. Field names the offending payload key for
// argument errors.
type Error struct {
	Code    string `json:"code"`
	Method  string `json:"method,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Code
	if e.Method != "" {
		msg = fmt.Sprintf("%s: %s", e.Method, msg)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	return msg
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || other == nil || e == nil {
		return false
	}
	return e.Code == other.Code
}

// InvalidArguments reports a missing or mistyped payload field.
func InvalidArguments(method, field, format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidArguments, Method: method, Field: field, Message: fmt.Sprintf(format, args...)}
}

// IndexOutOfRange reports an index outside the current tab set.
func IndexOutOfRange(method string, index, length int) *Error {
	return &Error{
		Code:    CodeIndexOutOfRange,
		Method:  method,
		Field:   KeyTabIndex,
		Message: fmt.Sprintf("index %d outside [0, %d)", index, length),
	}
}

// NotImplemented reports an unknown method name.
func NotImplemented(method string) *Error {
	return &Error{Code: CodeNotImplemented, Method: method, Message: "method not implemented"}
}

// Undeliverable reports that no channel is registered under name.
func Undeliverable(channel, method string) *Error {
	return &Error{Code: CodeUndeliverable, Method: method, Message: fmt.Sprintf("no handler registered for channel %q", channel)}
}

// AsError converts any error into an *Error suitable for the reply path.
// Foreign errors are carried as their message with an empty code.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}
	return &Error{Message: err.Error()}
}
