// Package ui contains the Bubble Tea program that plays the host application:
// a row of tabs driven by keyboard navigation, with the simulated control
// strip drawn along the bottom edge.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so key presses, window sizes,
//     bridge results and bridge events each land in a focused function.
//   - Host navigation (arrow keys, tab search) goes through the command bus in
//     internal/ui/command, which runs host.Endpoint calls off the event loop
//     and reports back with a command.ResultMsg.
//   - Number keys stand in for physical taps: they are forwarded to the
//     strip.Window, never to the host endpoint. The native adapter answers the
//     tap and the resulting touchBarTabSelected event reaches the endpoint over
//     the channel.
//
// State ownership:
//   - The host copy of the tab set and active index lives in host.Endpoint.
//     The model reads it when rendering and never caches it.
//   - The strip renders the native copy; the model only asks the window for its
//     current view.
//
// Bridge events:
//   - waitForBridgeEvent blocks on host.Endpoint.Events and re-arms itself
//     after each event, mirroring how the endpoint's state changes trickle
//     into the view.
package ui
