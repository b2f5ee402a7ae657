// Package server implements the dashboard's MCP (Model Context Protocol)
// server.
//
// The server speaks JSON-RPC 2.0 over a line-oriented stream (stdin/stdout in
// the target-vision binary) and lets an operator inspect and tune a running
// pipeline:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Tuning:
//   - tuning_get: Current strategy and tuning values
//   - tuning_set: Change tuning values, optionally saving them to the tuning file
//
// Diagnostics:
//   - diagnostics_get: Values published for the latest frame
//   - overlay_snapshot: Latest annotated frame as PNG
//   - detect_image: Run the pipeline on an image file without transmitting
//
// Telemetry:
//   - endpoints_list: Broadcast endpoints and send counters
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
