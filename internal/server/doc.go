// Package server exposes the cornhole pipeline as MCP (Model Context Protocol)
// tools.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: one JSON-RPC request per line on stdin
//   - Output: one JSON-RPC response per line on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Stdout carries only protocol messages, so all logging goes to the logs.Log
// handed to New, which the CLI points at stderr.
//
// # Available Tools
//
//   - cornhole_analyze: Full state estimate of one image, optionally with an
//     annotated PNG
//   - cornhole_score: Score only
//   - cornhole_sample_hsv: HSV value of a pixel and the color ranges it falls in
//   - cornhole_calibrate: HSV bounds of an image or region
//   - cornhole_config: The active detection configuration
//
// # Error Handling
//
// Tool failures (unreadable images, bad arguments) are JSON-RPC errors with
// code -32000 and the Go error string as data. Detection misses are not
// failures: they come back as an absent board, a zero-radius hole or
// "unknown" locations.
package server
