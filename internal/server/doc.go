// Package server implements the MCP (Model Context Protocol) front-end for
// the detectors.
//
// The server speaks JSON-RPC 2.0 over stdin/stdout, one request per line.
// Supported methods: initialize, notifications/initialized, tools/list,
// tools/call, and ping. Anything written to stdout is protocol; logging
// goes to stderr.
//
// # Tools
//
// The tool surface exposes the detection pipeline and its supporting
// operations:
//
//   - image_load, image_dimensions: image metadata
//   - image_detect_lines: the gradient-guided Hough line detector, with an
//     optional rebuilt outline image
//   - image_detect_regions: connected edge-pixel regions
//   - image_edge_map: the binary edge map as a PNG
//   - image_crop: region zoom for close inspection
//   - image_sample_color: exact pixel color in hex/RGB/HSL
//
// Tool results are returned in MCP content format as pretty-printed JSON.
// Binary payloads (crops, edge maps, rebuilt images) travel as base64 PNG.
//
// # State
//
// The server keeps one piece of state: a thread-safe image cache keyed by
// path, so repeated tool calls against the same file decode it once.
// Detection itself is stateless; every call builds its own luminance map
// and accumulator.
package server
