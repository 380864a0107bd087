// Package rpc implements the JSON-RPC control plane (C5): newline-framed
// (and, optionally, legacy length-prefixed) JSON messages; request/response
// correlation by id; and event emission for id-less peer-bound method
// calls (`ready`, `select`, `bind`).
//
// Framing and the request/notification/event distinction are grounded on
// the teacher's `lsp/transport.go` (Content-Length-header framing,
// generalized here to newline or bare-decimal-length framing) and its
// serial-dispatch-per-peer discipline. Cheap method/id peeking uses
// tidwall/gjson ahead of a full json.Unmarshal, mirroring the probe step
// transport.go performs before routing a frame.
package rpc
