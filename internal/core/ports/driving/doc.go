// Package driving provides interfaces exposed by the core to external
// actors (primary/inbound ports): the CLI, the chat TUI and the MCP server
// all drive the pipeline through these.
package driving
