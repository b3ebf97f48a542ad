// Package mcp provides an MCP (Model Context Protocol) server adapter for
// vidchat. It lets AI assistants ask questions about the ingested
// transcript and inspect the retrieved context.
package mcp

import "errors"

// ErrMissingSession is returned when no session is provided.
var ErrMissingSession = errors.New("mcp: session is required")
