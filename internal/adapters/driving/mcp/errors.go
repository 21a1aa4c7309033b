// Package mcp provides a Model Context Protocol server adapter so AI
// assistants can search the content index and read its statistics.
package mcp

import "errors"

// ErrMissingRetriever is returned when no retriever is provided.
var ErrMissingRetriever = errors.New("mcp: retriever is required")
