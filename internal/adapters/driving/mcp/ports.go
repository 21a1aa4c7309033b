package mcp

import (
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever answers search queries across all indexers.
	Retriever driving.Retriever

	// Ingestor provides index statistics. Optional.
	Ingestor driving.Ingestor

	// Assistant answers learning questions. Optional.
	Assistant driving.Assistant
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	return nil
}
