package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string   `json:"query" jsonschema:"the search query to run across the content index"`
	Topics []string `json:"topics,omitempty" jsonschema:"optional topic identifiers to widen the search"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Content     string  `json:"content"`
	Similarity  float64 `json:"similarity"`
	Modality    string  `json:"modality"`
	Source      string  `json:"source,omitempty"`
	TopicDriven bool    `json:"topic_driven,omitempty"`
}

// StatsInput is the input schema for the stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the stats tool.
type StatsOutput struct {
	Indexes []IndexStatsOutput `json:"indexes"`
}

// IndexStatsOutput is the per-modality stats entry.
type IndexStatsOutput struct {
	Modality  string         `json:"modality"`
	Documents int            `json:"documents"`
	Files     int            `json:"files"`
	Details   map[string]any `json:"details,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Input string `json:"input" jsonschema:"the learner's question or message"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Message   string   `json:"message"`
	NextSteps []string `json:"next_steps,omitempty"`
	Topics    []string `json:"topics,omitempty"`
	UserLevel string   `json:"user_level"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all indexed learning materials",
	}, s.handleSearch)

	if s.ports.Ingestor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "stats",
			Description: "Read per-modality index statistics",
		}, s.handleStats)
	}
	if s.ports.Assistant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Ask the adaptive learning assistant a question",
		}, s.handleAsk)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return nil, SearchOutput{}, errors.New("query is required")
	}

	results := s.ports.Retriever.Retrieve(ctx, input.Query, input.Topics)

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		source, _ := results[i].Metadata["source"].(string)
		output.Results[i] = SearchResultOutput{
			Content:     results[i].Content,
			Similarity:  results[i].Similarity,
			Modality:    string(results[i].Modality),
			Source:      source,
			TopicDriven: results[i].TopicDriven,
		}
	}
	return nil, output, nil
}

// handleStats handles the stats tool invocation.
func (s *Server) handleStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats := s.ports.Ingestor.Stats()

	output := StatsOutput{Indexes: make([]IndexStatsOutput, len(stats))}
	for i, st := range stats {
		output.Indexes[i] = IndexStatsOutput{
			Modality:  string(st.Modality),
			Documents: st.Documents,
			Files:     st.Files,
			Details:   st.Details,
		}
	}
	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	response, err := s.ports.Assistant.Respond(ctx, input.Input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, AskOutput{}, errors.New("input is required")
		}
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Message:   response.Message,
		NextSteps: response.NextSteps,
		Topics:    response.Meta.Topics,
		UserLevel: string(response.Meta.UserLevel),
	}, nil
}
