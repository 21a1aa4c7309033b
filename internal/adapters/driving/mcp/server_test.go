package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// mockRetriever returns a fixed result set.
type mockRetriever struct {
	results []domain.RankedResult
}

func (m *mockRetriever) Retrieve(context.Context, string, []string) []domain.RankedResult {
	return m.results
}

func TestNewServer(t *testing.T) {
	t.Run("nil retriever returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingRetriever)
	})

	t.Run("retriever only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestHandleSearch(t *testing.T) {
	retriever := &mockRetriever{results: []domain.RankedResult{
		{
			SearchResult: domain.SearchResult{
				Content:    "notes about loops",
				Similarity: 0.7,
				Metadata:   map[string]any{"source": "notes.txt"},
			},
			Modality:    domain.ModalityText,
			TopicDriven: true,
		},
	}}
	server, err := NewServer(&Ports{Retriever: retriever})
	require.NoError(t, err)

	_, output, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "loops"})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, "notes about loops", output.Results[0].Content)
	assert.Equal(t, "text", output.Results[0].Modality)
	assert.Equal(t, "notes.txt", output.Results[0].Source)
	assert.True(t, output.Results[0].TopicDriven)
}

func TestHandleSearch_EmptyQueryIsRejected(t *testing.T) {
	server, err := NewServer(&Ports{Retriever: &mockRetriever{}})
	require.NoError(t, err)

	_, _, err = server.handleSearch(context.Background(), nil, SearchInput{})

	assert.Error(t, err)
}
