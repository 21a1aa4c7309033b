package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// stubIndexer returns canned hits per query.
type stubIndexer struct {
	modality domain.Modality
	hits     map[string][]domain.SearchResult
	err      error
	queries  []string
}

func (s *stubIndexer) Modality() domain.Modality { return s.modality }

func (s *stubIndexer) IndexFile(context.Context, string) bool { return true }

func (s *stubIndexer) Search(_ context.Context, query string, _ int, _ float64) ([]domain.SearchResult, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.hits[query], nil
}

func (s *stubIndexer) Stats() domain.IndexStats {
	return domain.IndexStats{Modality: s.modality}
}

func hit(content string, similarity float64) domain.SearchResult {
	return domain.SearchResult{Content: content, Similarity: similarity}
}

func TestRetrieve_MergesAndRanksAcrossIndexers(t *testing.T) {
	text := &stubIndexer{modality: domain.ModalityText, hits: map[string][]domain.SearchResult{
		"loops": {hit("text about loops", 0.5)},
	}}
	pdf := &stubIndexer{modality: domain.ModalityPDF, hits: map[string][]domain.SearchResult{
		"loops": {hit("pdf chapter on loops", 0.9)},
	}}
	s := NewRetrievalService(text, pdf)

	results := s.Retrieve(context.Background(), "loops", nil)

	require.Len(t, results, 2)
	assert.Equal(t, "pdf chapter on loops", results[0].Content)
	assert.Equal(t, domain.ModalityPDF, results[0].Modality)
	assert.Equal(t, "text about loops", results[1].Content)
	assert.False(t, results[0].TopicDriven)
}

func TestRetrieve_TopicQueriesAreTaggedAndUnderscoresReplaced(t *testing.T) {
	text := &stubIndexer{modality: domain.ModalityText, hits: map[string][]domain.SearchResult{
		"slices arrays": {hit("notes on slices", 0.4)},
	}}
	s := NewRetrievalService(text)

	results := s.Retrieve(context.Background(), "how do slices work", []string{"slices_arrays"})

	require.Len(t, results, 1)
	assert.True(t, results[0].TopicDriven)
	assert.Contains(t, text.queries, "slices arrays")
}

func TestRetrieve_DeduplicatesByLeadingContent(t *testing.T) {
	same := "identical chunk indexed twice"
	text := &stubIndexer{modality: domain.ModalityText, hits: map[string][]domain.SearchResult{
		"q": {hit(same, 0.8)},
	}}
	pdf := &stubIndexer{modality: domain.ModalityPDF, hits: map[string][]domain.SearchResult{
		"q": {hit(same, 0.6)},
	}}
	s := NewRetrievalService(text, pdf)

	results := s.Retrieve(context.Background(), "q", nil)

	require.Len(t, results, 1)
	// first seen wins: the text indexer ran first
	assert.Equal(t, domain.ModalityText, results[0].Modality)
	assert.InDelta(t, 0.8, results[0].Similarity, 1e-9)
}

func TestRetrieve_TruncatesToMaxResults(t *testing.T) {
	hits := make([]domain.SearchResult, 0, 8)
	for _, c := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		hits = append(hits, hit("chunk "+c, 0.5))
	}
	text := &stubIndexer{modality: domain.ModalityText, hits: map[string][]domain.SearchResult{"q": hits}}
	s := NewRetrievalService(text)

	results := s.Retrieve(context.Background(), "q", nil)

	assert.Len(t, results, defaultMaxResults)
}

func TestRetrieve_FailingIndexerIsSkipped(t *testing.T) {
	broken := &stubIndexer{modality: domain.ModalityVideo, err: errors.New("embedder down")}
	text := &stubIndexer{modality: domain.ModalityText, hits: map[string][]domain.SearchResult{
		"q": {hit("still works", 0.5)},
	}}
	s := NewRetrievalService(broken, text)

	results := s.Retrieve(context.Background(), "q", nil)

	require.Len(t, results, 1)
	assert.Equal(t, "still works", results[0].Content)
}

func TestRetrieve_EmptyIndexersYieldEmptyResults(t *testing.T) {
	s := NewRetrievalService()

	assert.Empty(t, s.Retrieve(context.Background(), "anything", []string{"loops"}))
}

func TestDeduplicate_Idempotent(t *testing.T) {
	results := []domain.RankedResult{
		rankedHit("first chunk", 0.9, domain.ModalityText, nil),
		rankedHit("first chunk", 0.7, domain.ModalityPDF, nil),
		rankedHit("second chunk", 0.5, domain.ModalityText, nil),
	}

	once := deduplicate(results)
	twice := deduplicate(once)

	require.Len(t, once, 2)
	assert.Equal(t, once, twice)
}

func TestDeduplicate_ComparesOnlyLeadingContent(t *testing.T) {
	prefix := make([]byte, dedupePrefixChars)
	for i := range prefix {
		prefix[i] = 'x'
	}
	a := rankedHit(string(prefix)+" tail one", 0.9, domain.ModalityText, nil)
	b := rankedHit(string(prefix)+" tail two", 0.8, domain.ModalityPDF, nil)

	unique := deduplicate([]domain.RankedResult{a, b})

	require.Len(t, unique, 1)
	assert.Equal(t, a.Content, unique[0].Content)
}
