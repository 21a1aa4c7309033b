package services

import (
	"context"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
	"github.com/mentorlab/tutor-cli/internal/logger"
)

// Retrieval tuning. Topic-driven secondary queries cast a wider net
// than the primary query, so they use a lower similarity floor.
const (
	primaryTopK          = 3
	primaryMinSimilarity = 0.3
	topicTopK            = 2
	topicMinSimilarity   = 0.2

	// defaultMaxResults bounds the merged result set.
	defaultMaxResults = 5

	// dedupePrefixChars is how much leading content identifies a chunk
	// for deduplication.
	dedupePrefixChars = 100
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// RetrievalService fans queries out across all modality indexers and
// merges the hits into one ranked, deduplicated list.
type RetrievalService struct {
	indexers   []driving.Indexer
	maxResults int
}

// NewRetrievalService creates a retrieval aggregator over the given
// indexers.
func NewRetrievalService(indexers ...driving.Indexer) *RetrievalService {
	return &RetrievalService{indexers: indexers, maxResults: defaultMaxResults}
}

// Retrieve runs the primary query on every indexer, adds one secondary
// query per detected topic, then deduplicates, ranks by similarity and
// truncates. A failing indexer is logged and skipped, never fatal.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topics []string) []domain.RankedResult {
	var all []domain.RankedResult

	for _, ix := range s.indexers {
		modality := ix.Modality()

		hits, err := ix.Search(ctx, query, primaryTopK, primaryMinSimilarity)
		if err != nil {
			logger.Warn("retrieval: %s search failed: %v", modality, err)
			continue
		}
		for _, hit := range hits {
			all = append(all, domain.RankedResult{SearchResult: hit, Modality: modality})
		}

		for _, topic := range topics {
			topicQuery := strings.ReplaceAll(topic, "_", " ")
			topicHits, err := ix.Search(ctx, topicQuery, topicTopK, topicMinSimilarity)
			if err != nil {
				logger.Warn("retrieval: %s topic search %q failed: %v", modality, topicQuery, err)
				continue
			}
			for _, hit := range topicHits {
				all = append(all, domain.RankedResult{SearchResult: hit, Modality: modality, TopicDriven: true})
			}
		}
	}

	unique := deduplicate(all)
	sort.SliceStable(unique, func(a, b int) bool {
		return unique[a].Similarity > unique[b].Similarity
	})
	if len(unique) > s.maxResults {
		unique = unique[:s.maxResults]
	}
	return unique
}

// deduplicate drops results whose leading content was already seen;
// the first occurrence wins. Applying it twice changes nothing.
func deduplicate(results []domain.RankedResult) []domain.RankedResult {
	seen := make(map[uint32]bool, len(results))
	unique := make([]domain.RankedResult, 0, len(results))

	for _, result := range results {
		key := contentKey(result.Content)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, result)
	}
	return unique
}

func contentKey(content string) uint32 {
	if len(content) > dedupePrefixChars {
		content = content[:dedupePrefixChars]
	}
	h := fnv.New32a()
	h.Write([]byte(content))
	return h.Sum32()
}
