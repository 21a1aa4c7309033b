package cli

import (
	"context"
	"time"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
)

// fakeIngestor records calls and reports canned outcomes.
type fakeIngestor struct {
	statuses map[string]domain.FileOutcome
}

func (f *fakeIngestor) IndexFile(_ context.Context, path string) domain.FileStatus {
	outcome, ok := f.statuses[path]
	if !ok {
		outcome = domain.OutcomeIndexed
	}
	return domain.FileStatus{Path: path, Modality: domain.ModalityText, Outcome: outcome}
}

func (f *fakeIngestor) IndexAll(ctx context.Context, paths []string) []domain.FileStatus {
	statuses := make([]domain.FileStatus, 0, len(paths))
	for _, path := range paths {
		statuses = append(statuses, f.IndexFile(ctx, path))
	}
	return statuses
}

func (f *fakeIngestor) Watch(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeIngestor) Stats() []domain.IndexStats {
	return []domain.IndexStats{
		{Modality: domain.ModalityText, Documents: 3, Files: 2,
			Details: map[string]any{"total_words": 1200}},
	}
}

// fakeRetriever returns a fixed result set.
type fakeRetriever struct {
	results []domain.RankedResult
}

func (f *fakeRetriever) Retrieve(context.Context, string, []string) []domain.RankedResult {
	return f.results
}

// fakeAssistant returns a canned response.
type fakeAssistant struct{}

func (f *fakeAssistant) Respond(_ context.Context, input string) (*domain.Response, error) {
	return &domain.Response{
		Message:   "canned answer about " + input,
		NextSteps: []string{"Explore Conditionals next"},
	}, nil
}

func (f *fakeAssistant) Dashboard() driving.Dashboard {
	return driving.Dashboard{
		Profile: domain.LearnerProfile{
			OverallLevel: domain.LevelBeginner,
			Style:        domain.StyleSimple,
			Interactions: 2,
			Gaps:         []domain.KnowledgeGap{{Topic: "loops", Confidence: 0.4, Evidence: []string{"x"}}},
		},
		Interactions: 1,
		Recommendations: driving.Recommendations{
			PriorityTopics: []string{"loops"},
			NextSteps:      []string{"Review the fundamentals"},
		},
	}
}

func (f *fakeAssistant) StudyPlan(weeks int) driving.StudyPlan {
	return driving.StudyPlan{
		Level: domain.LevelBeginner,
		Weeks: []driving.StudyPlanWeek{{Week: 1, Topics: []string{"loops"}, Goal: "Build a working foundation in Loops"}},
	}
}

func (f *fakeAssistant) Reset() {}

func (f *fakeAssistant) Export() driving.SessionExport {
	return driving.SessionExport{Start: time.Now()}
}

// setupTestServices injects fakes so commands run without the real
// adapter stack; the returned cleanup restores the previous wiring.
func setupTestServices() func() {
	prevIngest := ingestService
	prevRetrieval := retrievalService
	prevAssistant := assistantService

	ingestService = &fakeIngestor{}
	retrievalService = &fakeRetriever{results: []domain.RankedResult{
		{
			SearchResult: domain.SearchResult{
				Content:    "notes about loops",
				Similarity: 0.72,
				Metadata:   map[string]any{"source": "notes.txt"},
			},
			Modality: domain.ModalityText,
		},
	}}
	assistantService = &fakeAssistant{}

	return func() {
		ingestService = prevIngest
		retrievalService = prevRetrieval
		assistantService = prevAssistant
	}
}
