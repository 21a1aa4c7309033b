package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

func rankedHit(content string, similarity float64, modality domain.Modality, metadata map[string]any) domain.RankedResult {
	return domain.RankedResult{
		SearchResult: domain.SearchResult{Content: content, Similarity: similarity, Metadata: metadata},
		Modality:     modality,
	}
}

func TestExplanation_MatchesProfileStyle(t *testing.T) {
	s := NewContentService()
	profile := domain.NewLearnerProfile()
	profile.Style = domain.StyleTechnical

	exp := s.Explanation("loops", profile, nil)

	assert.Equal(t, "loops", exp.Topic)
	assert.Equal(t, domain.StyleTechnical, exp.Style)
	assert.Contains(t, exp.Introduction, "range yields")
	assert.NotEmpty(t, exp.Example)
	assert.Equal(t, "go", exp.ExampleLanguage)
	assert.NotEmpty(t, exp.Practice)
}

func TestExplanation_NextStepsFollowRelatedTopics(t *testing.T) {
	s := NewContentService()

	exp := s.Explanation("loops", domain.NewLearnerProfile(), nil)

	assert.Equal(t, []string{
		"Explore Conditionals next",
		"Explore Slices arrays next",
	}, exp.NextSteps)
}

func TestExplanation_ResourcesCappedWithDetailLabels(t *testing.T) {
	s := NewContentService()
	hits := []domain.RankedResult{
		rankedHit("pdf chapter on loops", 0.9, domain.ModalityPDF, map[string]any{"source": "book.pdf", "total_pages": 12}),
		rankedHit("video lecture on loops", 0.8, domain.ModalityVideo, map[string]any{"source": "talk.mp4", "start_timestamp": "01:00", "end_timestamp": "02:00"}),
		rankedHit("diagram of a loop", 0.7, domain.ModalityImage, map[string]any{"source": "fig.png", "width": 640, "height": 480}),
		rankedHit("plain notes on loops", 0.6, domain.ModalityText, map[string]any{"source": "notes.txt", "chunk_index": 0, "total_chunks": 2}),
	}

	exp := s.Explanation("loops", domain.NewLearnerProfile(), hits)

	require.Len(t, exp.Resources, 3)
	assert.Equal(t, "12 pages", exp.Resources[0].Detail)
	assert.Equal(t, "book.pdf", exp.Resources[0].Source)
	assert.InDelta(t, 90.0, exp.Resources[0].SimilarityPct, 1e-9)
	assert.Equal(t, "01:00-02:00", exp.Resources[1].Detail)
	assert.Equal(t, "640x480", exp.Resources[2].Detail)
}

func TestExplanation_ConclusionQuotesStrongLongHit(t *testing.T) {
	s := NewContentService()
	content := strings.Repeat("Loops repeat a block of code. ", 5) + "They stop when the condition fails."
	hits := []domain.RankedResult{
		rankedHit(content, 0.8, domain.ModalityText, map[string]any{"source": "notes.txt"}),
	}

	exp := s.Explanation("loops", domain.NewLearnerProfile(), hits)

	assert.True(t, strings.HasPrefix(exp.Conclusion, "From your indexed materials: "))
	assert.Contains(t, exp.Conclusion, "Loops repeat a block of code.")
}

func TestExplanation_WeakOrShortHitsLeaveConclusionEmpty(t *testing.T) {
	s := NewContentService()
	short := []domain.RankedResult{
		rankedHit("too short.", 0.9, domain.ModalityText, nil),
	}
	weak := []domain.RankedResult{
		rankedHit(strings.Repeat("long but barely related content. ", 10), 0.2, domain.ModalityText, nil),
	}

	assert.Empty(t, s.Explanation("loops", domain.NewLearnerProfile(), short).Conclusion)
	assert.Empty(t, s.Explanation("loops", domain.NewLearnerProfile(), weak).Conclusion)
}

func TestExplanation_UnknownTopicFallsBackToGenericContent(t *testing.T) {
	s := NewContentService()
	profile := domain.NewLearnerProfile()

	exp := s.Explanation("design_patterns", profile, nil)

	assert.Contains(t, exp.Introduction, "Design patterns")
	assert.Empty(t, exp.Example)
	assert.Contains(t, exp.Practice, "Design patterns")
}

func TestExercise_ExpertFallsBackToAdvanced(t *testing.T) {
	s := NewContentService()

	advanced := s.Exercise("concurrency", domain.LevelAdvanced)
	expert := s.Exercise("concurrency", domain.LevelExpert)

	assert.Equal(t, advanced.Prompt, expert.Prompt)
	assert.Equal(t, domain.LevelExpert, expert.Level)
	assert.NotEmpty(t, expert.Hint)
}

func TestExercise_UnknownTopicGetsGenericTask(t *testing.T) {
	s := NewContentService()

	ex := s.Exercise("algorithms", domain.LevelBeginner)

	assert.Contains(t, ex.Prompt, "Algorithms")
	assert.NotEmpty(t, ex.Hint)
}

func TestStudyPlan_GapTopicsComeFirst(t *testing.T) {
	s := NewContentService()
	profile := domain.NewLearnerProfile()
	profile.Gaps = []domain.KnowledgeGap{
		{Topic: "concurrency", Confidence: 0.8},
		{Topic: "maps", Confidence: 0.4},
	}

	plan := s.StudyPlan(profile, []string{"loops", "maps"}, 2)

	require.Len(t, plan.Weeks, 2)
	assert.Equal(t, []string{"concurrency"}, plan.Weeks[0].Topics)
	assert.Equal(t, []string{"maps", "loops"}, plan.Weeks[1].Topics)
	assert.Equal(t, 1, plan.Weeks[0].Week)
	assert.NotEmpty(t, plan.Weeks[0].Goal)
}

func TestStudyPlan_DefaultProgressionWhenNothingKnown(t *testing.T) {
	s := NewContentService()

	plan := s.StudyPlan(domain.NewLearnerProfile(), nil, 4)

	require.Len(t, plan.Weeks, 4)
	var all []string
	for _, week := range plan.Weeks {
		all = append(all, week.Topics...)
	}
	assert.Equal(t, defaultProgression, all)
	assert.Equal(t, domain.LevelBeginner, plan.Level)
}

func TestStudyPlan_MoreWeeksThanTopicsStopsEarly(t *testing.T) {
	s := NewContentService()
	profile := domain.NewLearnerProfile()
	profile.Gaps = []domain.KnowledgeGap{{Topic: "loops", Confidence: 0.5}}

	plan := s.StudyPlan(profile, nil, 6)

	require.Len(t, plan.Weeks, 1)
	assert.Equal(t, []string{"loops"}, plan.Weeks[0].Topics)
}
