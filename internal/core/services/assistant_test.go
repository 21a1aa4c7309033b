package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// stubRetriever returns a fixed result set and records queries.
type stubRetriever struct {
	results []domain.RankedResult
	queries []string
}

func (s *stubRetriever) Retrieve(_ context.Context, query string, _ []string) []domain.RankedResult {
	s.queries = append(s.queries, query)
	return s.results
}

// memProfileStore keeps the profile in memory.
type memProfileStore struct {
	saved *domain.LearnerProfile
	saves int
}

func (m *memProfileStore) Load(context.Context) (*domain.LearnerProfile, error) {
	if m.saved == nil {
		return nil, domain.ErrNotFound
	}
	copied := *m.saved
	return &copied, nil
}

func (m *memProfileStore) Save(_ context.Context, profile *domain.LearnerProfile) error {
	copied := *profile
	m.saved = &copied
	m.saves++
	return nil
}

func (m *memProfileStore) Close() error { return nil }

func newTestAssistant(retriever *stubRetriever) *AssistantService {
	return NewAssistantService(NewDifficultyService(), NewContentService(), retriever, nil)
}

func TestRespond_EmptyInputIsInvalid(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})

	_, err := a.Respond(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRespond_FirstGeneralInputGetsWelcome(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})

	resp, err := a.Respond(context.Background(), "hello")

	require.NoError(t, err)
	assert.Contains(t, resp.Message, "adaptive learning assistant")
	assert.Nil(t, resp.Explanation)
}

func TestRespond_LaterGeneralInputAsksForClarification(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})
	_, err := a.Respond(context.Background(), "hello")
	require.NoError(t, err)

	resp, err := a.Respond(context.Background(), "hmm")

	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Which specific topic")
}

func TestRespond_TopicInputBuildsExplanation(t *testing.T) {
	retriever := &stubRetriever{results: []domain.RankedResult{
		rankedHit("indexed notes about loops", 0.6, domain.ModalityText,
			map[string]any{"source": "notes.txt"}),
	}}
	a := newTestAssistant(retriever)

	resp, err := a.Respond(context.Background(), "What is a loop?")

	require.NoError(t, err)
	require.NotNil(t, resp.Explanation)
	assert.Equal(t, "loops", resp.Explanation.Topic)
	assert.Contains(t, resp.Message, "**Loops - concept and definition**")
	assert.Len(t, resp.Resources, 1)
	assert.NotEmpty(t, resp.NextSteps)
	assert.NotEmpty(t, resp.FeedbackRequest)
	assert.Equal(t, []string{"loops"}, resp.Meta.Topics)
	assert.Equal(t, 1, resp.Meta.ResultCount)
	assert.Equal(t, domain.QuestionDefinition, resp.Meta.QuestionType)
	assert.Equal(t, []string{"What is a loop?"}, retriever.queries)
}

func TestRespond_HandsOnLearnersGetExercises(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})

	resp, err := a.Respond(context.Background(), "show me a practice example of loops")

	require.NoError(t, err)
	require.Len(t, resp.Exercises, 1)
	assert.Equal(t, "loops", resp.Exercises[0].Topic)
}

func TestRespond_NoExercisesWithoutHandsOnPreference(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})

	resp, err := a.Respond(context.Background(), "What is a loop?")

	require.NoError(t, err)
	assert.Empty(t, resp.Exercises)
}

func TestRespond_HistoryIsBounded(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})

	for i := 0; i < maxHistory+5; i++ {
		_, err := a.Respond(context.Background(), fmt.Sprintf("What is a loop? round %d", i))
		require.NoError(t, err)
	}

	export := a.Export()
	assert.Len(t, export.History, maxHistory)
	assert.Contains(t, export.History[len(export.History)-1].Input, "round 14")
}

func TestDashboard_TracksExploredTopicsAndRecommendations(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})
	_, err := a.Respond(context.Background(), "I'm confused about goroutines")
	require.NoError(t, err)

	dash := a.Dashboard()

	assert.Equal(t, []string{"concurrency"}, dash.TopicsExplored)
	assert.Equal(t, 1, dash.Interactions)
	assert.Equal(t, 1, dash.Profile.Interactions)
	assert.Contains(t, dash.Recommendations.PriorityTopics, "concurrency")
}

func TestReset_ClearsSessionKeepsProfile(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})
	_, err := a.Respond(context.Background(), "I'm confused about goroutines")
	require.NoError(t, err)

	a.Reset()

	dash := a.Dashboard()
	assert.Zero(t, dash.Interactions)
	assert.Empty(t, dash.TopicsExplored)
	assert.Equal(t, 1, dash.Profile.Interactions)
	assert.NotEmpty(t, dash.Profile.Gaps)
}

func TestStudyPlan_UsesProfileGaps(t *testing.T) {
	a := newTestAssistant(&stubRetriever{})
	_, err := a.Respond(context.Background(), "I'm struggling with goroutines and channels")
	require.NoError(t, err)

	plan := a.StudyPlan(2)

	require.NotEmpty(t, plan.Weeks)
	assert.Equal(t, []string{"concurrency"}, plan.Weeks[0].Topics)
}

func TestAssistant_PersistsAndRestoresProfile(t *testing.T) {
	store := &memProfileStore{}
	a := NewAssistantService(NewDifficultyService(), NewContentService(), &stubRetriever{}, store)

	_, err := a.Respond(context.Background(), "I'm confused about goroutines")
	require.NoError(t, err)
	require.NotNil(t, store.saved)
	assert.Equal(t, 1, store.saves)

	restored := NewAssistantService(NewDifficultyService(), NewContentService(), &stubRetriever{}, store)
	dash := restored.Dashboard()

	assert.Equal(t, 1, dash.Profile.Interactions)
	assert.NotEmpty(t, dash.Profile.Gaps)
}
