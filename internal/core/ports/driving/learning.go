package driving

import "github.com/mentorlab/tutor-cli/internal/core/domain"

// Analyzer analyses user input and maintains the learner profile.
type Analyzer interface {
	// Analyze extracts topics, difficulty, format preferences,
	// confidence signals and question type from one input.
	Analyze(input string) domain.InputAnalysis

	// UpdateProfile folds one analysed input into the profile.
	UpdateProfile(profile *domain.LearnerProfile, analysis domain.InputAnalysis, input string)

	// Recommendations derives study suggestions from the profile.
	Recommendations(profile *domain.LearnerProfile) Recommendations
}

// ContentGenerator produces explanations, exercises and study plans
// adapted to the learner profile.
type ContentGenerator interface {
	// Explanation builds a personalised explanation for a topic,
	// enriched with retrieval hits from the content index.
	Explanation(topic string, profile *domain.LearnerProfile, results []domain.RankedResult) *domain.Explanation

	// Exercise builds an interactive exercise for a topic and level.
	Exercise(topic string, level domain.SkillLevel) domain.Exercise

	// StudyPlan schedules gap and explored topics over the given weeks.
	StudyPlan(profile *domain.LearnerProfile, explored []string, weeks int) StudyPlan
}
