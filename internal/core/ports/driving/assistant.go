package driving

import (
	"context"
	"time"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// Assistant is the conversational entry point consumed by the CLI,
// the chat TUI and the MCP server.
type Assistant interface {
	// Respond processes one user input and produces an adaptive response.
	// Retrieval-layer errors are absorbed; embedding/model failures at
	// query time are returned so the caller can apologise instead of crash.
	Respond(ctx context.Context, input string) (*domain.Response, error)

	// Dashboard summarises the session and learner progress.
	Dashboard() Dashboard

	// StudyPlan generates a multi-week study plan from the profile.
	StudyPlan(weeks int) StudyPlan

	// Reset clears the conversation history while keeping the profile.
	Reset()

	// Export returns the session data for backup or analysis.
	Export() SessionExport
}

// Dashboard summarises learner progress for display.
type Dashboard struct {
	// Profile is the current learner profile.
	Profile domain.LearnerProfile

	// Interactions counts exchanges in this session.
	Interactions int

	// SessionDuration is the time since session start.
	SessionDuration time.Duration

	// TopicsExplored lists distinct topics seen this session.
	TopicsExplored []string

	// AverageResponseTime is the mean processing time per exchange.
	AverageResponseTime time.Duration

	// Recommendations are the analyzer's current suggestions.
	Recommendations Recommendations
}

// Recommendations are the analyzer's study suggestions.
type Recommendations struct {
	// PriorityTopics are the strongest open knowledge gaps.
	PriorityTopics []string

	// SuggestedFormats are preferred or level-default formats.
	SuggestedFormats []domain.LearningFormat

	// NextSteps are level-appropriate actions.
	NextSteps []string

	// Style is the preferred explanation style.
	Style domain.ExplanationStyle
}

// StudyPlanWeek is one week of a study plan.
type StudyPlanWeek struct {
	// Week is the 1-based week number.
	Week int

	// Topics are the topics scheduled for the week.
	Topics []string

	// Goal states what the week should achieve.
	Goal string
}

// StudyPlan is a personalised multi-week plan.
type StudyPlan struct {
	// Level is the level the plan targets.
	Level domain.SkillLevel

	// Weeks are the scheduled weeks.
	Weeks []StudyPlanWeek
}

// SessionExport is the session data for backup or analysis.
type SessionExport struct {
	// Start is the session start time.
	Start time.Time

	// Duration is the elapsed session time.
	Duration time.Duration

	// Profile is the learner profile at export time.
	Profile domain.LearnerProfile

	// History is the bounded conversation history.
	History []domain.Interaction

	// TopicsExplored lists distinct topics seen this session.
	TopicsExplored []string
}
