package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driven"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
	"github.com/mentorlab/tutor-cli/internal/logger"
)

// maxHistory bounds the conversation history to the most recent
// exchanges.
const maxHistory = 10

const welcomeMessage = `Hello! I'm your adaptive learning assistant.

Ask me about any programming topic and I'll adjust my explanations to
your level as we go. Tell me how you like to learn (videos, reading,
diagrams, hands-on practice) and I'll take it into account.

What would you like to learn today?`

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

// AssistantService orchestrates one learning session: it analyses
// input, maintains the learner profile, retrieves indexed content and
// assembles adaptive responses.
type AssistantService struct {
	analyzer  driving.Analyzer
	content   driving.ContentGenerator
	retriever driving.Retriever
	profiles  driven.ProfileStore

	mu        sync.Mutex
	profile   *domain.LearnerProfile
	history   []domain.Interaction
	explored  []string
	start     time.Time
	elapsed   time.Duration
	responses int
}

// NewAssistantService creates an assistant. The profile store is
// optional; when present, a previously saved profile is restored.
func NewAssistantService(
	analyzer driving.Analyzer,
	content driving.ContentGenerator,
	retriever driving.Retriever,
	profiles driven.ProfileStore,
) *AssistantService {
	s := &AssistantService{
		analyzer:  analyzer,
		content:   content,
		retriever: retriever,
		profiles:  profiles,
		profile:   domain.NewLearnerProfile(),
		start:     time.Now(),
	}
	if profiles != nil {
		if profile, err := profiles.Load(context.Background()); err == nil {
			s.profile = profile
		} else if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("assistant: load profile: %v", err)
		}
	}
	return s
}

// Respond processes one user input: analyse, update the profile,
// retrieve supporting content and assemble an adaptive response.
func (s *AssistantService) Respond(ctx context.Context, input string) (*domain.Response, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	began := time.Now()
	analysis := s.analyzer.Analyze(input)
	s.analyzer.UpdateProfile(s.profile, analysis, input)
	s.persistProfile(ctx)

	results := s.retriever.Retrieve(ctx, input, analysis.Topics)

	response := s.assemble(input, analysis, results)
	response.FeedbackRequest = feedbackRequest(analysis, s.profile)
	response.Meta = domain.ResponseMeta{
		Topics:       analysis.Topics,
		Level:        analysis.Level,
		QuestionType: analysis.QuestionType,
		ResultCount:  len(results),
		UserLevel:    s.profile.OverallLevel,
		Preferences:  append([]domain.LearningFormat(nil), s.profile.Preferences...),
	}

	elapsed := time.Since(began)
	s.record(input, analysis, response.Message, elapsed)
	return response, nil
}

// assemble picks the response shape: welcome/clarification when
// nothing was detected, a topic explanation when a topic was, and a
// retrieval-backed fallback otherwise.
func (s *AssistantService) assemble(input string, analysis domain.InputAnalysis, results []domain.RankedResult) *domain.Response {
	response := &domain.Response{}

	switch {
	case len(analysis.Topics) == 0 && analysis.QuestionType == domain.QuestionGeneral:
		response.Message = s.welcomeOrClarify(analysis)

	case len(analysis.Topics) > 0:
		mainTopic := analysis.Topics[0]
		explanation := s.content.Explanation(mainTopic, s.profile, results)
		response.Explanation = explanation
		response.Message = formatMainMessage(mainTopic, explanation, analysis.QuestionType)
		response.Resources = explanation.Resources
		response.NextSteps = explanation.NextSteps

		if s.profile.HasPreference(domain.FormatHandsOn) {
			response.Exercises = append(response.Exercises,
				s.content.Exercise(mainTopic, s.profile.OverallLevel))
		}

	default:
		response.Message = fallbackMessage(results)
	}
	return response
}

func (s *AssistantService) welcomeOrClarify(analysis domain.InputAnalysis) string {
	if len(s.history) == 0 {
		return welcomeMessage
	}

	points := []string{"- Which specific topic would you like to learn about?"}
	if analysis.QuestionType == domain.QuestionGeneral {
		points = append(points, "- Do you have a concrete question, or would you like an introduction?")
	}
	if len(analysis.Formats) == 0 {
		points = append(points, "- How do you prefer to learn: videos, reading, diagrams or hands-on practice?")
	}
	return "I'd like to help, but I need a bit more to go on:\n\n" + strings.Join(points, "\n")
}

// formatMainMessage renders the explanation as markdown with a
// headline matched to the question's intent.
func formatMainMessage(topic string, explanation *domain.Explanation, qtype domain.QuestionType) string {
	display := topicDisplay(topic)

	var headline string
	switch qtype {
	case domain.QuestionDefinition:
		headline = fmt.Sprintf("**%s - concept and definition**", display)
	case domain.QuestionHowTo:
		headline = fmt.Sprintf("**Working with %s**", display)
	case domain.QuestionExample:
		headline = fmt.Sprintf("**%s in practice**", display)
	default:
		headline = fmt.Sprintf("**Let's talk about %s**", display)
	}

	parts := []string{headline, "", explanation.Introduction}
	if explanation.Example != "" {
		lang := explanation.ExampleLanguage
		if lang == "" {
			lang = "go"
		}
		parts = append(parts, "", "Example:", fmt.Sprintf("```%s\n%s\n```", lang, explanation.Example))
	}
	if explanation.Practice != "" {
		parts = append(parts, "", "To practice: "+explanation.Practice)
	}
	if explanation.Conclusion != "" {
		parts = append(parts, "", explanation.Conclusion)
	}
	return strings.Join(parts, "\n")
}

func fallbackMessage(results []domain.RankedResult) string {
	if len(results) == 0 {
		return "I couldn't match that to a topic I know or to your indexed materials. Could you rephrase it, or name the topic directly?"
	}
	best := results[0]
	return fmt.Sprintf(
		"I couldn't pin down a specific topic, but your materials have something close:\n\n%s\n\nDoes this point in the right direction?",
		truncate(best.Content, 200))
}

func feedbackRequest(analysis domain.InputAnalysis, profile *domain.LearnerProfile) string {
	if analysis.HasConfidence(domain.ConfidenceLow) {
		return "Was this explanation clearer? Tell me which part is still confusing and I'll approach it differently."
	}
	if profile.OverallLevel == domain.LevelBeginner {
		return "Did this match your pace? Say the word and I'll slow down or add more examples."
	}
	return "Was this the right depth? I can go deeper into internals or keep it practical."
}

func (s *AssistantService) record(input string, analysis domain.InputAnalysis, message string, elapsed time.Duration) {
	s.history = append(s.history, domain.Interaction{
		Timestamp:      time.Now(),
		Input:          input,
		Analysis:       analysis,
		MessagePreview: truncate(message, 100),
		Elapsed:        elapsed,
	})
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}

	for _, topic := range analysis.Topics {
		if !contains(s.explored, topic) {
			s.explored = append(s.explored, topic)
		}
	}

	s.elapsed += elapsed
	s.responses++
}

func (s *AssistantService) persistProfile(ctx context.Context) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.Save(ctx, s.profile); err != nil {
		logger.Warn("assistant: save profile: %v", err)
	}
}

// Dashboard summarises the session and learner progress.
func (s *AssistantService) Dashboard() driving.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	var avg time.Duration
	if s.responses > 0 {
		avg = s.elapsed / time.Duration(s.responses)
	}
	return driving.Dashboard{
		Profile:             *s.profile,
		Interactions:        len(s.history),
		SessionDuration:     time.Since(s.start),
		TopicsExplored:      append([]string(nil), s.explored...),
		AverageResponseTime: avg,
		Recommendations:     s.analyzer.Recommendations(s.profile),
	}
}

// StudyPlan generates a multi-week plan from the profile's gaps and
// the topics explored this session.
func (s *AssistantService) StudyPlan(weeks int) driving.StudyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content.StudyPlan(s.profile, s.explored, weeks)
}

// Reset clears the conversation history and session counters while
// keeping the learner profile.
func (s *AssistantService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.explored = nil
	s.start = time.Now()
	s.elapsed = 0
	s.responses = 0
}

// Export returns the session data for backup or analysis.
func (s *AssistantService) Export() driving.SessionExport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return driving.SessionExport{
		Start:          s.start,
		Duration:       time.Since(s.start),
		Profile:        *s.profile,
		History:        append([]domain.Interaction(nil), s.history...),
		TopicsExplored: append([]string(nil), s.explored...),
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
