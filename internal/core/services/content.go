package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
)

const (
	// maxExplanationResources caps how many retrieval hits an
	// explanation lists as supporting material.
	maxExplanationResources = 3

	// minContextChars is the minimum hit length worth quoting back.
	minContextChars = 100

	// minContextSimilarity gates quoting indexed material into the
	// explanation's conclusion.
	minContextSimilarity = 0.3

	previewChars = 160
)

// topicContent is the canned teaching material for one topic.
type topicContent struct {
	intros    map[domain.ExplanationStyle]string
	example   string
	language  string
	practice  string
	exercises map[domain.SkillLevel]string
	starter   string
	hint      string
}

// defaultProgression orders topics for a study plan when the profile
// has no gaps and the session explored nothing yet.
var defaultProgression = []string{
	"variables", "conditionals", "loops", "functions",
	"slices_arrays", "maps", "structs_methods", "error_handling",
}

// Ensure ContentService implements the interface.
var _ driving.ContentGenerator = (*ContentService)(nil)

// ContentService generates explanations, exercises and study plans
// from a canned per-topic content bank, personalised to the profile.
type ContentService struct {
	bank map[string]topicContent
}

// NewContentService creates a content generator.
func NewContentService() *ContentService {
	return &ContentService{bank: buildTopicBank()}
}

// Explanation builds a personalised explanation: intro at the
// learner's style, a code example, a practice prompt, supporting
// resources from the retrieval hits and related next steps.
func (s *ContentService) Explanation(topic string, profile *domain.LearnerProfile, results []domain.RankedResult) *domain.Explanation {
	style := profile.Style
	if style == "" {
		style = domain.StyleSimple
	}

	exp := &domain.Explanation{Topic: topic, Style: style}

	if tc, ok := s.bank[topic]; ok {
		exp.Introduction = tc.intros[style]
		exp.Example = tc.example
		exp.ExampleLanguage = tc.language
		exp.Practice = tc.practice
	}
	if exp.Introduction == "" {
		exp.Introduction = genericIntro(topic, style)
	}
	if exp.Practice == "" {
		exp.Practice = fmt.Sprintf("Write a small program that uses %s and explain each line to yourself.", topicDisplay(topic))
	}

	for i, hit := range results {
		if i >= maxExplanationResources {
			break
		}
		exp.Resources = append(exp.Resources, formatResource(hit))
	}

	if len(results) > 0 {
		best := results[0]
		if best.Similarity > minContextSimilarity && len(best.Content) > minContextChars {
			exp.Conclusion = "From your indexed materials: " + firstSentences(best.Content, 2)
		}
	}

	for _, related := range relatedTopics[topic] {
		exp.NextSteps = append(exp.NextSteps, fmt.Sprintf("Explore %s next", topicDisplay(related)))
	}
	return exp
}

// Exercise builds an interactive exercise for a topic at the given
// level. Expert falls back to the advanced exercise; unknown topics
// get a generic task.
func (s *ContentService) Exercise(topic string, level domain.SkillLevel) domain.Exercise {
	ex := domain.Exercise{Topic: topic, Level: level}

	tc, ok := s.bank[topic]
	if ok {
		prompt := tc.exercises[level]
		if prompt == "" && level == domain.LevelExpert {
			prompt = tc.exercises[domain.LevelAdvanced]
		}
		ex.Prompt = prompt
		ex.Starter = tc.starter
		ex.Hint = tc.hint
	}
	if ex.Prompt == "" {
		ex.Prompt = fmt.Sprintf("Build a small example that demonstrates %s, then extend it with one variation of your own.", topicDisplay(topic))
		ex.Hint = "Start from the simplest version that runs, then grow it."
	}
	return ex
}

// StudyPlan schedules topics over the given weeks: open gaps first
// (strongest evidence first), then topics explored this session, then
// the default progression when both are empty.
func (s *ContentService) StudyPlan(profile *domain.LearnerProfile, explored []string, weeks int) driving.StudyPlan {
	if weeks < 1 {
		weeks = 1
	}

	var topics []string
	seen := make(map[string]bool)
	add := func(topic string) {
		if !seen[topic] {
			seen[topic] = true
			topics = append(topics, topic)
		}
	}
	for _, gap := range profile.Gaps {
		add(gap.Topic)
	}
	for _, topic := range explored {
		add(topic)
	}
	if len(topics) == 0 {
		topics = append(topics, defaultProgression...)
	}

	perWeek := len(topics) / weeks
	if perWeek < 1 {
		perWeek = 1
	}

	plan := driving.StudyPlan{Level: profile.OverallLevel}
	for week := 1; week <= weeks && len(topics) > 0; week++ {
		n := perWeek
		if week == weeks || n > len(topics) {
			n = len(topics)
		}
		weekTopics := topics[:n]
		topics = topics[n:]

		plan.Weeks = append(plan.Weeks, driving.StudyPlanWeek{
			Week:   week,
			Topics: append([]string(nil), weekTopics...),
			Goal:   weekGoal(week, weeks, weekTopics),
		})
	}
	return plan
}

func weekGoal(week, weeks int, topics []string) string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = topicDisplay(t)
	}
	joined := strings.Join(names, ", ")

	switch {
	case week == 1:
		return fmt.Sprintf("Build a working foundation in %s", joined)
	case week == weeks:
		return fmt.Sprintf("Consolidate %s with a small project", joined)
	default:
		return fmt.Sprintf("Deepen %s through daily practice", joined)
	}
}

// formatResource turns a retrieval hit into a display resource with a
// modality-specific detail label.
func formatResource(hit domain.RankedResult) domain.FoundResource {
	res := domain.FoundResource{
		Modality:      hit.Modality,
		Preview:       truncate(hit.Content, previewChars),
		SimilarityPct: hit.Similarity * 100,
	}
	if src, ok := hit.Metadata["source"].(string); ok {
		res.Source = src
	}

	switch hit.Modality {
	case domain.ModalityPDF:
		if pages, ok := hit.Metadata["total_pages"].(int); ok {
			res.Detail = fmt.Sprintf("%d pages", pages)
		}
	case domain.ModalityVideo:
		start, _ := hit.Metadata["start_timestamp"].(string)
		end, _ := hit.Metadata["end_timestamp"].(string)
		if start != "" && end != "" {
			res.Detail = start + "-" + end
		}
	case domain.ModalityImage:
		width, wok := hit.Metadata["width"].(int)
		height, hok := hit.Metadata["height"].(int)
		if wok && hok {
			res.Detail = fmt.Sprintf("%dx%d", width, height)
		}
	default:
		if idx, ok := hit.Metadata["chunk_index"].(int); ok {
			if total, ok := hit.Metadata["total_chunks"].(int); ok {
				res.Detail = fmt.Sprintf("chunk %d/%d", idx+1, total)
			}
		}
	}
	return res
}

func genericIntro(topic string, style domain.ExplanationStyle) string {
	display := topicDisplay(topic)
	switch style {
	case domain.StyleSimple:
		return fmt.Sprintf("Let's take %s step by step, starting from what it is for and building up with small examples.", display)
	case domain.StyleDetailed:
		return fmt.Sprintf("%s is a core programming concept; we'll look at how it works, when to reach for it, and the mistakes to avoid.", display)
	default:
		return fmt.Sprintf("%s: a look at the underlying mechanics, the trade-offs involved, and where the edge cases live.", display)
	}
}

// topicDisplay renders a topic identifier for humans: underscores
// become spaces and the first letter is capitalised.
func topicDisplay(topic string) string {
	display := strings.ReplaceAll(topic, "_", " ")
	runes := []rune(display)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// firstSentences returns the first n sentences of text.
func firstSentences(text string, n int) string {
	var out strings.Builder
	count := 0
	for _, r := range text {
		out.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			count++
			if count >= n {
				break
			}
		}
	}
	return strings.TrimSpace(out.String())
}
