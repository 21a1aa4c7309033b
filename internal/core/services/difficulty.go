package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
)

// gap bookkeeping constants. A freshly observed gap starts at 0.3 and
// each re-observation strengthens it by 0.1 up to 1.0.
const (
	gapInitialConfidence = 0.3
	gapIncrement         = 0.1
	gapMaxConfidence     = 1.0

	// levelBlendOld weights the established level against new evidence
	// so one advanced-sounding question does not flip a beginner.
	levelBlendOld = 0.7
	levelBlendNew = 0.3

	maxPriorityTopics = 5
)

// topicTerms pairs a topic identifier with the substrings that signal
// it. Detection order is fixed: the first matching topic becomes the
// main topic of the response.
type topicTerms struct {
	topic string
	terms []string
}

var topicKeywords = []topicTerms{
	{"variables", []string{"variable", "declare", "declaration", "assignment", "constant", "initialize"}},
	{"data_types", []string{"data type", "integer", "float", "boolean", "type conversion", "casting"}},
	{"operators", []string{"operator", "arithmetic", "modulo", "comparison", "logical and", "logical or"}},
	{"conditionals", []string{"if statement", "conditional", "else", "switch", "branch"}},
	{"loops", []string{"loop", "for loop", "while", "iterate", "iteration", "range over"}},
	{"functions", []string{"function", "parameter", "argument", "return value", "closure", "variadic"}},
	{"slices_arrays", []string{"slice", "array", "append", "indexing", "subarray"}},
	{"maps", []string{"map", "dictionary", "key-value", "hash table", "lookup table"}},
	{"strings", []string{"string", "substring", "concatenat", "rune", "text manipulation"}},
	{"files", []string{"file", "read file", "write file", "open file", "csv", "directory"}},
	{"structs_methods", []string{"struct", "method", "receiver", "field", "object", "class"}},
	{"error_handling", []string{"error", "exception", "panic", "recover", "error handling"}},
	{"concurrency", []string{"goroutine", "channel", "concurrency", "mutex", "parallel", "race condition"}},
	{"algorithms", []string{"algorithm", "sorting", "recursion", "complexity", "big o", "binary search"}},
	{"data_structures", []string{"data structure", "linked list", "stack", "queue", "tree", "graph", "heap"}},
	{"design_patterns", []string{"design pattern", "singleton", "factory", "observer", "dependency injection"}},
}

// relatedTopics suggests what to study alongside each topic.
var relatedTopics = map[string][]string{
	"variables":       {"data_types", "operators"},
	"data_types":      {"variables", "strings"},
	"operators":       {"variables", "conditionals"},
	"conditionals":    {"operators", "loops"},
	"loops":           {"conditionals", "slices_arrays"},
	"functions":       {"variables", "error_handling"},
	"slices_arrays":   {"loops", "maps"},
	"maps":            {"slices_arrays", "strings"},
	"strings":         {"data_types", "slices_arrays"},
	"files":           {"strings", "error_handling"},
	"structs_methods": {"functions", "design_patterns"},
	"error_handling":  {"functions", "files"},
	"concurrency":     {"functions", "error_handling"},
	"algorithms":      {"data_structures", "loops"},
	"data_structures": {"algorithms", "slices_arrays"},
	"design_patterns": {"structs_methods", "concurrency"},
}

// difficultyIndicators signal how advanced the input's wording is.
var difficultyIndicators = []struct {
	level domain.SkillLevel
	terms []string
}{
	{domain.LevelBeginner, []string{"what is", "what are", "basic", "beginner", "getting started", "new to", "first time", "simple", "never used"}},
	{domain.LevelIntermediate, []string{"how does", "difference between", "implement", "refactor", "when should", "trade-off"}},
	{domain.LevelAdvanced, []string{"optimize", "performance", "architecture", "internals", "advanced", "complexity", "under the hood"}},
	{domain.LevelExpert, []string{"scalability", "distributed", "lock-free", "memory model", "benchmark", "profiling", "garbage collector"}},
}

// formatIndicators signal learning format preferences.
var formatIndicators = []struct {
	format domain.LearningFormat
	terms  []string
}{
	{domain.FormatVideo, []string{"video", "watch", "lecture", "screencast", "tutorial video"}},
	{domain.FormatText, []string{"read", "article", "documentation", "book", "written"}},
	{domain.FormatVisual, []string{"diagram", "picture", "chart", "visual", "illustration"}},
	{domain.FormatHandsOn, []string{"practice", "exercise", "hands-on", "try it", "code along", "project", "example"}},
}

// confidenceIndicators signal how sure the user sounds.
var confidenceIndicators = []struct {
	signal domain.ConfidenceSignal
	terms  []string
}{
	{domain.ConfidenceLow, []string{"don't understand", "confused", "lost", "struggling", "no idea", "stuck", "difficult", "hard for me"}},
	{domain.ConfidenceMedium, []string{"i think", "maybe", "not sure", "kind of", "roughly", "somewhat"}},
	{domain.ConfidenceHigh, []string{"i understand", "i know", "got it", "makes sense", "already know", "easy for me", "mastered"}},
}

// questionPatterns classify question intent; the first match wins.
var questionPatterns = []struct {
	qtype   domain.QuestionType
	pattern *regexp.Regexp
}{
	{domain.QuestionDefinition, regexp.MustCompile(`(?i)^what\s+(is|are)\b|what\s+does\s+.*\bmean\b|\bdefine\b|\bdefinition\b`)},
	{domain.QuestionHowTo, regexp.MustCompile(`(?i)\bhow\s+(do|can|to|does|should)\b`)},
	{domain.QuestionDifference, regexp.MustCompile(`(?i)\bdifference\s+between\b|\bdiffer\b`)},
	{domain.QuestionExample, regexp.MustCompile(`(?i)\bexamples?\b|\bshow\s+me\b`)},
	{domain.QuestionComparison, regexp.MustCompile(`(?i)\bversus\b|\bvs\.?\b|\bcompare\b|\bbetter\s+than\b`)},
	{domain.QuestionTroubleshooting, regexp.MustCompile(`(?i)\berror\b|\bbug\b|\bfail(s|ed|ing)?\b|\bnot\s+working\b|\bdoesn't\s+work\b|\bpanic(s|ked|king)?\b|\bcrash\b`)},
	{domain.QuestionBestPractice, regexp.MustCompile(`(?i)\bbest\s+(way|practice)\b|\bshould\s+i\b|\bidiomatic\b|\brecommended\b`)},
}

// Ensure DifficultyService implements the interface.
var _ driving.Analyzer = (*DifficultyService)(nil)

// DifficultyService analyses user input for topics, difficulty,
// preferences and confidence, and maintains the learner profile.
type DifficultyService struct{}

// NewDifficultyService creates a difficulty analyzer.
func NewDifficultyService() *DifficultyService {
	return &DifficultyService{}
}

// Analyze extracts topics, difficulty level, format preferences,
// confidence signals and question type from one user input.
func (s *DifficultyService) Analyze(input string) domain.InputAnalysis {
	lower := strings.ToLower(input)

	analysis := domain.InputAnalysis{
		Level:        detectLevel(lower),
		QuestionType: classifyQuestion(input),
	}

	for _, tk := range topicKeywords {
		if containsAny(lower, tk.terms) {
			analysis.Topics = append(analysis.Topics, tk.topic)
		}
	}
	for _, fi := range formatIndicators {
		if containsAny(lower, fi.terms) {
			analysis.Formats = append(analysis.Formats, fi.format)
		}
	}
	for _, ci := range confidenceIndicators {
		if containsAny(lower, ci.terms) {
			analysis.Confidence = append(analysis.Confidence, ci.signal)
		}
	}
	return analysis
}

// UpdateProfile folds one analysed input into the learner profile:
// blends the overall level, records format preferences, and opens,
// strengthens or clears knowledge gaps from confidence signals.
func (s *DifficultyService) UpdateProfile(profile *domain.LearnerProfile, analysis domain.InputAnalysis, input string) {
	profile.Interactions++

	level := analysis.Level
	if level == "" {
		level = domain.LevelBeginner
	}
	if profile.Interactions == 1 {
		profile.OverallLevel = level
	} else {
		blended := levelBlendOld*profile.OverallLevel.Numeric() + levelBlendNew*level.Numeric()
		profile.OverallLevel = domain.LevelFromNumeric(blended)
	}

	for _, f := range analysis.Formats {
		if !profile.HasPreference(f) {
			profile.Preferences = append(profile.Preferences, f)
		}
	}

	if analysis.HasConfidence(domain.ConfidenceLow) {
		for _, topic := range analysis.Topics {
			s.recordGap(profile, topic, level, input)
		}
	}
	if analysis.HasConfidence(domain.ConfidenceHigh) {
		for _, topic := range analysis.Topics {
			s.clearGap(profile, topic)
		}
	}

	sort.SliceStable(profile.Gaps, func(a, b int) bool {
		return profile.Gaps[a].Confidence > profile.Gaps[b].Confidence
	})

	profile.Style = styleForLevel(profile.OverallLevel)
}

// Recommendations derives study suggestions from the profile: the
// strongest open gaps, preferred or level-default formats, and
// level-appropriate next steps.
func (s *DifficultyService) Recommendations(profile *domain.LearnerProfile) driving.Recommendations {
	rec := driving.Recommendations{Style: profile.Style}

	for i, gap := range profile.Gaps {
		if i >= maxPriorityTopics {
			break
		}
		rec.PriorityTopics = append(rec.PriorityTopics, gap.Topic)
	}

	if len(profile.Preferences) > 0 {
		rec.SuggestedFormats = append(rec.SuggestedFormats, profile.Preferences...)
	} else if profile.OverallLevel == domain.LevelBeginner {
		rec.SuggestedFormats = []domain.LearningFormat{domain.FormatVideo, domain.FormatHandsOn}
	} else {
		rec.SuggestedFormats = []domain.LearningFormat{domain.FormatText, domain.FormatHandsOn}
	}

	rec.NextSteps = nextStepsForLevel(profile.OverallLevel)
	return rec
}

func (s *DifficultyService) recordGap(profile *domain.LearnerProfile, topic string, level domain.SkillLevel, evidence string) {
	if gap := profile.GapFor(topic); gap != nil {
		gap.Confidence += gapIncrement
		if gap.Confidence > gapMaxConfidence {
			gap.Confidence = gapMaxConfidence
		}
		gap.Evidence = append(gap.Evidence, evidence)
		return
	}
	profile.Gaps = append(profile.Gaps, domain.KnowledgeGap{
		Topic:         topic,
		Level:         level,
		Confidence:    gapInitialConfidence,
		Evidence:      []string{evidence},
		RelatedTopics: relatedTopics[topic],
	})
}

func (s *DifficultyService) clearGap(profile *domain.LearnerProfile, topic string) {
	for i := range profile.Gaps {
		if profile.Gaps[i].Topic == topic {
			profile.Gaps = append(profile.Gaps[:i], profile.Gaps[i+1:]...)
			break
		}
	}
	for _, strong := range profile.StrongTopics {
		if strong == topic {
			return
		}
	}
	profile.StrongTopics = append(profile.StrongTopics, topic)
}

// detectLevel picks the level whose indicators match the input most;
// ties keep the earlier (less advanced) level, default is beginner.
func detectLevel(lower string) domain.SkillLevel {
	best := domain.LevelBeginner
	bestCount := 0
	for _, di := range difficultyIndicators {
		count := 0
		for _, term := range di.terms {
			if strings.Contains(lower, term) {
				count++
			}
		}
		if count > bestCount {
			best = di.level
			bestCount = count
		}
	}
	return best
}

func classifyQuestion(input string) domain.QuestionType {
	for _, qp := range questionPatterns {
		if qp.pattern.MatchString(input) {
			return qp.qtype
		}
	}
	return domain.QuestionGeneral
}

func styleForLevel(level domain.SkillLevel) domain.ExplanationStyle {
	switch level {
	case domain.LevelBeginner:
		return domain.StyleSimple
	case domain.LevelIntermediate:
		return domain.StyleDetailed
	default:
		return domain.StyleTechnical
	}
}

func nextStepsForLevel(level domain.SkillLevel) []string {
	switch level {
	case domain.LevelBeginner:
		return []string{
			"Review the fundamentals with short practice exercises",
			"Write a small program that uses variables and conditionals",
			"Ask for examples whenever something feels abstract",
		}
	case domain.LevelIntermediate:
		return []string{
			"Build a small project combining several topics",
			"Practice reading and explaining unfamiliar code",
			"Study how the standard library solves common problems",
		}
	case domain.LevelAdvanced:
		return []string{
			"Profile and optimize one of your existing programs",
			"Explore concurrency patterns and their trade-offs",
			"Contribute a fix or feature to an open source project",
		}
	default:
		return []string{
			"Design a system end to end and document the trade-offs",
			"Mentor someone a level below you; teaching exposes gaps",
			"Study the runtime and tooling internals",
		}
	}
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
