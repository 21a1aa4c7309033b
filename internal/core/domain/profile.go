package domain

// SkillLevel is the inferred proficiency of the learner.
type SkillLevel string

// Skill levels from least to most experienced.
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// Numeric returns the ordinal value of the level for weighted blending.
func (l SkillLevel) Numeric() float64 {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	default:
		return 1
	}
}

// LevelFromNumeric converts a blended numeric value back to a level.
func LevelFromNumeric(v float64) SkillLevel {
	switch {
	case v <= 1.5:
		return LevelBeginner
	case v <= 2.5:
		return LevelIntermediate
	case v <= 3.5:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

// LearningFormat is a preferred content format.
type LearningFormat string

// Learning format preferences detected from user input.
const (
	FormatText    LearningFormat = "text"
	FormatVideo   LearningFormat = "video"
	FormatVisual  LearningFormat = "visual"
	FormatHandsOn LearningFormat = "hands-on"
)

// ExplanationStyle controls how much depth explanations carry.
type ExplanationStyle string

// Explanation styles, selected from the learner's overall level.
const (
	StyleSimple    ExplanationStyle = "simple"
	StyleDetailed  ExplanationStyle = "detailed"
	StyleTechnical ExplanationStyle = "technical"
)

// KnowledgeGap is a topic the learner appears to struggle with.
type KnowledgeGap struct {
	// Topic is the programming topic identifier (e.g. "loops").
	Topic string

	// Level is the difficulty level at which the gap was observed.
	Level SkillLevel

	// Confidence grows each time the gap is re-observed (0.0-1.0).
	Confidence float64

	// Evidence holds the user inputs that revealed the gap.
	Evidence []string

	// RelatedTopics suggests what to study alongside.
	RelatedTopics []string
}

// LearnerProfile accumulates what the system knows about the user.
// It survives session resets and, when a profile store is configured,
// process restarts.
type LearnerProfile struct {
	// Name is optional and display-only.
	Name string

	// OverallLevel is the blended skill level across interactions.
	OverallLevel SkillLevel

	// Preferences are the detected learning format preferences.
	Preferences []LearningFormat

	// Gaps are the open knowledge gaps, strongest evidence first.
	Gaps []KnowledgeGap

	// StrongTopics are topics the learner has shown confidence in.
	StrongTopics []string

	// Interactions counts processed user inputs.
	Interactions int

	// Style is the preferred explanation style derived from the level.
	Style ExplanationStyle
}

// NewLearnerProfile returns a profile with beginner defaults.
func NewLearnerProfile() *LearnerProfile {
	return &LearnerProfile{
		OverallLevel: LevelBeginner,
		Style:        StyleSimple,
	}
}

// HasPreference reports whether the given format has been detected.
func (p *LearnerProfile) HasPreference(f LearningFormat) bool {
	for _, pref := range p.Preferences {
		if pref == f {
			return true
		}
	}
	return false
}

// GapFor returns the open gap for a topic, or nil.
func (p *LearnerProfile) GapFor(topic string) *KnowledgeGap {
	for i := range p.Gaps {
		if p.Gaps[i].Topic == topic {
			return &p.Gaps[i]
		}
	}
	return nil
}
