package domain

// QuestionType classifies the intent of a user question.
type QuestionType string

// Question types recognised by the difficulty analyzer.
const (
	QuestionDefinition      QuestionType = "definition"
	QuestionHowTo           QuestionType = "how-to"
	QuestionDifference      QuestionType = "difference"
	QuestionExample         QuestionType = "example"
	QuestionComparison      QuestionType = "comparison"
	QuestionTroubleshooting QuestionType = "troubleshooting"
	QuestionBestPractice    QuestionType = "best-practice"
	QuestionGeneral         QuestionType = "general"
)

// ConfidenceSignal is how sure the user sounds about a topic.
type ConfidenceSignal string

// Confidence signals extracted from user input.
const (
	ConfidenceLow    ConfidenceSignal = "low"
	ConfidenceMedium ConfidenceSignal = "medium"
	ConfidenceHigh   ConfidenceSignal = "high"
)

// InputAnalysis is the result of analysing one user input.
type InputAnalysis struct {
	// Topics are the programming topics detected in the input.
	Topics []string

	// Level is the difficulty level suggested by the input's wording.
	Level SkillLevel

	// Formats are learning format preferences expressed in the input.
	Formats []LearningFormat

	// Confidence holds the detected confidence signals.
	Confidence []ConfidenceSignal

	// QuestionType classifies the question's intent.
	QuestionType QuestionType
}

// HasConfidence reports whether the given signal was detected.
func (a *InputAnalysis) HasConfidence(s ConfidenceSignal) bool {
	for _, c := range a.Confidence {
		if c == s {
			return true
		}
	}
	return false
}
