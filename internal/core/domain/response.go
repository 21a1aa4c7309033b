package domain

import "time"

// Explanation is a personalised explanation of one topic.
type Explanation struct {
	// Topic is the topic identifier.
	Topic string

	// Style is the explanation style used.
	Style ExplanationStyle

	// Introduction opens the explanation at the learner's level.
	Introduction string

	// Example is a code example, empty when none exists for the topic.
	Example string

	// ExampleLanguage is the fenced-code language tag for Example.
	ExampleLanguage string

	// Practice is a short practice prompt.
	Practice string

	// Conclusion closes the explanation, may be empty.
	Conclusion string

	// Resources lists supporting material found in the index.
	Resources []FoundResource

	// NextSteps suggests follow-up topics.
	NextSteps []string
}

// Exercise is an interactive exercise generated for a topic and level.
type Exercise struct {
	// Topic is the topic identifier.
	Topic string

	// Level is the difficulty the exercise targets.
	Level SkillLevel

	// Prompt states the task.
	Prompt string

	// Starter is optional starter code.
	Starter string

	// Hint nudges the learner without solving the task.
	Hint string
}

// FoundResource is a retrieval hit formatted for display.
type FoundResource struct {
	// Modality identifies the source indexer.
	Modality Modality

	// Preview is a truncated content snippet.
	Preview string

	// SimilarityPct is the similarity score as a percentage.
	SimilarityPct float64

	// Detail is a modality-specific label: page count for PDFs,
	// a timestamp range for videos, dimensions for images.
	Detail string

	// Source is the origin file path.
	Source string
}

// ResponseMeta carries diagnostics about how a response was produced.
type ResponseMeta struct {
	// Topics are the detected topics.
	Topics []string

	// Level is the difficulty level detected in the input.
	Level SkillLevel

	// QuestionType is the classified question intent.
	QuestionType QuestionType

	// ResultCount is the number of retrieval hits used.
	ResultCount int

	// UserLevel is the learner's blended overall level.
	UserLevel SkillLevel

	// Preferences are the learner's known format preferences.
	Preferences []LearningFormat
}

// Response is the assistant's answer to one user input.
type Response struct {
	// Message is the formatted main answer.
	Message string

	// Explanation is present when a topic was identified.
	Explanation *Explanation

	// Exercises are included for hands-on learners.
	Exercises []Exercise

	// Resources are retrieval hits backing the answer.
	Resources []FoundResource

	// NextSteps suggests what to explore next.
	NextSteps []string

	// FeedbackRequest asks the learner how the answer landed.
	FeedbackRequest string

	// Meta carries response diagnostics.
	Meta ResponseMeta
}

// Interaction is one exchange kept in the bounded conversation history.
type Interaction struct {
	// Timestamp is when the input was processed.
	Timestamp time.Time

	// Input is the raw user input.
	Input string

	// Analysis is the input analysis.
	Analysis InputAnalysis

	// MessagePreview is the first part of the response message.
	MessagePreview string

	// Elapsed is the processing time.
	Elapsed time.Duration
}
