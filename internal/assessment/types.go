package assessment

import "time"

// QuestionType is the answer format of a question or the mix requested by a config.
type QuestionType string

const (
	TypeMCQ        QuestionType = "mcq"
	TypeSubjective QuestionType = "subjective"
	TypeNumerical  QuestionType = "numerical"
	TypeMixed      QuestionType = "mixed"
)

// Config describes one assessment generation/run. It is created by the
// caller and treated as read-only by the controllers.
type Config struct {
	QuestionType QuestionType `json:"questionType" validate:"required,question_type"`

	// Difficulty is the starting difficulty (1-5, half steps).
	Difficulty float64 `json:"difficulty" validate:"gte=1,lte=5,half_step"`

	BloomsLevel   BloomsLevel `json:"bloomsLevel" validate:"required,blooms_level"`
	QuestionCount int         `json:"questionCount" validate:"gte=1,lte=200"`
	FocusAreas    string      `json:"focusAreas,omitempty"`

	// SelectedMaterials holds identifiers of the source materials.
	SelectedMaterials []string `json:"selectedMaterials,omitempty" validate:"dive,required"`

	// TimeLimit is in minutes. Zero means untimed.
	TimeLimit int `json:"timeLimit" validate:"gte=0"`
}

// TimeLimitDuration returns the time limit as a duration (0 when untimed).
func (c Config) TimeLimitDuration() time.Duration {
	return time.Duration(c.TimeLimit) * time.Minute
}

// Question is a candidate or approved question.
type Question struct {
	ID           string       `json:"id"`
	Text         string       `json:"question" validate:"required"`
	Type         QuestionType `json:"type" validate:"required,question_type"`
	Difficulty   float64      `json:"difficulty" validate:"gte=1,lte=5"`
	BloomsLevel  BloomsLevel  `json:"bloomsLevel" validate:"required,blooms_level"`
	Options      []string     `json:"options,omitempty"`
	Correct      string       `json:"correctAnswer,omitempty"`
	Explanation  string       `json:"explanation,omitempty"`
	Keywords     []string     `json:"keywords,omitempty"`
	SourceText   string       `json:"sourceText,omitempty"`
	QualityScore float64      `json:"qualityScore" validate:"gte=0,lte=1"`
}

// QualityResult is the outcome of validating a single question.
type QualityResult struct {
	IsValid     bool     `json:"isValid"`
	Score       float64  `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Metrics is a snapshot of in-progress assessment performance.
type Metrics struct {
	// CurrentScore is a percentage (0-100).
	CurrentScore float64 `json:"currentScore" validate:"gte=0,lte=100"`

	// AverageResponseTime is in seconds.
	AverageResponseTime  float64 `json:"averageResponseTime" validate:"gte=0"`
	ConsecutiveCorrect   int     `json:"consecutiveCorrect" validate:"gte=0"`
	ConsecutiveIncorrect int     `json:"consecutiveIncorrect" validate:"gte=0"`
	DifficultyLevel      float64 `json:"difficultyLevel" validate:"gte=1,lte=5"`
	QuestionsAnswered    int     `json:"questionsAnswered" validate:"gte=0"`
	TotalQuestions       int     `json:"totalQuestions" validate:"gte=0"`
}

// Answer is one answered-question event in the rolling window.
type Answer struct {
	IsCorrect bool `json:"isCorrect"`

	// TimeSpent is in seconds.
	TimeSpent  float64 `json:"timeSpent" validate:"gte=0"`
	Difficulty float64 `json:"difficulty"`
}

// Adjustment is the outcome of one difficulty decision.
type Adjustment struct {
	NewDifficulty float64 `json:"newDifficulty"`
	Reason        string  `json:"reason"`
	Confidence    float64 `json:"confidence"`

	// Trend is the fraction correct among the last three answers.
	Trend float64 `json:"performanceTrend"`

	TimeEfficiency float64 `json:"timeEfficiency"`
}

// AnsweredQuestion is a question as it was answered in a completed assessment.
type AnsweredQuestion struct {
	Question
	IsCorrect   bool  `json:"isCorrect"`
	TimeSpentMs int64 `json:"timeSpentMs"`
}

// TestResult is a completed assessment, as read back from the history store.
type TestResult struct {
	ID string `json:"id"`

	// Score is a percentage (0-100).
	Score float64 `json:"score" validate:"gte=0,lte=100"`

	// TimeSpent is in seconds.
	TimeSpent   int64              `json:"timeSpent" validate:"gte=0"`
	Difficulty  float64            `json:"difficulty" validate:"gte=1,lte=5"`
	BloomsLevel BloomsLevel        `json:"bloomsLevel" validate:"required,blooms_level"`
	Questions   []AnsweredQuestion `json:"questions" validate:"dive"`
	CompletedAt time.Time          `json:"completedAt"`
}
