// Package session runs a single adaptive assessment over an approved
// question pool.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/error402-ai/intellitest/internal/adaptive"
	"github.com/error402-ai/intellitest/internal/assessment"
)

// RecentWindow is the number of answers passed to the controller as
// recent performance.
const RecentWindow = 5

// ReasonStart is the adjustment reason for questions served before any
// answer is recorded.
const ReasonStart = "Starting difficulty"

var (
	ErrNotAsked        = errors.New("question was not asked in this session")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNoQuestion      = errors.New("no question in progress")
)

// StopReason records why a session stopped serving questions.
type StopReason int

const (
	StopNone      StopReason = iota
	StopCount                // requested question count reached
	StopExhausted            // no question near the target difficulty
	StopTimeUp               // time limit passed
	StopQuit                 // ended by the learner
)

func (r StopReason) String() string {
	switch r {
	case StopCount:
		return "completed"
	case StopExhausted:
		return "pool exhausted"
	case StopTimeUp:
		return "time up"
	case StopQuit:
		return "quit"
	}
	return "in progress"
}

// Session holds the state of one assessment. It is not safe for concurrent
// use.
type Session struct {
	ID string

	cfg        assessment.Config
	pool       []assessment.Question
	controller *adaptive.Controller
	now        func() time.Time

	start      time.Time
	difficulty float64
	asked      map[string]bool
	current    *assessment.Question
	askedAt    time.Time
	lastAdj    *assessment.Adjustment
	stop       StopReason

	answers []assessment.AnsweredQuestion
	events  []assessment.Answer

	consecutiveCorrect   int
	consecutiveIncorrect int
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets the session (and result) ID instead of a random UUID.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// New starts a session at the configured difficulty. The pool should
// already be approved; questions without an ID are given one.
func New(cfg assessment.Config, pool []assessment.Question, controller *adaptive.Controller, opts ...Option) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		cfg:        cfg,
		controller: controller,
		now:        time.Now,
		difficulty: cfg.Difficulty,
		asked:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.controller == nil {
		s.controller = adaptive.New(nil)
	}

	s.pool = make([]assessment.Question, len(pool))
	copy(s.pool, pool)
	for i := range s.pool {
		if s.pool[i].ID == "" {
			s.pool[i].ID = uuid.NewString()
		}
	}

	s.start = s.now()
	return s
}

// Next selects the next question and moves the current difficulty to the
// adjusted target. ok is false once the session has stopped; see Stopped.
func (s *Session) Next() (q *assessment.Question, adj assessment.Adjustment, ok bool) {
	if s.stop != StopNone {
		return nil, s.lastAdjustment(), false
	}
	if s.cfg.QuestionCount > 0 && len(s.asked) >= s.cfg.QuestionCount {
		s.stop = StopCount
		return nil, s.lastAdjustment(), false
	}
	if s.TimeUp() {
		s.stop = StopTimeUp
		return nil, s.lastAdjustment(), false
	}

	remaining := make([]assessment.Question, 0, len(s.pool)-len(s.asked))
	for _, p := range s.pool {
		if !s.asked[p.ID] {
			remaining = append(remaining, p)
		}
	}

	if len(s.events) == 0 {
		// Nothing to adapt to yet: serve at the configured difficulty.
		adj = assessment.Adjustment{NewDifficulty: s.difficulty, Reason: ReasonStart, Confidence: 1}
		q = s.controller.QuestionNear(adj.NewDifficulty, adj.Confidence, s.cfg.BloomsLevel, remaining)
	} else {
		q, adj = s.controller.NextQuestion(s.Metrics(), s.Recent(), s.cfg, remaining)
	}
	s.difficulty = adj.NewDifficulty
	s.lastAdj = &adj
	if q == nil {
		s.stop = StopExhausted
		return nil, adj, false
	}

	s.asked[q.ID] = true
	s.current = q
	s.askedAt = s.now()
	return q, adj, true
}

// Current returns the question in progress, or nil.
func (s *Session) Current() *assessment.Question {
	return s.current
}

// Feedback is the outcome of answering the current question.
type Feedback struct {
	Question  assessment.Question
	Correct   bool
	Graded    bool
	TimeSpent time.Duration
}

// Answer grades the learner's input for the current question. Gradable
// answers are recorded immediately. Ungraded ones (subjective questions)
// are left for the caller to Record once marked.
func (s *Session) Answer(given string) (Feedback, error) {
	if s.current == nil {
		return Feedback{}, ErrNoQuestion
	}
	q := *s.current
	fb := Feedback{Question: q, TimeSpent: s.now().Sub(s.askedAt)}
	fb.Correct, fb.Graded = assessment.CheckAnswer(&q, given)
	if !fb.Graded {
		return fb, nil
	}
	if err := s.Record(q.ID, fb.Correct, fb.TimeSpent); err != nil {
		return fb, err
	}
	return fb, nil
}

// Record adds the answer for an asked question.
func (s *Session) Record(questionID string, correct bool, timeSpent time.Duration) error {
	if !s.asked[questionID] {
		return fmt.Errorf("record %s: %w", questionID, ErrNotAsked)
	}
	for _, a := range s.answers {
		if a.ID == questionID {
			return fmt.Errorf("record %s: %w", questionID, ErrAlreadyAnswered)
		}
	}

	var q assessment.Question
	for _, p := range s.pool {
		if p.ID == questionID {
			q = p
			break
		}
	}

	s.answers = append(s.answers, assessment.AnsweredQuestion{
		Question:    q,
		IsCorrect:   correct,
		TimeSpentMs: timeSpent.Milliseconds(),
	})
	s.events = append(s.events, assessment.Answer{
		IsCorrect:  correct,
		TimeSpent:  timeSpent.Seconds(),
		Difficulty: q.Difficulty,
	})

	if correct {
		s.consecutiveCorrect++
		s.consecutiveIncorrect = 0
	} else {
		s.consecutiveIncorrect++
		s.consecutiveCorrect = 0
	}

	if s.current != nil && s.current.ID == questionID {
		s.current = nil
	}
	return nil
}

// Metrics returns the live performance snapshot.
func (s *Session) Metrics() assessment.Metrics {
	m := assessment.Metrics{
		ConsecutiveCorrect:   s.consecutiveCorrect,
		ConsecutiveIncorrect: s.consecutiveIncorrect,
		DifficultyLevel:      s.difficulty,
		QuestionsAnswered:    len(s.events),
		TotalQuestions:       s.cfg.QuestionCount,
	}
	if len(s.events) == 0 {
		return m
	}

	var correct int
	var seconds float64
	for _, e := range s.events {
		if e.IsCorrect {
			correct++
		}
		seconds += e.TimeSpent
	}
	m.CurrentScore = 100 * float64(correct) / float64(len(s.events))
	m.AverageResponseTime = seconds / float64(len(s.events))
	return m
}

// Recent returns up to the last RecentWindow answers, oldest first.
func (s *Session) Recent() []assessment.Answer {
	from := max(0, len(s.events)-RecentWindow)
	out := make([]assessment.Answer, len(s.events)-from)
	copy(out, s.events[from:])
	return out
}

// Difficulty is the current target difficulty.
func (s *Session) Difficulty() float64 {
	return s.difficulty
}

// Elapsed is the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

// Remaining is the time left before the limit, or 0 for untimed sessions.
func (s *Session) Remaining() time.Duration {
	limit := s.cfg.TimeLimitDuration()
	if limit == 0 {
		return 0
	}
	return max(0, limit-s.Elapsed())
}

// TimeUp reports whether a timed session has run out.
func (s *Session) TimeUp() bool {
	limit := s.cfg.TimeLimitDuration()
	return limit > 0 && s.Elapsed() >= limit
}

// Quit stops the session early.
func (s *Session) Quit() {
	if s.stop == StopNone {
		s.stop = StopQuit
	}
	s.current = nil
}

// Stopped returns why the session stopped, or StopNone.
func (s *Session) Stopped() StopReason {
	return s.stop
}

// Result builds the completed assessment for the history store.
func (s *Session) Result() assessment.TestResult {
	answers := make([]assessment.AnsweredQuestion, len(s.answers))
	copy(answers, s.answers)

	var score float64
	if len(answers) > 0 {
		score = s.Metrics().CurrentScore
	}

	return assessment.TestResult{
		ID:          s.ID,
		Score:       score,
		TimeSpent:   int64(s.Elapsed().Seconds()),
		Difficulty:  s.cfg.Difficulty,
		BloomsLevel: s.cfg.BloomsLevel,
		Questions:   answers,
		CompletedAt: s.now(),
	}
}

func (s *Session) lastAdjustment() assessment.Adjustment {
	if s.lastAdj == nil {
		return assessment.Adjustment{NewDifficulty: s.difficulty}
	}
	return *s.lastAdj
}
