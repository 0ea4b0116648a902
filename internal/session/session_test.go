package session

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/error402-ai/intellitest/internal/adaptive"
	"github.com/error402-ai/intellitest/internal/assessment"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func mcq(id string, difficulty float64) assessment.Question {
	return assessment.Question{
		ID:          id,
		Text:        "What is 2 + 2?",
		Type:        assessment.TypeMCQ,
		Difficulty:  difficulty,
		BloomsLevel: assessment.Apply,
		Options:     []string{"3", "4", "5", "6"},
		Correct:     "4",
	}
}

func testConfig(count, minutes int) assessment.Config {
	return assessment.Config{
		QuestionType:  assessment.TypeMCQ,
		Difficulty:    3,
		BloomsLevel:   assessment.Apply,
		QuestionCount: count,
		TimeLimit:     minutes,
	}
}

func testPool() []assessment.Question {
	return []assessment.Question{
		mcq("a", 3), mcq("b", 3.5), mcq("c", 4), mcq("d", 2), mcq("e", 2.5),
	}
}

func TestSession_AdaptiveRun(t *testing.T) {
	clock := newClock()
	s := New(testConfig(3, 0), testPool(), adaptive.NewSeeded(1), WithClock(clock.Now), WithID("run-1"))

	q, adj, ok := s.Next()
	if !ok || q.ID != "a" {
		t.Fatalf("first question = %v (ok=%v), want a", q, ok)
	}
	if adj.Reason != ReasonStart || adj.NewDifficulty != 3 {
		t.Errorf("first adjustment = %+v, want start at 3", adj)
	}
	clock.Advance(20 * time.Second)
	fb, err := s.Answer("4")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !fb.Correct || !fb.Graded || fb.TimeSpent != 20*time.Second {
		t.Errorf("feedback = %+v", fb)
	}

	// One correct answer: stable, stays at 3; b and e tie, pool order wins.
	q, adj, ok = s.Next()
	if !ok || q.ID != "b" {
		t.Fatalf("second question = %v (ok=%v), want b", q, ok)
	}
	if adj.NewDifficulty != 3 {
		t.Errorf("second difficulty = %v, want 3", adj.NewDifficulty)
	}
	clock.Advance(20 * time.Second)
	if _, err := s.Answer("2"); err != nil { // index of "4"
		t.Fatalf("Answer: %v", err)
	}

	// Two in a row at a good pace: +0.25 rounds to 3.5.
	q, adj, ok = s.Next()
	if !ok || q.ID != "c" {
		t.Fatalf("third question = %v (ok=%v), want c", q, ok)
	}
	if adj.NewDifficulty != 3.5 || s.Difficulty() != 3.5 {
		t.Errorf("third difficulty = %v, want 3.5", adj.NewDifficulty)
	}
	clock.Advance(10 * time.Second)
	fb, _ = s.Answer("5")
	if fb.Correct {
		t.Error("expected wrong answer")
	}

	if _, _, ok := s.Next(); ok {
		t.Fatal("expected session to stop at the requested count")
	}
	if s.Stopped() != StopCount {
		t.Errorf("Stopped = %v, want %v", s.Stopped(), StopCount)
	}

	m := s.Metrics()
	if m.QuestionsAnswered != 3 || m.TotalQuestions != 3 {
		t.Errorf("answered/total = %d/%d, want 3/3", m.QuestionsAnswered, m.TotalQuestions)
	}
	if m.ConsecutiveIncorrect != 1 || m.ConsecutiveCorrect != 0 {
		t.Errorf("streaks = %d/%d, want 0/1", m.ConsecutiveCorrect, m.ConsecutiveIncorrect)
	}
	if math.Abs(m.AverageResponseTime-50.0/3) > 1e-9 {
		t.Errorf("AverageResponseTime = %v, want %v", m.AverageResponseTime, 50.0/3)
	}

	r := s.Result()
	if r.ID != "run-1" {
		t.Errorf("result ID = %q", r.ID)
	}
	if math.Abs(r.Score-200.0/3) > 1e-9 {
		t.Errorf("Score = %v, want %v", r.Score, 200.0/3)
	}
	if r.TimeSpent != 50 {
		t.Errorf("TimeSpent = %d, want 50", r.TimeSpent)
	}
	if r.Difficulty != 3 || r.BloomsLevel != assessment.Apply {
		t.Errorf("result config = %v/%v", r.Difficulty, r.BloomsLevel)
	}
	if len(r.Questions) != 3 || !r.Questions[0].IsCorrect || r.Questions[2].IsCorrect {
		t.Errorf("result questions = %+v", r.Questions)
	}
	if r.Questions[2].TimeSpentMs != 10000 {
		t.Errorf("TimeSpentMs = %d, want 10000", r.Questions[2].TimeSpentMs)
	}
	if !r.CompletedAt.Equal(clock.Now()) {
		t.Errorf("CompletedAt = %v", r.CompletedAt)
	}
}

func TestSession_NeverRepeatsQuestions(t *testing.T) {
	s := New(testConfig(10, 0), []assessment.Question{mcq("only", 3)}, adaptive.NewSeeded(1))

	q, _, ok := s.Next()
	if !ok || q.ID != "only" {
		t.Fatalf("first question = %v", q)
	}
	if _, err := s.Answer("4"); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := s.Next(); ok {
		t.Fatal("expected pool exhaustion")
	}
	if s.Stopped() != StopExhausted {
		t.Errorf("Stopped = %v, want %v", s.Stopped(), StopExhausted)
	}
}

func TestSession_TimeLimit(t *testing.T) {
	clock := newClock()
	s := New(testConfig(5, 1), testPool(), adaptive.NewSeeded(1), WithClock(clock.Now))

	if s.Remaining() != time.Minute {
		t.Errorf("Remaining = %v, want 1m", s.Remaining())
	}
	if _, _, ok := s.Next(); !ok {
		t.Fatal("expected a question before the limit")
	}
	clock.Advance(61 * time.Second)
	if !s.TimeUp() || s.Remaining() != 0 {
		t.Errorf("TimeUp = %v, Remaining = %v", s.TimeUp(), s.Remaining())
	}
	if _, _, ok := s.Next(); ok {
		t.Fatal("expected no question after the limit")
	}
	if s.Stopped() != StopTimeUp {
		t.Errorf("Stopped = %v, want %v", s.Stopped(), StopTimeUp)
	}
}

func TestSession_Untimed(t *testing.T) {
	clock := newClock()
	s := New(testConfig(5, 0), testPool(), nil, WithClock(clock.Now))
	clock.Advance(24 * time.Hour)
	if s.TimeUp() || s.Remaining() != 0 {
		t.Errorf("untimed session: TimeUp = %v, Remaining = %v", s.TimeUp(), s.Remaining())
	}
}

func TestSession_RecordErrors(t *testing.T) {
	s := New(testConfig(5, 0), testPool(), adaptive.NewSeeded(1))

	if err := s.Record("a", true, time.Second); !errors.Is(err, ErrNotAsked) {
		t.Errorf("Record before asking = %v, want ErrNotAsked", err)
	}
	if _, err := s.Answer("4"); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("Answer with no question = %v, want ErrNoQuestion", err)
	}

	q, _, _ := s.Next()
	if err := s.Record(q.ID, true, time.Second); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(q.ID, false, time.Second); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second Record = %v, want ErrAlreadyAnswered", err)
	}
	if s.Current() != nil {
		t.Error("expected no current question after recording")
	}
}

func TestSession_UngradedAnswerWaitsForRecord(t *testing.T) {
	q := mcq("essay", 3)
	q.Type = assessment.TypeSubjective
	q.Correct = ""
	s := New(testConfig(5, 0), []assessment.Question{q}, adaptive.NewSeeded(1))

	s.Next()
	fb, err := s.Answer("Because recursion needs a base case.")
	if err != nil {
		t.Fatal(err)
	}
	if fb.Graded {
		t.Fatal("subjective answer should not be graded")
	}
	if s.Metrics().QuestionsAnswered != 0 || s.Current() == nil {
		t.Fatal("ungraded answer should not be recorded")
	}
	if err := s.Record(fb.Question.ID, true, fb.TimeSpent); err != nil {
		t.Fatal(err)
	}
	if s.Metrics().CurrentScore != 100 {
		t.Errorf("CurrentScore = %v, want 100", s.Metrics().CurrentScore)
	}
}

func TestSession_EmptyMetrics(t *testing.T) {
	s := New(testConfig(7, 0), testPool(), adaptive.NewSeeded(1))
	m := s.Metrics()
	if m.CurrentScore != 0 || m.AverageResponseTime != 0 || m.QuestionsAnswered != 0 {
		t.Errorf("empty metrics = %+v", m)
	}
	if m.TotalQuestions != 7 || m.DifficultyLevel != 3 {
		t.Errorf("total/difficulty = %d/%v, want 7/3", m.TotalQuestions, m.DifficultyLevel)
	}
	if len(s.Recent()) != 0 {
		t.Errorf("Recent = %v, want empty", s.Recent())
	}
	if r := s.Result(); r.Score != 0 || len(r.Questions) != 0 {
		t.Errorf("empty result = %+v", r)
	}
}

func TestSession_RecentKeepsLastFive(t *testing.T) {
	var pool []assessment.Question
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"} {
		pool = append(pool, mcq(id, 3))
	}
	s := New(testConfig(10, 0), pool, adaptive.NewSeeded(1))

	for i, q := range pool {
		s.asked[q.ID] = true
		if err := s.Record(q.ID, i%2 == 0, time.Duration(i+1)*time.Second); err != nil {
			t.Fatal(err)
		}
	}

	recent := s.Recent()
	if len(recent) != RecentWindow {
		t.Fatalf("len(Recent) = %d, want %d", len(recent), RecentWindow)
	}
	if recent[0].TimeSpent != 3 || recent[4].TimeSpent != 7 {
		t.Errorf("Recent window = %+v, want answers 3..7", recent)
	}

	recent[0].IsCorrect = !recent[0].IsCorrect
	if s.Recent()[0].IsCorrect == recent[0].IsCorrect {
		t.Error("Recent should return a copy")
	}
}

func TestSession_AssignsMissingIDs(t *testing.T) {
	q := mcq("", 3)
	s := New(testConfig(1, 0), []assessment.Question{q}, adaptive.NewSeeded(1))
	got, _, ok := s.Next()
	if !ok || got.ID == "" {
		t.Fatalf("question = %+v, want generated ID", got)
	}
	if s.ID == "" {
		t.Error("expected a generated session ID")
	}
}

func TestSession_Quit(t *testing.T) {
	s := New(testConfig(5, 0), testPool(), adaptive.NewSeeded(1))
	s.Next()
	s.Quit()
	if s.Current() != nil {
		t.Error("expected no current question after quit")
	}
	if _, _, ok := s.Next(); ok {
		t.Error("expected no question after quit")
	}
	if s.Stopped() != StopQuit || s.Stopped().String() != "quit" {
		t.Errorf("Stopped = %v", s.Stopped())
	}
}
