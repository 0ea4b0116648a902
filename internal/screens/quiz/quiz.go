// Package quiz is the interactive assessment screen.
package quiz

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/logging"
	"github.com/error402-ai/intellitest/internal/router"
	"github.com/error402-ai/intellitest/internal/screen"
	"github.com/error402-ai/intellitest/internal/screens/summary"
	"github.com/error402-ai/intellitest/internal/session"
	"github.com/error402-ai/intellitest/internal/store"
	"github.com/error402-ai/intellitest/internal/ui/components"
	"github.com/error402-ai/intellitest/internal/ui/layout"
)

type phase int

const (
	phaseActive   phase = iota // answering a question
	phaseFeedback              // showing the answer outcome
	phaseSelfMark              // waiting for the learner to mark an ungraded answer
	phaseEnded
)

// QuizScreen implements screen.Screen for a running assessment.
type QuizScreen struct {
	ctx     context.Context
	sess    *session.Session
	results store.ResultRepo

	phase       phase
	showingQuit bool
	question    *assessment.Question
	adjustment  assessment.Adjustment
	feedback    *session.Feedback

	mc     components.MultiChoice
	input  components.TextInput
	isMC   bool
	errMsg string

	saved   bool
	saveErr error
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. results may be nil, in which case the finished
// assessment is not saved.
func New(ctx context.Context, sess *session.Session, results store.ResultRepo) *QuizScreen {
	return &QuizScreen{ctx: ctx, sess: sess, results: results}
}

func (s *QuizScreen) Init() tea.Cmd {
	cmd := s.advance()
	if s.phase == phaseEnded {
		return cmd
	}
	return tea.Batch(cmd, tickCmd())
}

func (s *QuizScreen) Title() string {
	return "Assessment"
}

func (s *QuizScreen) Status() string {
	m := s.sess.Metrics()
	return fmt.Sprintf("Difficulty %.1f   Score %.0f%%", s.sess.Difficulty(), m.CurrentScore)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showingQuit:
		return []layout.KeyHint{{Key: "Y", Description: "End assessment"}, {Key: "N", Description: "Keep going"}}
	case s.phase == phaseSelfMark:
		return []layout.KeyHint{{Key: "Y", Description: "I got it right"}, {Key: "N", Description: "I got it wrong"}}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()
	case quizEndMsg:
		return s, s.finish()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseActive && !s.isMC {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// advance serves the next question, or ends the assessment.
func (s *QuizScreen) advance() tea.Cmd {
	q, adj, ok := s.sess.Next()
	s.adjustment = adj
	s.feedback = nil
	if !ok {
		return func() tea.Msg { return quizEndMsg{} }
	}

	s.question = q
	s.phase = phaseActive
	s.isMC = q.Type == assessment.TypeMCQ && len(q.Options) > 0
	if s.isMC {
		s.mc = components.NewMultiChoice(q.Options)
		return nil
	}
	s.input = components.NewTextInput("Type your answer...", q.Type == assessment.TypeNumerical, 500)
	return s.input.Init()
}

func (s *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.phase == phaseEnded {
		return s, nil
	}
	// Let the learner finish the current question once time is up.
	if s.sess.TimeUp() && s.phase == phaseFeedback {
		return s, s.finish()
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.phase == phaseEnded {
		return s, nil
	}

	if s.showingQuit {
		switch key {
		case "y", "Y":
			s.showingQuit = false
			s.sess.Quit()
			return s, s.finish()
		case "n", "N", "esc":
			s.showingQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseSelfMark:
		switch key {
		case "y", "Y":
			return s, s.selfMark(true)
		case "n", "N":
			return s, s.selfMark(false)
		}
		return s, nil
	case phaseFeedback:
		return s, s.advance()
	}

	if key == "esc" {
		s.showingQuit = true
		return s, nil
	}

	if s.isMC {
		s.mc, _ = s.mc.Update(msg)
		if s.mc.Submitted {
			return s, s.submit(s.mc.Choice())
		}
		return s, nil
	}

	if key == "enter" {
		if s.input.Value() == "" {
			return s, nil
		}
		return s, s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) submit(given string) tea.Cmd {
	fb, err := s.sess.Answer(given)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.feedback = &fb
	if !fb.Graded {
		s.phase = phaseSelfMark
		return nil
	}
	s.phase = phaseFeedback
	return nil
}

func (s *QuizScreen) selfMark(correct bool) tea.Cmd {
	if err := s.sess.Record(s.feedback.Question.ID, correct, s.feedback.TimeSpent); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.feedback.Correct = correct
	s.feedback.Graded = true
	s.phase = phaseFeedback
	return nil
}

// finish saves the result and replaces this screen with the summary.
func (s *QuizScreen) finish() tea.Cmd {
	if s.phase == phaseEnded {
		return nil
	}
	s.phase = phaseEnded

	sum := session.BuildSummary(s.sess)
	result := s.sess.Result()
	next := summary.New(sum, result.ID, s.save(result))
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// Close ends the session and saves the result if the screen did not get to
// do so, as when the program is interrupted with Ctrl+C. It is safe to call
// more than once.
func (s *QuizScreen) Close() error {
	if s.saved {
		return s.saveErr
	}
	s.sess.Quit()
	return s.save(s.sess.Result())
}

// save stores result once. Results without answers are not stored.
func (s *QuizScreen) save(result assessment.TestResult) error {
	if s.saved {
		return s.saveErr
	}
	s.saved = true
	if s.results == nil || len(result.Questions) == 0 {
		return nil
	}
	s.saveErr = s.results.SaveResult(s.ctx, result)
	if s.saveErr != nil {
		log := logging.FromContext(s.ctx)
		log.Error().Err(s.saveErr).Str("result_id", result.ID).Msg("save assessment result")
	}
	return s.saveErr
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
