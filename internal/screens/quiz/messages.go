package quiz

import "time"

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// quizEndMsg is sent to trigger the end-of-assessment flow.
type quizEndMsg struct{}
