package store

import (
	"context"
	"time"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when non-empty
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// ResultRepo is the history store for completed assessments.
type ResultRepo interface {
	// SaveResult appends a completed assessment.
	SaveResult(ctx context.Context, result assessment.TestResult) error

	// RecentResults returns up to limit results, oldest first.
	// A limit of 0 returns the full history.
	RecentResults(ctx context.Context, limit int) ([]assessment.TestResult, error)
}

// PoolRepo stores named pools of approved questions.
type PoolRepo interface {
	// SavePool replaces the named pool with questions, preserving order.
	SavePool(ctx context.Context, name string, questions []assessment.Question) error

	// LoadPool returns the named pool in saved order; empty if absent.
	LoadPool(ctx context.Context, name string) ([]assessment.Question, error)

	// Pools lists pool names with their sizes.
	Pools(ctx context.Context) (map[string]int, error)
}
