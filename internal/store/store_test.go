package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/error402-ai/intellitest/internal/assessment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= last {
			t.Fatalf("sequence not increasing: %d after %d", n, last)
		}
		last = n
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"quality-check", "quality-check", "question-gen"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "claude-haiku-4-5-20251001",
			Model:        "claude-haiku-4-5-20251001",
			Purpose:      purpose,
			InputTokens:  100,
			OutputTokens: 20,
			LatencyMs:    300,
			Success:      true,
			RequestBody:  "[user]\nquestion",
			ResponseBody: `{"isValid":true}`,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "quality-check",
		Success: false, ErrorMessage: "LLM provider unavailable",
	}); err != nil {
		t.Fatalf("append failure: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Error("expected newest first")
	}
	if events[0].Success {
		t.Error("expected newest event to be the failure")
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2, Purpose: "quality-check"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 events, got %d", len(limited))
	}
	for _, e := range limited {
		if e.Purpose != "quality-check" {
			t.Errorf("unexpected purpose %q", e.Purpose)
		}
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ResponseBody != events[1].ResponseBody {
		t.Fatalf("unexpected event: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	add := func(purpose, model string, in, out int, ok bool) {
		t.Helper()
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: model, Model: model, Purpose: purpose,
			InputTokens: in, OutputTokens: out, LatencyMs: 100, Success: ok,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	add("quality-check", "gpt-4o-mini", 100, 10, true)
	add("quality-check", "gpt-4o-mini", 200, 20, true)
	add("question-gen", "gpt-4o", 50, 5, true)
	add("question-gen", "gpt-4o", 0, 0, false)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	for _, u := range byPurpose {
		if u.Purpose == "quality-check" && (u.Calls != 2 || u.InputTokens != 300 || u.OutputTokens != 30) {
			t.Errorf("unexpected quality-check usage: %+v", u)
		}
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	for _, u := range byModel {
		if u.Model == "gpt-4o" && u.Calls != 1 {
			t.Errorf("failed calls must not count toward cost, got %+v", u)
		}
	}
}

func sampleResult(score float64) assessment.TestResult {
	return assessment.TestResult{
		Score:       score,
		TimeSpent:   540,
		Difficulty:  3,
		BloomsLevel: assessment.Analyze,
		CompletedAt: time.Now().UTC().Truncate(time.Millisecond),
		Questions: []assessment.AnsweredQuestion{
			{
				Question: assessment.Question{
					ID: "q-1", Text: "Compare merge sort and quicksort?", Type: assessment.TypeSubjective,
					Difficulty: 3, BloomsLevel: assessment.Analyze,
				},
				IsCorrect:   true,
				TimeSpentMs: 42000,
			},
		},
	}
}

func TestResultRepo_SaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	empty, err := repo.RecentResults(ctx, 5)
	if err != nil {
		t.Fatalf("recent (empty): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no results, got %d", len(empty))
	}

	for _, score := range []float64{40, 55, 70, 85} {
		if err := repo.SaveResult(ctx, sampleResult(score)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	recent, err := repo.RecentResults(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 results, got %d", len(recent))
	}
	// Oldest first among the 3 newest.
	wantScores := []float64{55, 70, 85}
	for i, r := range recent {
		if r.Score != wantScores[i] {
			t.Errorf("result %d score = %v, want %v", i, r.Score, wantScores[i])
		}
		if r.ID == "" {
			t.Errorf("result %d has no ID", i)
		}
	}
	if len(recent[0].Questions) != 1 || !recent[0].Questions[0].IsCorrect {
		t.Fatalf("answered questions not round-tripped: %+v", recent[0].Questions)
	}
	if recent[0].Questions[0].BloomsLevel != assessment.Analyze {
		t.Errorf("unexpected level %q", recent[0].Questions[0].BloomsLevel)
	}
}

func TestPoolRepo_SaveReplaceLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.PoolRepo()
	ctx := context.Background()

	first := []assessment.Question{
		{ID: "a", Text: "What is a heap?", Type: assessment.TypeSubjective, Difficulty: 2, BloomsLevel: assessment.Remember, QualityScore: 0.9},
		{ID: "b", Text: "Define recursion?", Type: assessment.TypeSubjective, Difficulty: 2, BloomsLevel: assessment.Remember, QualityScore: 0.8},
	}
	if err := repo.SavePool(ctx, "ds-basics", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadPool(ctx, "ds-basics")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected pool: %+v", got)
	}
	if got[0].QualityScore != 0.9 {
		t.Errorf("quality score = %v, want 0.9", got[0].QualityScore)
	}

	if err := repo.SavePool(ctx, "ds-basics", first[1:]); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err = repo.LoadPool(ctx, "ds-basics")
	if err != nil {
		t.Fatalf("load after replace: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("pool not replaced: %+v", got)
	}

	pools, err := repo.Pools(ctx)
	if err != nil {
		t.Fatalf("pools: %v", err)
	}
	if pools["ds-basics"] != 1 {
		t.Errorf("pools = %v", pools)
	}

	missing, err := repo.LoadPool(ctx, "nope")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected empty pool, got %d", len(missing))
	}
}

func TestPoolRepo_SaveLargePool(t *testing.T) {
	s := openTestStore(t)
	repo := s.PoolRepo()
	ctx := context.Background()

	// 6001 rows need 36006 bound variables, more than one statement may hold.
	questions := make([]assessment.Question, 6001)
	for i := range questions {
		questions[i] = assessment.Question{
			ID:           fmt.Sprintf("q%05d", i),
			Text:         fmt.Sprintf("Explain case %d?", i),
			Type:         assessment.TypeSubjective,
			Difficulty:   3,
			BloomsLevel:  assessment.Understand,
			QualityScore: 0.7,
		}
	}
	if err := repo.SavePool(ctx, "bulk", questions); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadPool(ctx, "bulk")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(questions) {
		t.Fatalf("loaded %d questions, want %d", len(got), len(questions))
	}
	for _, i := range []int{0, poolInsertBatch - 1, poolInsertBatch, len(questions) - 1} {
		if got[i].ID != questions[i].ID {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, questions[i].ID)
		}
	}
}
