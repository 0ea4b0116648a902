package assessment

import "testing"

func TestBloomsLevels_AllHaveKeywords(t *testing.T) {
	if len(BloomsLevels) != 6 {
		t.Fatalf("expected 6 levels, got %d", len(BloomsLevels))
	}
	for i, l := range BloomsLevels {
		if len(l.Keywords()) == 0 {
			t.Errorf("level %q has no keywords", l)
		}
		if l.Rank() != i+1 {
			t.Errorf("level %q rank = %d, want %d", l, l.Rank(), i+1)
		}
	}
}

func TestBloomsLevel_HigherOrder(t *testing.T) {
	for _, l := range BloomsLevels {
		want := l == Evaluate || l == Create
		if l.HigherOrder() != want {
			t.Errorf("%q.HigherOrder() = %v, want %v", l, l.HigherOrder(), want)
		}
	}
}

func TestParseBloomsLevel(t *testing.T) {
	l, err := ParseBloomsLevel(" Analyze ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l != Analyze {
		t.Errorf("got %q, want analyze", l)
	}
	if _, err := ParseBloomsLevel("synthesize"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParseQuestionType(t *testing.T) {
	for _, s := range []string{"mcq", "SUBJECTIVE", "numerical", "mixed"} {
		if _, err := ParseQuestionType(s); err != nil {
			t.Errorf("ParseQuestionType(%q): unexpected error %v", s, err)
		}
	}
	if _, err := ParseQuestionType("essay"); err == nil {
		t.Error("expected error for essay")
	}
}
