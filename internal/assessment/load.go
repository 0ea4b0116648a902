package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Performance is the document the assessment runtime hands over after each
// answered question: the metrics snapshot plus the rolling answer window.
type Performance struct {
	Metrics       Metrics  `json:"metrics"`
	RecentAnswers []Answer `json:"recentAnswers" validate:"dive"`
}

// LoadConfig decodes and validates an assessment config.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadQuestions decodes a question list, given either as a bare JSON array
// or as {"questions": [...]}. Questions without an ID get a fresh UUID.
func LoadQuestions(r io.Reader) ([]Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	var qs []Question
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Questions []Question `json:"questions"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		qs = doc.Questions
	} else if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	for i := range qs {
		if qs[i].ID == "" {
			qs[i].ID = uuid.New().String()
		}
		if err := Validate(qs[i]); err != nil {
			return nil, fmt.Errorf("invalid question %d (%s): %w", i+1, qs[i].ID, err)
		}
	}
	return qs, nil
}

// LoadPerformance decodes and validates a metrics snapshot with its answer window.
func LoadPerformance(r io.Reader) (Performance, error) {
	var p Performance
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Performance{}, fmt.Errorf("decode performance: %w", err)
	}
	if err := Validate(p); err != nil {
		return Performance{}, fmt.Errorf("invalid performance: %w", err)
	}
	return p, nil
}

// LoadResults decodes and validates a list of completed assessments.
func LoadResults(r io.Reader) ([]TestResult, error) {
	var results []TestResult
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	for i := range results {
		if results[i].ID == "" {
			results[i].ID = uuid.New().String()
		}
		if err := Validate(results[i]); err != nil {
			return nil, fmt.Errorf("invalid result %d: %w", i+1, err)
		}
	}
	return results, nil
}
