package service

import (
	"errors"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/util"
	"strings"
	"testing"
)

func hasIssue(issues []ValidationIssue, field, fragment string) bool {
	for _, is := range issues {
		if is.Field == field && strings.Contains(is.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidateQuizAcceptsWellFormedQuiz(t *testing.T) {
	q := wellbeingQuiz()
	r := ValidateQuiz(&q)
	if !r.Valid() {
		t.Fatalf("unexpected errors: %+v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", r.Warnings)
	}
}

func TestValidateQuizErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(q *model.Quiz)
		field    string
		fragment string
	}{
		{"empty title", func(q *model.Quiz) { q.Title = "" }, "title", "required"},
		{"unknown direction", func(q *model.Quiz) { q.ScoringDirection = "sideways" }, "scoringDirection", "sideways"},
		{"no questions", func(q *model.Quiz) { q.Questions = nil }, "questions", "at least one"},
		{"duplicate id", func(q *model.Quiz) { q.Questions[1].ID = "1" }, "questions[1].id", "duplicate"},
		{"unknown type", func(q *model.Quiz) { q.Questions[1].Type = "slider" }, "questions[1].type", "slider"},
		{"single option", func(q *model.Quiz) { q.Questions[0].Options = []string{"Yes"} }, "questions[0].options", "at least 2"},
		{"inverted scale", func(q *model.Quiz) { q.Questions[1].Min = 10; q.Questions[1].Max = 1 }, "questions[1]", "below maximum"},
		{"inverted range", func(q *model.Quiz) { q.ScoreRanges[0].Min = 9 }, "scoreRanges[0]", "exceeds maximum"},
		{"unknown color", func(q *model.Quiz) { q.ScoreRanges[2].Color = "purple" }, "scoreRanges[2].color", "purple"},
		{"missing status", func(q *model.Quiz) { q.ScoreRanges[1].Status = "" }, "scoreRanges[1].status", "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := wellbeingQuiz()
			tt.mutate(&q)
			r := ValidateQuiz(&q)
			if r.Valid() {
				t.Fatal("expected validation errors")
			}
			if !hasIssue(r.Errors, tt.field, tt.fragment) {
				t.Fatalf("no error on %s containing %q: %+v", tt.field, tt.fragment, r.Errors)
			}
		})
	}
}

func TestValidateQuizWarnings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(q *model.Quiz)
		field    string
		fragment string
	}{
		{"overlapping ranges", func(q *model.Quiz) { q.ScoreRanges[1].Min = 5 }, "scoreRanges[1]", "overlaps scoreRanges[0]"},
		{"mapping key not an option", func(q *model.Quiz) { q.Questions[0].ScoreMapping["Maybe"] = 2 }, "questions[0].scoreMapping", "Maybe"},
		{"points length mismatch", func(q *model.Quiz) {
			q.Questions[0].ScoreMapping = nil
			q.Questions[0].Points = []float64{1}
		}, "questions[0].points", "1 entries for 2 options"},
		{"nothing scores", func(q *model.Quiz) { q.Questions[0].ScoreMapping = nil }, "questions[0]", "every option scores 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := wellbeingQuiz()
			tt.mutate(&q)
			r := ValidateQuiz(&q)
			if !r.Valid() {
				t.Fatalf("warnings must not block saving: %+v", r.Errors)
			}
			if !hasIssue(r.Warnings, tt.field, tt.fragment) {
				t.Fatalf("no warning on %s containing %q: %+v", tt.field, tt.fragment, r.Warnings)
			}
		})
	}
}

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := error(&ValidationError{Report: &ValidationReport{Errors: []ValidationIssue{{Field: "title"}}}})
	if !errors.Is(err, util.ErrInvalidQuiz) {
		t.Fatal("ValidationError should match ErrInvalidQuiz")
	}
}
