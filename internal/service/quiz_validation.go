package service

import (
	"fmt"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/util"
)

type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationReport Errors 阻止保存，Warnings 只在编辑器中提示
type ValidationReport struct {
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

func (r *ValidationReport) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationReport) errorf(field, format string, args ...interface{}) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationReport) warnf(field, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidationError 携带被拒绝测验的校验报告
type ValidationError struct {
	Report *ValidationReport
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d error(s)", util.ErrInvalidQuiz, len(e.Report.Errors))
}

func (e *ValidationError) Unwrap() error {
	return util.ErrInvalidQuiz
}

// ValidateQuiz 检查测验定义是否正确，只在保存时执行；计分本身能容忍这里报告的所有问题
func ValidateQuiz(quiz *model.Quiz) *ValidationReport {
	r := &ValidationReport{Errors: []ValidationIssue{}, Warnings: []ValidationIssue{}}

	if quiz.Title == "" {
		r.errorf("title", "title is required")
	}
	switch quiz.ScoringDirection {
	case "", model.HigherIsBetter, model.LowerIsBetter:
	default:
		r.errorf("scoringDirection", "unknown scoring direction %q", quiz.ScoringDirection)
	}
	if len(quiz.Questions) == 0 {
		r.errorf("questions", "at least one question is required")
	}

	seen := make(map[string]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.ID == "" {
			r.errorf(field+".id", "question id is required")
		} else if prev, ok := seen[q.ID]; ok {
			r.errorf(field+".id", "duplicate question id %q (also questions[%d])", q.ID, prev)
		} else {
			seen[q.ID] = i
		}
		if q.Text == "" {
			r.errorf(field+".text", "question text is required")
		}

		switch q.Type {
		case model.QuestionMultipleChoice:
			validateChoice(r, field, q)
		case model.QuestionScale:
			if q.Min >= q.Max {
				r.errorf(field, "scale minimum %v must be below maximum %v", q.Min, q.Max)
			}
		case model.QuestionText:
		default:
			r.errorf(field+".type", "unknown question type %q", q.Type)
		}
	}

	for i, sr := range quiz.ScoreRanges {
		field := fmt.Sprintf("scoreRanges[%d]", i)
		if sr.Min > sr.Max {
			r.errorf(field, "range minimum %v exceeds maximum %v", sr.Min, sr.Max)
		}
		if sr.Status == "" {
			r.errorf(field+".status", "status label is required")
		}
		if !sr.Color.Valid() {
			r.errorf(field+".color", "unknown color %q", sr.Color)
		}
	}
	for i := 0; i < len(quiz.ScoreRanges); i++ {
		for j := i + 1; j < len(quiz.ScoreRanges); j++ {
			a, b := quiz.ScoreRanges[i], quiz.ScoreRanges[j]
			if a.Min <= b.Max && b.Min <= a.Max {
				r.warnf(fmt.Sprintf("scoreRanges[%d]", j),
					"overlaps scoreRanges[%d]; scores in both resolve to scoreRanges[%d]", i, i)
			}
		}
	}

	return r
}

func validateChoice(r *ValidationReport, field string, q model.Question) {
	if len(q.Options) < 2 {
		r.errorf(field+".options", "multiple-choice questions need at least 2 options")
	}
	options := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if options[o] {
			r.warnf(field+".options", "option %q is listed more than once", o)
		}
		options[o] = true
	}
	for key := range q.ScoreMapping {
		if !options[key] {
			r.warnf(field+".scoreMapping", "mapping key %q is not one of the options", key)
		}
	}
	if len(q.Points) > 0 && len(q.Points) != len(q.Options) {
		r.warnf(field+".points", "points has %d entries for %d options", len(q.Points), len(q.Options))
	}
	if len(q.ScoreMapping) == 0 && len(q.Points) == 0 {
		r.warnf(field, "no scoreMapping or points; every option scores 0")
	}
}
