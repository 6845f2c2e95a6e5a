package scoring

import (
	"encoding/json"
	"reflect"
	"testing"

	"mindcheck_backend/internal/model"
)

func yesNoAndScale() []model.Question {
	return []model.Question{
		{
			ID:           "1",
			Text:         "Did you sleep well?",
			Type:         model.QuestionMultipleChoice,
			Options:      []string{"Yes", "No"},
			ScoreMapping: map[string]float64{"Yes": 5, "No": 0},
		},
		{
			ID:   "2",
			Text: "Rate your energy",
			Type: model.QuestionScale,
			Min:  1,
			Max:  10,
		},
	}
}

func TestCalculateScoreMixedQuiz(t *testing.T) {
	got := CalculateScore(Submission{"1": "Yes", "2": "7"}, yesNoAndScale(), nil)

	if got.TotalScore != 12 {
		t.Fatalf("TotalScore=%v, want 12", got.TotalScore)
	}
	want := []model.Answer{
		{QuestionID: "1", Answer: model.TextAnswer("Yes")},
		{QuestionID: "2", Answer: model.NumberAnswer(7)},
	}
	if !reflect.DeepEqual(got.Answers, want) {
		t.Fatalf("Answers=%+v, want %+v", got.Answers, want)
	}
	if len(got.SubScores) != 0 {
		t.Fatalf("SubScores=%v, want empty", got.SubScores)
	}
}

func TestCalculateScoreScaleOnly(t *testing.T) {
	questions := []model.Question{
		{ID: "a", Type: model.QuestionScale, Min: 0, Max: 10},
		{ID: "b", Type: model.QuestionScale, Min: 0, Max: 10},
		{ID: "c", Type: model.QuestionScale, Min: 0, Max: 10},
	}
	cases := []struct {
		name string
		sub  Submission
		want float64
	}{
		{"all numeric", Submission{"a": "3", "b": "4", "c": "5"}, 12},
		{"non numeric counts as zero", Submission{"a": "3", "b": "lots", "c": "5"}, 8},
		{"whitespace tolerated", Submission{"a": " 2 ", "b": "2", "c": "2"}, 6},
		{"decimal values", Submission{"a": "2.5", "b": "0.5"}, 3},
		{"NaN is zero", Submission{"a": "NaN", "b": "1"}, 1},
		{"Inf is zero", Submission{"a": "+Inf", "b": "-inf", "c": "1"}, 1},
		{"nothing answered", Submission{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateScore(tc.sub, questions, nil).TotalScore; got != tc.want {
				t.Fatalf("TotalScore=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestCalculateScoreNonNumericScaleRecordsZero(t *testing.T) {
	q := []model.Question{{ID: "s", Type: model.QuestionScale, Min: 1, Max: 5}}
	got := CalculateScore(Submission{"s": "abc"}, q, nil)
	want := []model.Answer{{QuestionID: "s", Answer: model.NumberAnswer(0)}}
	if !reflect.DeepEqual(got.Answers, want) {
		t.Fatalf("Answers=%+v, want %+v", got.Answers, want)
	}
}

func TestCalculateScoreUnmappedOption(t *testing.T) {
	q := []model.Question{{
		ID:           "m",
		Type:         model.QuestionMultipleChoice,
		Options:      []string{"Often", "Never"},
		ScoreMapping: map[string]float64{"Often": 3, "Never": 0},
		Category:     "Stress",
	}}
	got := CalculateScore(Submission{"m": "Sometimes"}, q, nil)
	if got.TotalScore != 0 {
		t.Fatalf("TotalScore=%v, want 0", got.TotalScore)
	}
	if got.SubScores["Stress"] != 0 {
		t.Fatalf("SubScores[Stress]=%v, want 0", got.SubScores["Stress"])
	}
	if len(got.Answers) != 1 || got.Answers[0].Answer.Text != "Sometimes" {
		t.Fatalf("answer not recorded: %+v", got.Answers)
	}
}

func TestCalculateScorePointsFallback(t *testing.T) {
	q := []model.Question{{
		ID:      "p",
		Type:    model.QuestionMultipleChoice,
		Options: []string{"Low", "Mid", "High"},
		Points:  []float64{1, 2, 3},
	}}
	cases := map[string]float64{"Low": 1, "Mid": 2, "High": 3, "Other": 0}
	for option, want := range cases {
		if got := CalculateScore(Submission{"p": option}, q, nil).TotalScore; got != want {
			t.Fatalf("option %q: TotalScore=%v, want %v", option, got, want)
		}
	}

	short := []model.Question{{ID: "p", Type: model.QuestionMultipleChoice, Options: []string{"A", "B"}, Points: []float64{4}}}
	if got := CalculateScore(Submission{"p": "B"}, short, nil).TotalScore; got != 0 {
		t.Fatalf("option past points array: TotalScore=%v, want 0", got)
	}
}

func TestCalculateScoreMappingWinsOverPoints(t *testing.T) {
	q := []model.Question{{
		ID:           "p",
		Type:         model.QuestionMultipleChoice,
		Options:      []string{"A", "B"},
		ScoreMapping: map[string]float64{"A": 10},
		Points:       []float64{1, 2},
	}}
	if got := CalculateScore(Submission{"p": "A"}, q, nil).TotalScore; got != 10 {
		t.Fatalf("TotalScore=%v, want 10", got)
	}
	if got := CalculateScore(Submission{"p": "B"}, q, nil).TotalScore; got != 2 {
		t.Fatalf("TotalScore=%v, want 2", got)
	}
}

func TestCalculateScoreUnansweredSkipped(t *testing.T) {
	questions := append(yesNoAndScale(), model.Question{ID: "3", Type: model.QuestionText})
	got := CalculateScore(Submission{"2": "4", "1": ""}, questions, nil)
	if got.TotalScore != 4 {
		t.Fatalf("TotalScore=%v, want 4", got.TotalScore)
	}
	if len(got.Answers) != 1 || got.Answers[0].QuestionID != "2" {
		t.Fatalf("Answers=%+v, want only question 2", got.Answers)
	}
}

func TestCalculateScoreTextNeverScores(t *testing.T) {
	q := []model.Question{{ID: "t", Type: model.QuestionText, Category: "Notes"}}
	got := CalculateScore(Submission{"t": "42"}, q, nil)
	if got.TotalScore != 0 {
		t.Fatalf("TotalScore=%v, want 0", got.TotalScore)
	}
	if _, ok := got.SubScores["Notes"]; ok {
		t.Fatal("text question created a sub-score")
	}
	want := []model.Answer{{QuestionID: "t", Answer: model.TextAnswer("42")}}
	if !reflect.DeepEqual(got.Answers, want) {
		t.Fatalf("Answers=%+v, want %+v", got.Answers, want)
	}
}

func TestCalculateScoreSubScores(t *testing.T) {
	questions := []model.Question{
		{ID: "1", Type: model.QuestionScale, Category: "Anxiety"},
		{ID: "2", Type: model.QuestionScale, Category: "Stress"},
		{ID: "3", Type: model.QuestionMultipleChoice, Options: []string{"Y", "N"}, ScoreMapping: map[string]float64{"Y": 2}, Category: "Anxiety"},
		{ID: "4", Type: model.QuestionScale},
	}
	got := CalculateScore(Submission{"1": "3", "2": "5", "3": "Y", "4": "1"}, questions, nil)
	want := map[string]float64{"Anxiety": 5, "Stress": 5}
	if !reflect.DeepEqual(got.SubScores, want) {
		t.Fatalf("SubScores=%v, want %v", got.SubScores, want)
	}
	if got.TotalScore != 11 {
		t.Fatalf("TotalScore=%v, want 11", got.TotalScore)
	}
}

func TestCalculateScoreIgnoresUnknownKeysAndTypes(t *testing.T) {
	questions := []model.Question{
		{ID: "1", Type: "slider"},
		{ID: "2", Type: model.QuestionScale},
	}
	got := CalculateScore(Submission{"1": "9", "2": "2", "99": "5"}, questions, nil)
	if got.TotalScore != 2 {
		t.Fatalf("TotalScore=%v, want 2", got.TotalScore)
	}
	if len(got.Answers) != 2 {
		t.Fatalf("Answers=%+v, want 2 entries", got.Answers)
	}
}

func TestCalculateScoreOverflowStaysFinite(t *testing.T) {
	questions := []model.Question{
		{ID: "a", Type: model.QuestionScale, Category: "Energy"},
		{ID: "b", Type: model.QuestionScale, Category: "Energy"},
	}
	got := CalculateScore(Submission{"a": "1e308", "b": "1e308"}, questions, nil)
	if got.TotalScore != 0 {
		t.Fatalf("TotalScore=%v, want 0", got.TotalScore)
	}
	if got.SubScores["Energy"] != 0 {
		t.Fatalf("SubScores[Energy]=%v, want 0", got.SubScores["Energy"])
	}
	if _, err := json.Marshal(got); err != nil {
		t.Fatalf("marshal score result: %v", err)
	}
}
