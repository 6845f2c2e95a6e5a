package scoring

import (
	"math"

	"mindcheck_backend/internal/model"
)

// MatchScoreRange 返回第一个包含 score 的区间，没有则返回 nil。
// 区间重叠时以列表中靠前的为准。
func MatchScoreRange(score float64, ranges []model.ScoreRange) *model.ScoreRange {
	for i := range ranges {
		if ranges[i].Min <= score && score <= ranges[i].Max {
			r := ranges[i]
			return &r
		}
	}
	return nil
}

const (
	pointsPerQuestion = 10
	highBand          = 70
	midBand           = 40
)

type band struct {
	status      string
	description string
	color       model.Color
}

var (
	bandGood = band{
		status:      "Good",
		description: "Your responses suggest you are doing well right now. Keep up the habits that support you.",
		color:       model.ColorGreen,
	}
	bandModerate = band{
		status:      "Moderate",
		description: "Your responses suggest some areas of strain. Consider small changes and check in again soon.",
		color:       model.ColorYellow,
	}
	bandAttention = band{
		status:      "Needs Attention",
		description: "Your responses suggest you may be struggling. Reaching out to someone you trust or a professional can help.",
		color:       model.ColorRed,
	}
)

// Percentage = round(score / (questionCount*10) * 100)；没有题目或分数非有限时为 0
func Percentage(score float64, questionCount int) int {
	if questionCount <= 0 {
		return 0
	}
	pct := roundHalfUp(score / float64(questionCount*pointsPerQuestion) * 100)
	if math.IsNaN(pct) || math.IsInf(pct, 0) || math.Abs(pct) >= math.MaxInt64 {
		return 0
	}
	return int(pct)
}

// Interpret 用测验的分数区间解读分数；没有匹配的区间时按固定百分比档位兜底。
func Interpret(score float64, quiz *model.Quiz) model.Interpretation {
	if r := MatchScoreRange(score, quiz.ScoreRanges); r != nil {
		return model.Interpretation{
			Status:      r.Status,
			Description: r.Description,
			Color:       r.Color,
			Matched:     true,
			Score:       score,
		}
	}

	pct := Percentage(score, len(quiz.Questions))
	var b band
	switch {
	case pct >= highBand:
		b = bandGood
	case pct >= midBand:
		b = bandModerate
	default:
		b = bandAttention
	}
	if quiz.ScoringDirection.Normalize() == model.LowerIsBetter {
		switch b {
		case bandGood:
			b = bandAttention
		case bandAttention:
			b = bandGood
		}
	}
	return model.Interpretation{
		Status:      b.status,
		Description: b.description,
		Color:       b.color,
		Percentage:  &pct,
		Score:       score,
	}
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
