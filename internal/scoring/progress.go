package scoring

import (
	"time"

	"mindcheck_backend/internal/model"
)

// TrendThreshold 首尾分差的绝对值必须超过该值才算变化
const TrendThreshold = 2

// CalculateTrend 只比较第一次和最后一次的分数
func CalculateTrend(scores []float64, direction model.ScoringDirection) model.Trend {
	if len(scores) < 2 {
		return model.TrendStable
	}
	change := ScoreChange(scores)
	if direction.Normalize() == model.LowerIsBetter {
		change = -change
	}
	switch {
	case change > TrendThreshold:
		return model.TrendImproving
	case change < -TrendThreshold:
		return model.TrendDeclining
	}
	return model.TrendStable
}

// AverageScore 平均分，保留一位小数；没有分数时为 0
func AverageScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return finiteOrZero(roundHalfUp(sum/float64(len(scores))*10) / 10)
}

// ScoreChange 最后一次减去第一次，少于两次时为 0
func ScoreChange(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	return finiteOrZero(scores[len(scores)-1] - scores[0])
}

// BestScore 按计分方向取最好成绩，越低越好时取最小值
func BestScore(scores []float64, direction model.ScoringDirection) float64 {
	if direction.Normalize() == model.LowerIsBetter {
		return minScore(scores)
	}
	return maxScore(scores)
}

// WorstScore 与 BestScore 相反
func WorstScore(scores []float64, direction model.ScoringDirection) float64 {
	if direction.Normalize() == model.LowerIsBetter {
		return maxScore(scores)
	}
	return minScore(scores)
}

// CalculateProgressStats 汇总按时间升序排列的分数。dates 与 scores 一一对应，目前不参与计算。
func CalculateProgressStats(scores []float64, dates []time.Time, direction model.ScoringDirection) model.ProgressStats {
	stats := model.ProgressStats{
		Attempts: len(scores),
		Trend:    CalculateTrend(scores, direction),
		Average:  AverageScore(scores),
		Best:     BestScore(scores, direction),
		Worst:    WorstScore(scores, direction),
		Change:   ScoreChange(scores),
	}
	if len(scores) > 0 {
		stats.Latest = scores[len(scores)-1]
	}
	return stats
}

func maxScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	m := scores[0]
	for _, s := range scores[1:] {
		if s > m {
			m = s
		}
	}
	return m
}

func minScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	m := scores[0]
	for _, s := range scores[1:] {
		if s < m {
			m = s
		}
	}
	return m
}
