// Package scoring 负责把测验提交计算为分数，并把历史分数汇总为进度统计。
// 所有函数都是纯函数，可并发调用。
package scoring

import (
	"math"
	"strconv"
	"strings"

	"mindcheck_backend/internal/model"
)

// Submission 题目ID -> 原始提交值
type Submission map[string]string

// ScoreResult 由调用方写入 QuizResult
type ScoreResult struct {
	TotalScore float64            `json:"totalScore"`
	SubScores  map[string]float64 `json:"subScores,omitempty"`
	Answers    []model.Answer     `json:"answers"`
}

// CalculateScore 按题目顺序计分。未作答的题目跳过，格式错误的值按 0 计；
// 溢出为非有限数的总分或分类得分同样归 0。
// ranges 在此不参与计算，区间匹配在解读结果时进行。
func CalculateScore(submission Submission, questions []model.Question, ranges []model.ScoreRange) ScoreResult {
	res := ScoreResult{Answers: make([]model.Answer, 0, len(questions))}
	for _, q := range questions {
		raw, ok := submission[q.ID]
		if !ok || raw == "" {
			continue
		}

		var contribution float64
		switch q.Type {
		case model.QuestionScale:
			n := parseNumber(raw)
			res.Answers = append(res.Answers, model.Answer{QuestionID: q.ID, Answer: model.NumberAnswer(n)})
			contribution = n
		case model.QuestionMultipleChoice:
			res.Answers = append(res.Answers, model.Answer{QuestionID: q.ID, Answer: model.TextAnswer(raw)})
			contribution = optionScore(q, raw)
		default:
			// 文本题及未知题型只记录答案，不计分
			res.Answers = append(res.Answers, model.Answer{QuestionID: q.ID, Answer: model.TextAnswer(raw)})
			continue
		}

		res.TotalScore += contribution
		if q.Category != "" {
			if res.SubScores == nil {
				res.SubScores = make(map[string]float64)
			}
			res.SubScores[q.Category] += contribution
		}
	}

	res.TotalScore = finiteOrZero(res.TotalScore)
	for k, v := range res.SubScores {
		res.SubScores[k] = finiteOrZero(v)
	}
	return res
}

// parseNumber 非有限数一律返回 0
func parseNumber(raw string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(n)
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// optionScore 优先取 scoreMapping，其次按选项位置取 points
func optionScore(q model.Question, option string) float64 {
	if v, ok := q.ScoreMapping[option]; ok {
		return v
	}
	for i, o := range q.Options {
		if o == option {
			if i < len(q.Points) {
				return q.Points[i]
			}
			break
		}
	}
	return 0
}
