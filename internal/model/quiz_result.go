package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// AnswerValue 保存选项/文本字符串或量表数字，编码为对应的 JSON 字符串或数字
type AnswerValue struct {
	Text    string
	Number  float64
	Numeric bool
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Text: s}
}

func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{Number: n, Numeric: true}
}

func (v AnswerValue) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextAnswer(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = NumberAnswer(n)
	return nil
}

// swagger:model Answer
type Answer struct {
	QuestionID string      `json:"questionId"`
	Answer     AnswerValue `json:"answer" swaggertype:"string"`
}

// QuizResult 每次提交写入一次，之后不再修改
// swagger:model QuizResult
type QuizResult struct {
	UUIDBase
	UserID      uint                                   `gorm:"index:idx_user_quiz;not null" json:"userId"`
	QuizID      string                                 `gorm:"index:idx_user_quiz;type:varchar(36);not null" json:"quizId"`
	Answers     datatypes.JSONSlice[Answer]            `gorm:"type:json" json:"answers"`
	Score       float64                                `gorm:"not null" json:"score"`
	SubScores   datatypes.JSONType[map[string]float64] `gorm:"type:json" json:"subScores" swaggertype:"object"`
	CompletedAt time.Time                              `gorm:"index" json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
