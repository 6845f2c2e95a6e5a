package model

import (
	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionScale          QuestionType = "scale"
	QuestionText           QuestionType = "text"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionScale, QuestionText:
		return true
	}
	return false
}

type ScoringDirection string

const (
	HigherIsBetter ScoringDirection = "higher-is-better"
	LowerIsBetter  ScoringDirection = "lower-is-better"
)

// Normalize 除 lower-is-better 外一律视为默认方向
func (d ScoringDirection) Normalize() ScoringDirection {
	if d == LowerIsBetter {
		return LowerIsBetter
	}
	return HigherIsBetter
}

type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
)

func (c Color) Valid() bool {
	switch c {
	case ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorBlue:
		return true
	}
	return false
}

// Question 内嵌在测验中，ID 只在所属测验内唯一
// swagger:model Question
type Question struct {
	ID           string             `json:"id"`
	Text         string             `json:"text"`
	Type         QuestionType       `json:"type"`
	Options      []string           `json:"options,omitempty"`
	ScoreMapping map[string]float64 `json:"scoreMapping,omitempty"`
	Points       []float64          `json:"points,omitempty"`
	Min          float64            `json:"min,omitempty"`
	Max          float64            `json:"max,omitempty"`
	Category     string             `json:"category,omitempty"`
}

// ScoreRange 上下界均包含在内
// swagger:model ScoreRange
type ScoreRange struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	Color       Color   `json:"color"`
}

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title            string                          `gorm:"size:255;not null" json:"title"`
	Description      string                          `gorm:"type:text" json:"description"`
	Category         string                          `gorm:"size:100;index" json:"category"`
	ScoringDirection ScoringDirection                `gorm:"size:20;default:'higher-is-better'" json:"scoringDirection"`
	IsPublished      bool                            `gorm:"default:false" json:"isPublished"`
	Questions        datatypes.JSONSlice[Question]   `gorm:"type:json" json:"questions"`
	ScoreRanges      datatypes.JSONSlice[ScoreRange] `gorm:"type:json" json:"scoreRanges"`
	CreatorID        uint                            `gorm:"index" json:"creatorId"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
