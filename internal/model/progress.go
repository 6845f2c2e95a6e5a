package model

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// ProgressStats 由用户在某个测验上的历史分数计算得出，不落库
type ProgressStats struct {
	Attempts int     `json:"attempts"`
	Trend    Trend   `json:"trend"`
	Average  float64 `json:"average"`
	Best     float64 `json:"best"`
	Worst    float64 `json:"worst"`
	Latest   float64 `json:"latest"`
	Change   float64 `json:"change"`
}

// Interpretation 结果页在分数旁展示的解读
type Interpretation struct {
	Status      string  `json:"status"`
	Description string  `json:"description"`
	Color       Color   `json:"color"`
	Percentage  *int    `json:"percentage,omitempty"`
	Matched     bool    `json:"matched"`
	Score       float64 `json:"score"`
}
