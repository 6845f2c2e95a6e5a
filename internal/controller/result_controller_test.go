package controller

import (
	"context"
	"encoding/json"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/repository"
	"mindcheck_backend/internal/service"
	"mindcheck_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type quizStub struct {
	quizzes map[string]model.Quiz
}

func (s *quizStub) Create(_ context.Context, q *model.Quiz) error {
	if q.ID == "" {
		q.ID = model.GenerateUUID()
	}
	s.quizzes[q.ID] = *q
	return nil
}

func (s *quizStub) FindByID(_ context.Context, id string) (*model.Quiz, error) {
	q, ok := s.quizzes[id]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return &q, nil
}

func (s *quizStub) Update(_ context.Context, q *model.Quiz) error {
	s.quizzes[q.ID] = *q
	return nil
}

func (s *quizStub) Delete(_ context.Context, id string) error {
	delete(s.quizzes, id)
	return nil
}

func (s *quizStub) List(context.Context, repository.QuizFilter, int, int) ([]model.Quiz, int64, error) {
	return nil, 0, nil
}

type resultStub struct {
	results []model.QuizResult
}

func (s *resultStub) Create(_ context.Context, r *model.QuizResult) error {
	r.ID = model.GenerateUUID()
	s.results = append(s.results, *r)
	return nil
}

func (s *resultStub) FindByID(_ context.Context, id string) (*model.QuizResult, error) {
	for _, r := range s.results {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, util.ErrResultNotFound
}

func (s *resultStub) ListByUserAndQuiz(_ context.Context, userID uint, quizID string) ([]model.QuizResult, error) {
	var out []model.QuizResult
	for _, r := range s.results {
		if r.UserID == userID && r.QuizID == quizID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *resultStub) ListByUser(_ context.Context, userID uint, _, _ int) ([]model.QuizResult, int64, error) {
	return nil, 0, nil
}

func (s *resultStub) ListByQuiz(context.Context, string) ([]model.QuizResult, error) {
	return s.results, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	quizzes := &quizStub{quizzes: map[string]model.Quiz{
		"q1": {
			UUIDBase:    model.UUIDBase{ID: "q1"},
			Title:       "Check-in",
			IsPublished: true,
			Questions: []model.Question{
				{ID: "1", Text: "Sleep?", Type: model.QuestionMultipleChoice, Options: []string{"Yes", "No"},
					ScoreMapping: map[string]float64{"Yes": 5, "No": 0}},
				{ID: "2", Text: "Energy", Type: model.QuestionScale, Min: 1, Max: 10},
			},
		},
		"draft": {UUIDBase: model.UUIDBase{ID: "draft"}, Title: "Draft"},
	}}
	quizSvc := service.NewQuizService(quizzes, nil)
	results := NewResultController(service.NewResultService(quizSvc, &resultStub{}, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(util.ContextUserKey, &util.Claims{UserID: 5, Role: model.RoleUser})
		c.Next()
	})
	r.POST("/quizzes/:id/submit", results.Submit)
	r.GET("/quizzes/:id/progress", results.Progress)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body %q: %v", w.Body.String(), err)
	}
	return env
}

func TestSubmitFormAndJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"form", "application/x-www-form-urlencoded", url.Values{"question_1": {"Yes"}, "question_2": {"7"}, "csrf": {"x"}}.Encode()},
		{"json", "application/json", `{"answers":{"1":"Yes","2":"7"}}`},
		{"json numeric scale", "application/json", `{"answers":{"1":"Yes","2":7,"3":null}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t)
			req := httptest.NewRequest(http.MethodPost, "/quizzes/q1/submit", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusCreated {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			var resp struct {
				Result struct {
					Score   float64 `json:"score"`
					Answers []struct {
						QuestionID string      `json:"questionId"`
						Answer     interface{} `json:"answer"`
					} `json:"answers"`
				} `json:"result"`
				Interpretation model.Interpretation `json:"interpretation"`
			}
			if err := json.Unmarshal(decode(t, w).Data, &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Result.Score != 12 {
				t.Fatalf("score=%v, want 12", resp.Result.Score)
			}
			if len(resp.Result.Answers) != 2 || resp.Result.Answers[1].Answer != float64(7) {
				t.Fatalf("answers=%+v", resp.Result.Answers)
			}
			// no ranges: 12 of 20 is 60%, the moderate band
			if resp.Interpretation.Status != "Moderate" || resp.Interpretation.Percentage == nil || *resp.Interpretation.Percentage != 60 {
				t.Fatalf("interpretation=%+v", resp.Interpretation)
			}
		})
	}
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown quiz", "/quizzes/nope/submit", `{"answers":{}}`, http.StatusNotFound},
		{"unpublished quiz", "/quizzes/draft/submit", `{"answers":{}}`, http.StatusNotFound},
		{"malformed json", "/quizzes/q1/submit", `{"answers":`, http.StatusBadRequest},
		{"object answer", "/quizzes/q1/submit", `{"answers":{"2":{"v":7}}}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t)
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status=%d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestProgressEndpoint(t *testing.T) {
	r := newTestRouter(t)
	for _, energy := range []string{"1", "9"} {
		req := httptest.NewRequest(http.MethodPost, "/quizzes/q1/submit",
			strings.NewReader(url.Values{"question_2": {energy}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quizzes/q1/progress", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp service.ProgressResponse
	if err := json.Unmarshal(decode(t, w).Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Stats.Attempts != 2 || resp.Stats.Trend != model.TrendImproving || resp.Stats.Change != 8 {
		t.Fatalf("stats=%+v", resp.Stats)
	}
}
