package service

import (
	"context"
	"fmt"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/repository"
	"mindcheck_backend/internal/util"
	"mindcheck_backend/pkg/logger"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type QuizService struct {
	Repo  QuizStore
	Cache Cache
}

func NewQuizService(repo QuizStore, cache Cache) *QuizService {
	return &QuizService{Repo: repo, Cache: cacheOrNoop(cache)}
}

type QuizRequest struct {
	Title            string                 `json:"title" binding:"required"`
	Description      string                 `json:"description"`
	Category         string                 `json:"category"`
	ScoringDirection model.ScoringDirection `json:"scoringDirection"`
	Questions        []model.Question       `json:"questions"`
	ScoreRanges      []model.ScoreRange     `json:"scoreRanges"`
}

// QuizSaveResponse 保存后的测验及不阻止保存的警告
type QuizSaveResponse struct {
	Quiz     *model.Quiz       `json:"quiz"`
	Warnings []ValidationIssue `json:"warnings"`
}

// assignQuestionIDs 为空 ID 的题目分配下一个未使用的序号
func assignQuestionIDs(questions []model.Question) {
	used := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID != "" {
			used[q.ID] = true
		}
	}
	next := 1
	for i := range questions {
		if questions[i].ID != "" {
			continue
		}
		for used[strconv.Itoa(next)] {
			next++
		}
		questions[i].ID = strconv.Itoa(next)
		used[questions[i].ID] = true
	}
}

func (req QuizRequest) apply(q *model.Quiz) {
	q.Title = strings.TrimSpace(req.Title)
	q.Description = req.Description
	q.Category = strings.TrimSpace(req.Category)
	q.ScoringDirection = req.ScoringDirection
	questions := make([]model.Question, len(req.Questions))
	copy(questions, req.Questions)
	for i := range questions {
		questions[i].ID = strings.TrimSpace(questions[i].ID)
	}
	assignQuestionIDs(questions)
	q.Questions = questions
	q.ScoreRanges = append([]model.ScoreRange(nil), req.ScoreRanges...)
}

// ValidateDraft 只做校验，不保存
func (s *QuizService) ValidateDraft(req QuizRequest) *ValidationReport {
	var q model.Quiz
	req.apply(&q)
	return ValidateQuiz(&q)
}

func (s *QuizService) CreateQuiz(ctx context.Context, creatorID uint, req QuizRequest) (*QuizSaveResponse, error) {
	q := &model.Quiz{CreatorID: creatorID}
	req.apply(q)

	report := ValidateQuiz(q)
	if !report.Valid() {
		return nil, &ValidationError{Report: report}
	}
	if q.ScoringDirection == "" {
		q.ScoringDirection = model.HigherIsBetter
	}

	if err := s.Repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	logger.Log.Info("quiz created",
		zap.String("quizId", q.ID),
		zap.Uint("creatorId", creatorID),
		zap.Int("questions", len(q.Questions)),
	)
	return &QuizSaveResponse{Quiz: q, Warnings: report.Warnings}, nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id string, req QuizRequest) (*QuizSaveResponse, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(q)

	report := ValidateQuiz(q)
	if !report.Valid() {
		return nil, &ValidationError{Report: report}
	}
	if q.ScoringDirection == "" {
		q.ScoringDirection = model.HigherIsBetter
	}

	if err := s.Repo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update quiz %s: %w", id, err)
	}
	s.dropCachedQuiz(ctx, id)
	return &QuizSaveResponse{Quiz: q, Warnings: report.Warnings}, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCachedQuiz(ctx, id)
	logger.Log.Info("quiz deleted", zap.String("quizId", id))
	return nil
}

// SetPublished 校验不通过的测验不允许发布
func (s *QuizService) SetPublished(ctx context.Context, id string, published bool) (*model.Quiz, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if published {
		if report := ValidateQuiz(q); !report.Valid() {
			return nil, &ValidationError{Report: report}
		}
	}
	q.IsPublished = published
	if err := s.Repo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("publish quiz %s: %w", id, err)
	}
	s.dropCachedQuiz(ctx, id)
	return q, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *QuizService) ListQuizzes(ctx context.Context, filter repository.QuizFilter, page, limit int) ([]model.Quiz, int64, error) {
	return s.Repo.List(ctx, filter, page, limit)
}

// GetPublishedQuiz 答题端的读取路径，走缓存
func (s *QuizService) GetPublishedQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	if q, ok := s.Cache.GetQuiz(ctx, id); ok {
		return q, nil
	}
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.IsPublished {
		return nil, util.ErrQuizNotPublished
	}
	if err := s.Cache.SetQuiz(ctx, q); err != nil {
		logger.Log.Warn("cache quiz failed", zap.String("quizId", id), zap.Error(err))
	}
	return q, nil
}

func (s *QuizService) dropCachedQuiz(ctx context.Context, id string) {
	if err := s.Cache.InvalidateQuiz(ctx, id); err != nil {
		logger.Log.Warn("invalidate cached quiz failed", zap.String("quizId", id), zap.Error(err))
	}
}
