package service

import (
	"context"
	"fmt"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/scoring"
	"mindcheck_backend/internal/util"
	"mindcheck_backend/pkg/logger"
	"mindcheck_backend/pkg/monitoring"
	"mindcheck_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ResultService struct {
	Quizzes *QuizService
	Repo    ResultStore
	Cache   Cache
	now     func() time.Time
}

func NewResultService(quizzes *QuizService, repo ResultStore, cache Cache) *ResultService {
	return &ResultService{
		Quizzes: quizzes,
		Repo:    repo,
		Cache:   cacheOrNoop(cache),
		now:     time.Now,
	}
}

// SubmitRequest JSON 提交，键为题目ID，值可以是字符串或数字
type SubmitRequest struct {
	Answers map[string]model.AnswerValue `json:"answers" binding:"required" swaggertype:"object,string"`
}

// Submission 把数字答案转成字符串，与表单提交走同一条计分路径
func (r SubmitRequest) Submission() scoring.Submission {
	sub := make(scoring.Submission, len(r.Answers))
	for id, v := range r.Answers {
		sub[id] = v.String()
	}
	return sub
}

type SubmissionResponse struct {
	Result         *model.QuizResult    `json:"result"`
	Interpretation model.Interpretation `json:"interpretation"`
}

// Submit 计分并保存一次作答，每次调用都新建一条结果，不与之前的合并
func (s *ResultService) Submit(ctx context.Context, userID uint, quizID string, sub scoring.Submission) (*SubmissionResponse, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.Submit")
	defer span.End()

	quiz, err := s.Quizzes.GetPublishedQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	scored := scoring.CalculateScore(sub, quiz.Questions, quiz.ScoreRanges)
	span.SetAttributes(
		attribute.String("quiz.id", quizID),
		attribute.Int("quiz.answers", len(scored.Answers)),
		attribute.Float64("quiz.score", scored.TotalScore),
	)

	result := &model.QuizResult{
		UserID:      userID,
		QuizID:      quiz.ID,
		Answers:     scored.Answers,
		Score:       scored.TotalScore,
		SubScores:   datatypes.NewJSONType(scored.SubScores),
		CompletedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, result); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save result: %w", err)
	}

	if err := s.Cache.InvalidateStats(ctx, userID, quiz.ID); err != nil {
		logger.Log.Warn("invalidate progress cache failed",
			zap.Uint("userId", userID),
			zap.String("quizId", quiz.ID),
			zap.Error(err),
		)
	}
	monitoring.RecordSubmission(quiz.ID, scored.TotalScore)
	logger.Log.Info("quiz submitted",
		zap.Uint("userId", userID),
		zap.String("quizId", quiz.ID),
		zap.String("resultId", result.ID),
		zap.Float64("score", scored.TotalScore),
	)

	return &SubmissionResponse{
		Result:         result,
		Interpretation: scoring.Interpret(scored.TotalScore, quiz),
	}, nil
}

// ListHistory 用户在某个测验上的结果，按时间升序
func (s *ResultService) ListHistory(ctx context.Context, userID uint, quizID string) ([]model.QuizResult, error) {
	return s.Repo.ListByUserAndQuiz(ctx, userID, quizID)
}

func (s *ResultService) ListMine(ctx context.Context, userID uint, page, limit int) ([]model.QuizResult, int64, error) {
	return s.Repo.ListByUser(ctx, userID, page, limit)
}

type ResultDetail struct {
	Result         *model.QuizResult    `json:"result"`
	Quiz           *model.Quiz          `json:"quiz"`
	Interpretation model.Interpretation `json:"interpretation"`
}

// GetResult 非管理员访问他人的结果时返回 ErrResultNotFound
func (s *ResultService) GetResult(ctx context.Context, userID uint, isAdmin bool, resultID string) (*ResultDetail, error) {
	res, err := s.Repo.FindByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID && !isAdmin {
		return nil, util.ErrResultNotFound
	}
	quiz, err := s.Quizzes.GetQuiz(ctx, res.QuizID)
	if err != nil {
		return nil, err
	}
	return &ResultDetail{
		Result:         res,
		Quiz:           quiz,
		Interpretation: scoring.Interpret(res.Score, quiz),
	}, nil
}

type ProgressResponse struct {
	QuizID           string                 `json:"quizId"`
	QuizTitle        string                 `json:"quizTitle"`
	ScoringDirection model.ScoringDirection `json:"scoringDirection"`
	Stats            model.ProgressStats    `json:"stats"`
	Cached           bool                   `json:"cached"`
}

// GetProgress 汇总用户在某个测验上的历史成绩。统计按 (用户, 测验) 缓存，
// 版本号在读取历史之前取得，期间有新提交时写入的是已作废的版本。
func (s *ResultService) GetProgress(ctx context.Context, userID uint, quizID string) (*ProgressResponse, error) {
	quiz, err := s.Quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	resp := &ProgressResponse{
		QuizID:           quiz.ID,
		QuizTitle:        quiz.Title,
		ScoringDirection: quiz.ScoringDirection.Normalize(),
	}

	stats, version, ok := s.Cache.GetStats(ctx, userID, quiz.ID)
	if ok {
		monitoring.RecordCacheLookup(true)
		resp.Stats = *stats
		resp.Cached = true
		return resp, nil
	}
	monitoring.RecordCacheLookup(false)

	history, err := s.Repo.ListByUserAndQuiz(ctx, userID, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	scores := make([]float64, len(history))
	dates := make([]time.Time, len(history))
	for i, r := range history {
		scores[i] = r.Score
		dates[i] = r.CompletedAt
	}
	resp.Stats = scoring.CalculateProgressStats(scores, dates, quiz.ScoringDirection)

	if err := s.Cache.SetStats(ctx, userID, quiz.ID, version, &resp.Stats); err != nil {
		logger.Log.Warn("cache progress stats failed", zap.Uint("userId", userID), zap.String("quizId", quiz.ID), zap.Error(err))
	}
	return resp, nil
}
