package service

import (
	"context"
	"io"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/repository"
	"time"
)

// 以下接口由 internal/repository 中的 gorm 仓库和 redis 缓存实现，测试使用内存桩

type QuizStore interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
	Update(ctx context.Context, quiz *model.Quiz) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repository.QuizFilter, page, limit int) ([]model.Quiz, int64, error)
}

type ResultStore interface {
	Create(ctx context.Context, result *model.QuizResult) error
	FindByID(ctx context.Context, id string) (*model.QuizResult, error)
	ListByUserAndQuiz(ctx context.Context, userID uint, quizID string) ([]model.QuizResult, error)
	ListByUser(ctx context.Context, userID uint, page, limit int) ([]model.QuizResult, int64, error)
	ListByQuiz(ctx context.Context, quizID string) ([]model.QuizResult, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

type Cache interface {
	// GetStats 同时返回当前版本号，SetStats 只写入该版本；负数版本表示不要回写
	GetStats(ctx context.Context, userID uint, quizID string) (*model.ProgressStats, int64, bool)
	SetStats(ctx context.Context, userID uint, quizID string, version int64, stats *model.ProgressStats) error
	InvalidateStats(ctx context.Context, userID uint, quizID string) error
	GetQuiz(ctx context.Context, quizID string) (*model.Quiz, bool)
	SetQuiz(ctx context.Context, quiz *model.Quiz) error
	InvalidateQuiz(ctx context.Context, quizID string) error
}

// ExportStorage 由 StorageService 实现
type ExportStorage interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	SignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error)
}

// noopCache 未配置 redis 时使用
type noopCache struct{}

func (noopCache) GetStats(context.Context, uint, string) (*model.ProgressStats, int64, bool) {
	return nil, -1, false
}
func (noopCache) SetStats(context.Context, uint, string, int64, *model.ProgressStats) error {
	return nil
}
func (noopCache) InvalidateStats(context.Context, uint, string) error { return nil }
func (noopCache) GetQuiz(context.Context, string) (*model.Quiz, bool) { return nil, false }
func (noopCache) SetQuiz(context.Context, *model.Quiz) error { return nil }
func (noopCache) InvalidateQuiz(context.Context, string) error { return nil }

func cacheOrNoop(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}
