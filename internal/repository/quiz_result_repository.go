package repository

import (
	"context"
	"errors"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/util"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(ctx context.Context, result *model.QuizResult) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *QuizResultRepository) FindByID(ctx context.Context, id string) (*model.QuizResult, error) {
	var res model.QuizResult
	err := r.DB.WithContext(ctx).First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByUserAndQuiz 按完成时间升序返回，进度统计依赖这个顺序
func (r *QuizResultRepository) ListByUserAndQuiz(ctx context.Context, userID uint, quizID string) ([]model.QuizResult, error) {
	var rs []model.QuizResult
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("completed_at asc, created_at asc").
		Find(&rs).Error
	return rs, err
}

func (r *QuizResultRepository) ListByUser(ctx context.Context, userID uint, page, limit int) ([]model.QuizResult, int64, error) {
	var rs []model.QuizResult
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.QuizResult{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&rs).Error
	return rs, total, err
}

func (r *QuizResultRepository) ListByQuiz(ctx context.Context, quizID string) ([]model.QuizResult, error) {
	var rs []model.QuizResult
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("completed_at asc").
		Find(&rs).Error
	return rs, err
}
