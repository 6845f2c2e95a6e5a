package repository

import (
	"context"
	"errors"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// QuizFilter List 的过滤条件，零值表示不过滤
type QuizFilter struct {
	PublishedOnly bool
	Category      string
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.WithContext(ctx).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Save(quiz).Error
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&model.Quiz{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrQuizNotFound
	}
	return nil
}

func (r *QuizRepository) List(ctx context.Context, filter QuizFilter, page, limit int) ([]model.Quiz, int64, error) {
	var qs []model.Quiz
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Quiz{})
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}
