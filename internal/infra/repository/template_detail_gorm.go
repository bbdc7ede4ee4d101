package repository

import (
	"context"
	"errors"

	"market/internal/domain/model"
	repo "market/internal/repository"

	"gorm.io/gorm"
)

type TemplateDetailGormRepository struct {
	db *gorm.DB
}

// DI
func NewTemplateDetailGormRepository(db *gorm.DB) repo.TemplateDetailRepository {
	return &TemplateDetailGormRepository{db: db}
}

// template_idで詳細を1件取得
func (r *TemplateDetailGormRepository) FindByTemplateID(ctx context.Context, templateID string) (model.TemplateDetail, error) {
	var d model.TemplateDetail

	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		First(&d).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.TemplateDetail{}, repo.ErrNotFound
	}
	if err != nil {
		return model.TemplateDetail{}, err
	}
	return d, nil
}

// 詳細を新規作成。同じtemplate_idが既にあれば ErrConflict
func (r *TemplateDetailGormRepository) Create(ctx context.Context, d *model.TemplateDetail) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	return err
}

// 詳細を更新
func (r *TemplateDetailGormRepository) UpdateByTemplateID(ctx context.Context, d model.TemplateDetail) error {
	res := r.db.WithContext(ctx).
		Model(&model.TemplateDetail{}).
		Where("template_id = ?", d.TemplateID).
		Updates(map[string]interface{}{
			"header":          d.Header,
			"header_subtitle": d.HeaderSubtitle,
			"features":        d.Features,
			"benefits":        d.Benefits,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
