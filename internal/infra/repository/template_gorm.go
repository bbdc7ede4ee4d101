package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"market/internal/domain/model"
	repo "market/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateGormRepository struct {
	db *gorm.DB
}

// DI
func NewTemplateGormRepository(db *gorm.DB) repo.TemplateRepository {
	return &TemplateGormRepository{db: db}
}

// 公開テンプレートを検索/価格帯/ソート/ページング付きで返す。
func (r *TemplateGormRepository) ListPublic(ctx context.Context, q repo.TemplateListQuery) ([]model.Template, int64, error) {
	var templates []model.Template
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Template{})

	// ACTIVEだけ
	tx = tx.Where("status = ?", model.TemplateStatusActive)

	// qはtitleを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("title ILIKE ?", like)
	}

	// 価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	// total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Template{}, 0, err
	}

	// sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&templates).Error; err != nil {
		return []model.Template{}, 0, err
	}

	return templates, total, nil
}

// IDでテンプレートを取得
func (r *TemplateGormRepository) FindByID(ctx context.Context, id string) (model.Template, error) {
	var t model.Template

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Template{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Template{}, err
	}
	return t, nil
}

// テンプレートを新規作成（IDはここで採番）
func (r *TemplateGormRepository) Create(ctx context.Context, t model.Template) (model.Template, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Template{}, err
	}
	return t, nil
}

// メタデータを更新
func (r *TemplateGormRepository) Update(ctx context.Context, t model.Template) error {
	res := r.db.WithContext(ctx).
		Model(&model.Template{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"title":         t.Title,
			"description":   t.Description,
			"price":         t.Price,
			"image_url":     t.ImageURL,
			"thumbnail_url": t.ThumbnailURL,
			"status":        t.Status,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 公開/非公開の切り替え
func (r *TemplateGormRepository) SetStatus(ctx context.Context, id string, status model.TemplateStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Template{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// テンプレートを削除
func (r *TemplateGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Template{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
