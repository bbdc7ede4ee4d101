package repository

import (
	"context"
	"errors"

	"market/internal/domain/model"
	repo "market/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) repo.CartRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカート明細をTemplate付きで新しい順に返す
func (r *CartGormRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Preload("Template").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// (user, template) で1件取得
func (r *CartGormRepository) FindByUserAndTemplate(ctx context.Context, userID int64, templateID string) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 明細を新規作成。uniqueに負けたら ErrConflict
func (r *CartGormRepository) Create(ctx context.Context, item *model.CartItem) error {
	err := r.db.WithContext(ctx).Omit("Template").Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	return err
}

// 数量を置き換える
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, userID int64, templateID string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) Delete(ctx context.Context, userID int64, templateID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ユーザーの明細を全削除して件数を返す
func (r *CartGormRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
