package repository

import (
	"context"

	"market/internal/domain/model"
)

// カート明細のRepository。
// (user_id, template_id) のuniqueはDB制約で守る。アプリ側のチェックだけに頼らない。
type CartRepository interface {
	// Templateを含めて新しい順に返す
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByUserAndTemplate(ctx context.Context, userID int64, templateID string) (model.CartItem, error)
	// 同じ (user, template) が既にあれば ErrConflict
	Create(ctx context.Context, item *model.CartItem) error
	// 数量を置き換える（加算ではない）。行が無ければ ErrNotFound
	UpdateQuantity(ctx context.Context, userID int64, templateID string, qty int64) error
	Delete(ctx context.Context, userID int64, templateID string) error
	// 削除した件数を返す（0も正常）
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
}
