package repository

import (
	"context"

	"market/internal/domain/model"

	"github.com/shopspring/decimal"
)

// GET /templates の検索条件
type TemplateListQuery struct {
	Page     int
	Limit    int
	Q        string
	Sort     string // "new" | "price_asc" | "price_desc"
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type TemplateRepository interface {
	// 公開中（ACTIVE）のみ。totalは件数
	ListPublic(ctx context.Context, q TemplateListQuery) ([]model.Template, int64, error)
	FindByID(ctx context.Context, id string) (model.Template, error)
	Create(ctx context.Context, t model.Template) (model.Template, error)
	Update(ctx context.Context, t model.Template) error
	SetStatus(ctx context.Context, id string, status model.TemplateStatus) error
	Delete(ctx context.Context, id string) error
}
