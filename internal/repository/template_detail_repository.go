package repository

import (
	"context"

	"market/internal/domain/model"
)

type TemplateDetailRepository interface {
	FindByTemplateID(ctx context.Context, templateID string) (model.TemplateDetail, error)
	// 既に詳細がある場合は ErrConflict
	Create(ctx context.Context, d *model.TemplateDetail) error
	UpdateByTemplateID(ctx context.Context, d model.TemplateDetail) error
}
