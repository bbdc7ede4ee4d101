package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"market/internal/domain/model"
	repo "market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// usecaseがValidatorに依存する約束
type TemplateValidator interface {
	ValidateTemplate(in TemplateInput) error
	ValidateTemplateDetail(in TemplateDetailInput) error
}

// TemplateUsecase はカタログの公開側とadmin側をまとめて持つ。
type TemplateUsecase struct {
	templateRepo repo.TemplateRepository
	detailRepo   repo.TemplateDetailRepository
	validator    TemplateValidator
}

func NewTemplateUsecase(
	templateRepo repo.TemplateRepository,
	detailRepo repo.TemplateDetailRepository,
	validator TemplateValidator,
) *TemplateUsecase {
	return &TemplateUsecase{
		templateRepo: templateRepo,
		detailRepo:   detailRepo,
		validator:    validator,
	}
}

// GET /templates の入力DTO
type ListTemplatesInput struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

type TemplateListOutput struct {
	Items []model.Template `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// admin作成・更新の共通入力
type TemplateInput struct {
	Title        string
	Description  string
	Price        decimal.Decimal
	ImageURL     string
	ThumbnailURL string
	Status       string
}

type TemplateDetailInput struct {
	Header         string
	HeaderSubtitle string
	Features       []string
	Benefits       []string
}

func (u *TemplateUsecase) ListPublicTemplates(ctx context.Context, in ListTemplatesInput) (TemplateListOutput, error) {
	if in.Page < 1 {
		return TemplateListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return TemplateListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return TemplateListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return TemplateListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return TemplateListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return TemplateListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return TemplateListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.templateRepo.ListPublic(ctx, repo.TemplateListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     in.Sort,
	})
	if err != nil {
		return TemplateListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return TemplateListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// 公開側の1件取得。非公開は存在しない扱い。
func (u *TemplateUsecase) GetTemplate(ctx context.Context, templateID string) (model.Template, error) {
	t, err := u.findTemplate(ctx, templateID)
	if err != nil {
		return model.Template{}, err
	}

	if t.Status != model.TemplateStatusActive {
		return model.Template{}, NewHTTPError(http.StatusNotFound, "template not found")
	}
	return t, nil
}

// 公開側の詳細取得（1対1）
func (u *TemplateUsecase) GetTemplateDetail(ctx context.Context, templateID string) (model.TemplateDetail, error) {
	if strings.TrimSpace(templateID) == "" {
		return model.TemplateDetail{}, NewHTTPError(http.StatusBadRequest, "templateId is required")
	}

	d, err := u.detailRepo.FindByTemplateID(ctx, templateID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.TemplateDetail{}, NewHTTPError(http.StatusNotFound, "template details not found")
	}
	if err != nil {
		return model.TemplateDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

func (u *TemplateUsecase) AdminCreateTemplate(ctx context.Context, in TemplateInput) (model.Template, error) {
	if err := u.validator.ValidateTemplate(in); err != nil {
		return model.Template{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	t, err := u.templateRepo.Create(ctx, model.Template{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		ThumbnailURL: in.ThumbnailURL,
		Status:       model.TemplateStatus(in.Status),
	})
	if err != nil {
		return model.Template{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return t, nil
}

func (u *TemplateUsecase) AdminUpdateTemplate(ctx context.Context, templateID string, in TemplateInput) (model.Template, error) {
	if strings.TrimSpace(templateID) == "" {
		return model.Template{}, NewHTTPError(http.StatusBadRequest, "templateId is required")
	}
	if err := u.validator.ValidateTemplate(in); err != nil {
		return model.Template{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := u.templateRepo.Update(ctx, model.Template{
		ID:           templateID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		ThumbnailURL: in.ThumbnailURL,
		Status:       model.TemplateStatus(in.Status),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Template{}, NewHTTPError(http.StatusNotFound, "template not found")
	}
	if err != nil {
		return model.Template{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.findTemplate(ctx, templateID)
}

func (u *TemplateUsecase) AdminSetTemplateStatus(ctx context.Context, templateID string, status string) error {
	if strings.TrimSpace(templateID) == "" {
		return NewHTTPError(http.StatusBadRequest, "templateId is required")
	}
	if status != string(model.TemplateStatusActive) && status != string(model.TemplateStatusInactive) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.templateRepo.SetStatus(ctx, templateID, model.TemplateStatus(status))
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "template not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *TemplateUsecase) AdminDeleteTemplate(ctx context.Context, templateID string) error {
	if strings.TrimSpace(templateID) == "" {
		return NewHTTPError(http.StatusBadRequest, "templateId is required")
	}

	err := u.templateRepo.Delete(ctx, templateID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "template not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 詳細追加。1テンプレート1件。既にあれば400（updateを使わせる）。
func (u *TemplateUsecase) AdminAddTemplateDetail(ctx context.Context, templateID string, in TemplateDetailInput) (model.TemplateDetail, error) {
	if _, err := u.findTemplate(ctx, templateID); err != nil {
		return model.TemplateDetail{}, err
	}
	if err := u.validator.ValidateTemplateDetail(in); err != nil {
		return model.TemplateDetail{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	d := model.TemplateDetail{
		TemplateID:     templateID,
		Header:         strings.TrimSpace(in.Header),
		HeaderSubtitle: strings.TrimSpace(in.HeaderSubtitle),
		Features:       datatypes.NewJSONSlice(in.Features),
		Benefits:       datatypes.NewJSONSlice(in.Benefits),
	}

	err := u.detailRepo.Create(ctx, &d)
	if errors.Is(err, repo.ErrConflict) {
		return model.TemplateDetail{}, NewHTTPError(http.StatusBadRequest, "template details already exist. use update instead")
	}
	if err != nil {
		return model.TemplateDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

func (u *TemplateUsecase) AdminUpdateTemplateDetail(ctx context.Context, templateID string, in TemplateDetailInput) (model.TemplateDetail, error) {
	if strings.TrimSpace(templateID) == "" {
		return model.TemplateDetail{}, NewHTTPError(http.StatusBadRequest, "templateId is required")
	}
	if err := u.validator.ValidateTemplateDetail(in); err != nil {
		return model.TemplateDetail{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := u.detailRepo.UpdateByTemplateID(ctx, model.TemplateDetail{
		TemplateID:     templateID,
		Header:         strings.TrimSpace(in.Header),
		HeaderSubtitle: strings.TrimSpace(in.HeaderSubtitle),
		Features:       datatypes.NewJSONSlice(in.Features),
		Benefits:       datatypes.NewJSONSlice(in.Benefits),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.TemplateDetail{}, NewHTTPError(http.StatusNotFound, "template details not found")
	}
	if err != nil {
		return model.TemplateDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetTemplateDetail(ctx, templateID)
}

func (u *TemplateUsecase) findTemplate(ctx context.Context, templateID string) (model.Template, error) {
	if strings.TrimSpace(templateID) == "" {
		return model.Template{}, NewHTTPError(http.StatusBadRequest, "templateId is required")
	}

	t, err := u.templateRepo.FindByID(ctx, templateID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Template{}, NewHTTPError(http.StatusNotFound, "template not found")
	}
	if err != nil {
		return model.Template{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return t, nil
}
