package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"market/internal/domain/model"
	repo "market/internal/repository"
	"market/internal/usecase"
	"market/internal/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type TemplateDetailRepoMock struct{ mock.Mock }

func (m *TemplateDetailRepoMock) FindByTemplateID(ctx context.Context, templateID string) (model.TemplateDetail, error) {
	args := m.Called(ctx, templateID)
	d, _ := args.Get(0).(model.TemplateDetail)
	return d, args.Error(1)
}

func (m *TemplateDetailRepoMock) Create(ctx context.Context, d *model.TemplateDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *TemplateDetailRepoMock) UpdateByTemplateID(ctx context.Context, d model.TemplateDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func newTemplateUsecase(tRepo *TemplateRepoMock, dRepo *TemplateDetailRepoMock) *usecase.TemplateUsecase {
	return usecase.NewTemplateUsecase(tRepo, dRepo, validator.NewTemplateValidator())
}

func TestTemplateUsecase_ListPublicTemplates_ValidatesQuery(t *testing.T) {
	uc := newTemplateUsecase(new(TemplateRepoMock), new(TemplateDetailRepoMock))
	ctx := context.Background()

	cases := []usecase.ListTemplatesInput{
		{Page: 0, Limit: 20},
		{Page: 1, Limit: 0},
		{Page: 1, Limit: 101},
		{Page: 1, Limit: 20, Sort: "popular"},
	}
	for _, in := range cases {
		_, err := uc.ListPublicTemplates(ctx, in)
		assertHTTPStatus(t, err, http.StatusBadRequest)
	}

	neg := decimal.NewFromInt(-1)
	_, err := uc.ListPublicTemplates(ctx, usecase.ListTemplatesInput{Page: 1, Limit: 20, MinPrice: &neg})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	lo := decimal.NewFromInt(50)
	hi := decimal.NewFromInt(10)
	_, err = uc.ListPublicTemplates(ctx, usecase.ListTemplatesInput{Page: 1, Limit: 20, MinPrice: &lo, MaxPrice: &hi})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestTemplateUsecase_ListPublicTemplates_PassesQueryThrough(t *testing.T) {
	tRepo := new(TemplateRepoMock)
	uc := newTemplateUsecase(tRepo, new(TemplateDetailRepoMock))
	ctx := context.Background()

	min := decimal.NewFromInt(10)
	want := repo.TemplateListQuery{Page: 2, Limit: 5, Q: "landing", Sort: "price_asc", MinPrice: &min}
	tRepo.On("ListPublic", mock.Anything, want).Return([]model.Template{{ID: uuid.NewString()}}, int64(12), nil)

	out, err := uc.ListPublicTemplates(ctx, usecase.ListTemplatesInput{
		Page: 2, Limit: 5, Q: "  landing  ", Sort: "price_asc", MinPrice: &min,
	})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(12), out.Total)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 5, out.Limit)
}

func TestTemplateUsecase_GetTemplate_InactiveIsNotFound(t *testing.T) {
	tRepo := new(TemplateRepoMock)
	uc := newTemplateUsecase(tRepo, new(TemplateDetailRepoMock))
	ctx := context.Background()
	tid := uuid.NewString()

	inactive := model.Template{ID: tid, Status: model.TemplateStatusInactive}
	tRepo.On("FindByID", mock.Anything, tid).Return(inactive, nil)

	_, err := uc.GetTemplate(ctx, tid)

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestTemplateUsecase_GetTemplateDetail_NotFound(t *testing.T) {
	dRepo := new(TemplateDetailRepoMock)
	uc := newTemplateUsecase(new(TemplateRepoMock), dRepo)
	ctx := context.Background()
	tid := uuid.NewString()

	dRepo.On("FindByTemplateID", mock.Anything, tid).Return(model.TemplateDetail{}, repo.ErrNotFound)

	_, err := uc.GetTemplateDetail(ctx, tid)

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestTemplateUsecase_AdminCreateTemplate_RejectsInvalidInput(t *testing.T) {
	uc := newTemplateUsecase(new(TemplateRepoMock), new(TemplateDetailRepoMock))
	ctx := context.Background()

	_, err := uc.AdminCreateTemplate(ctx, usecase.TemplateInput{
		Title:  "",
		Status: "ACTIVE",
	})

	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestTemplateUsecase_AdminSetTemplateStatus(t *testing.T) {
	tRepo := new(TemplateRepoMock)
	uc := newTemplateUsecase(tRepo, new(TemplateDetailRepoMock))
	ctx := context.Background()
	tid := uuid.NewString()

	tRepo.On("SetStatus", mock.Anything, tid, model.TemplateStatusInactive).Return(nil)
	assert.NoError(t, uc.AdminSetTemplateStatus(ctx, tid, "INACTIVE"))

	err := uc.AdminSetTemplateStatus(ctx, tid, "DRAFT")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	tRepo.On("SetStatus", mock.Anything, "missing", model.TemplateStatusActive).Return(repo.ErrNotFound)
	err = uc.AdminSetTemplateStatus(ctx, "missing", "ACTIVE")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// 詳細は1テンプレート1件。二重追加は400でupdateに誘導する。
func TestTemplateUsecase_AdminAddTemplateDetail_Duplicate(t *testing.T) {
	tRepo := new(TemplateRepoMock)
	dRepo := new(TemplateDetailRepoMock)
	uc := newTemplateUsecase(tRepo, dRepo)
	ctx := context.Background()
	tid := uuid.NewString()

	tRepo.On("FindByID", mock.Anything, tid).Return(model.Template{ID: tid, Status: model.TemplateStatusActive}, nil)
	dRepo.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := uc.AdminAddTemplateDetail(ctx, tid, usecase.TemplateDetailInput{
		Header:         "Everything you need",
		HeaderSubtitle: "Ship today",
		Features:       []string{"Responsive layout"},
		Benefits:       []string{"Faster launch"},
	})

	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Message, "already exist")
}
