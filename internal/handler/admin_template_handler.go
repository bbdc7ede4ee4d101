package handler

import (
	"net/http"

	"market/internal/config"
	"market/internal/middleware"
	"market/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// テンプレート作成・更新のリクエストボディ
type TemplateUpsertRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Status       string          `json:"status"`
}

type TemplateStatusRequest struct {
	Status string `json:"status"`
}

type TemplateDetailUpsertRequest struct {
	Header         string   `json:"header"`
	HeaderSubtitle string   `json:"headerSubtitle"`
	Features       []string `json:"features"`
	Benefits       []string `json:"benefits"`
}

// /admin/templates のHTTP
type AdminTemplateHandler struct {
	uc *usecase.TemplateUsecase
}

// DI
func NewAdminTemplateHandler(uc *usecase.TemplateUsecase) *AdminTemplateHandler {
	return &AdminTemplateHandler{uc: uc}
}

// adminを登録。JWT + ADMINロール必須
func (h *AdminTemplateHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/templates", h.createTemplate)
	admin.PUT("/templates/:templateId", h.updateTemplate)
	admin.PUT("/templates/:templateId/status", h.setStatus)
	admin.DELETE("/templates/:templateId", h.deleteTemplate)
	admin.POST("/templates/:templateId/details", h.addDetail)
	admin.PUT("/templates/:templateId/details", h.updateDetail)
}

func (h *AdminTemplateHandler) createTemplate(c echo.Context) error {
	var req TemplateUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	t, err := h.uc.AdminCreateTemplate(c.Request().Context(), toTemplateInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, t)
}

func (h *AdminTemplateHandler) updateTemplate(c echo.Context) error {
	var req TemplateUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	t, err := h.uc.AdminUpdateTemplate(c.Request().Context(), c.Param("templateId"), toTemplateInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, t)
}

func (h *AdminTemplateHandler) setStatus(c echo.Context) error {
	var req TemplateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminSetTemplateStatus(c.Request().Context(), c.Param("templateId"), req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "status updated"})
}

func (h *AdminTemplateHandler) deleteTemplate(c echo.Context) error {
	if err := h.uc.AdminDeleteTemplate(c.Request().Context(), c.Param("templateId")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "template deleted"})
}

func (h *AdminTemplateHandler) addDetail(c echo.Context) error {
	var req TemplateDetailUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	d, err := h.uc.AdminAddTemplateDetail(c.Request().Context(), c.Param("templateId"), usecase.TemplateDetailInput{
		Header:         req.Header,
		HeaderSubtitle: req.HeaderSubtitle,
		Features:       req.Features,
		Benefits:       req.Benefits,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, d)
}

func (h *AdminTemplateHandler) updateDetail(c echo.Context) error {
	var req TemplateDetailUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	d, err := h.uc.AdminUpdateTemplateDetail(c.Request().Context(), c.Param("templateId"), usecase.TemplateDetailInput{
		Header:         req.Header,
		HeaderSubtitle: req.HeaderSubtitle,
		Features:       req.Features,
		Benefits:       req.Benefits,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, d)
}

func toTemplateInput(req TemplateUpsertRequest) usecase.TemplateInput {
	return usecase.TemplateInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		Status:       req.Status,
	}
}
