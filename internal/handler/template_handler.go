package handler

import (
	"net/http"
	"strconv"

	"market/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /templates の公開API
type TemplateHandler struct {
	uc *usecase.TemplateUsecase
}

// DI
func NewTemplateHandler(uc *usecase.TemplateUsecase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// 公開テンプレートのルートを登録
func (h *TemplateHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/templates", h.list)
	e.GET("/templates/:templateId", h.detail)
	e.GET("/templates/:templateId/details", h.pageDetail)
}

func (h *TemplateHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	q := c.QueryParam("q")
	sort := c.QueryParam("sort")

	var minPrice *decimal.Decimal
	if v := c.QueryParam("min_price"); v != "" {
		x, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &x
	}

	var maxPrice *decimal.Decimal
	if v := c.QueryParam("max_price"); v != "" {
		x, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		maxPrice = &x
	}

	out, err := h.uc.ListPublicTemplates(c.Request().Context(), usecase.ListTemplatesInput{
		Page:     page,
		Limit:    limit,
		Q:        q,
		Sort:     sort,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TemplateHandler) detail(c echo.Context) error {
	t, err := h.uc.GetTemplate(c.Request().Context(), c.Param("templateId"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, t)
}

func (h *TemplateHandler) pageDetail(c echo.Context) error {
	d, err := h.uc.GetTemplateDetail(c.Request().Context(), c.Param("templateId"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, d)
}
