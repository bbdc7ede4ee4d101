package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"market/internal/usecase"

	"github.com/shopspring/decimal"
)

// 管理画面入力の上限（zodスキーマ由来の境界値）
const (
	maxTitleLen       = 200
	maxDescriptionLen = 10000
	maxURLLen         = 500
	maxDetailHeader   = 300
	maxDetailSubtitle = 500
	maxDetailEntries  = 20
	maxDetailEntryLen = 200
)

var (
	minPrice = decimal.RequireFromString("0.01")
	maxPrice = decimal.RequireFromString("999999.99")
)

type templateValidator struct{}

// Usecaseは interface を依存注入
func NewTemplateValidator() usecase.TemplateValidator {
	return &templateValidator{}
}

// テンプレートのメタデータを検証
func (v *templateValidator) ValidateTemplate(in usecase.TemplateInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLen)
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return errors.New("description is required")
	}
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", maxDescriptionLen)
	}

	if in.Price.LessThan(minPrice) {
		return errors.New("price must be at least 0.01")
	}
	if in.Price.GreaterThan(maxPrice) {
		return errors.New("price cannot exceed 999999.99")
	}

	if err := validateURL("image url", in.ImageURL); err != nil {
		return err
	}
	if err := validateURL("thumbnail url", in.ThumbnailURL); err != nil {
		return err
	}

	switch in.Status {
	case "ACTIVE", "INACTIVE":
	default:
		return errors.New("status must be ACTIVE or INACTIVE")
	}

	return nil
}

// 詳細（header/subtitle/features/benefits）を検証
func (v *templateValidator) ValidateTemplateDetail(in usecase.TemplateDetailInput) error {
	header := strings.TrimSpace(in.Header)
	if header == "" {
		return errors.New("header is required")
	}
	if len(header) > maxDetailHeader {
		return fmt.Errorf("header must not exceed %d characters", maxDetailHeader)
	}

	subtitle := strings.TrimSpace(in.HeaderSubtitle)
	if subtitle == "" {
		return errors.New("header subtitle is required")
	}
	if len(subtitle) > maxDetailSubtitle {
		return fmt.Errorf("header subtitle must not exceed %d characters", maxDetailSubtitle)
	}

	if err := validateStringList("features", in.Features); err != nil {
		return err
	}
	return validateStringList("benefits", in.Benefits)
}

func validateStringList(name string, list []string) error {
	if len(list) < 1 {
		return fmt.Errorf("at least one of %s is required", name)
	}
	if len(list) > maxDetailEntries {
		return fmt.Errorf("maximum %d %s allowed", maxDetailEntries, name)
	}
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" || len(s) > maxDetailEntryLen {
			return fmt.Errorf("each of %s must be 1..%d characters", name, maxDetailEntryLen)
		}
	}
	return nil
}

func validateURL(name string, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	if len(raw) > maxURLLen {
		return fmt.Errorf("%s must not exceed %d characters", name, maxURLLen)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be a valid url", name)
	}
	return nil
}
