package validator

import (
	"errors"
	"fmt"
	"strings"

	"market/internal/usecase"

	"github.com/google/uuid"
)

var (
	ErrInvalidTemplateID = errors.New("invalid template id")
)

type cartValidator struct{}

// Usecaseは interface を依存注入
func NewCartValidator() usecase.CartValidator {
	return &cartValidator{}
}

// 追加の入力を検証（id形式 + 数量1..100）
func (v *cartValidator) ValidateAdd(templateID string, quantity int64) error {
	if err := v.ValidateTemplateID(templateID); err != nil {
		return err
	}
	return validateQuantity(quantity)
}

// 数量変更の入力を検証（置き換え数量も同じ上限）
func (v *cartValidator) ValidateUpdate(templateID string, quantity int64) error {
	if err := v.ValidateTemplateID(templateID); err != nil {
		return err
	}
	return validateQuantity(quantity)
}

func (v *cartValidator) ValidateTemplateID(templateID string) error {
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return errors.New("templateId is required")
	}
	if _, err := uuid.Parse(templateID); err != nil {
		return ErrInvalidTemplateID
	}
	return nil
}

func validateQuantity(quantity int64) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	if quantity > usecase.MaxQuantityPerTemplate {
		return fmt.Errorf("maximum %d items per template", usecase.MaxQuantityPerTemplate)
	}
	return nil
}
