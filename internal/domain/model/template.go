package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "ACTIVE"
	TemplateStatusInactive TemplateStatus = "INACTIVE"
)

// 販売テンプレート。カタログ管理（admin）だけが書き込む。
// 価格は通貨を正確に扱うためnumericで持つ。
type Template struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string          `gorm:"type:varchar(200);not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL     string          `gorm:"type:varchar(500);not null" json:"image_url"`
	ThumbnailURL string          `gorm:"type:varchar(500);not null" json:"thumbnail_url"`
	Status       TemplateStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
