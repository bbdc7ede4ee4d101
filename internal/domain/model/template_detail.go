package model

import (
	"time"

	"gorm.io/datatypes"
)

// テンプレート詳細（1テンプレートにつき1件）。
// features/benefitsは文字列配列なのでJSONカラムで持つ。
type TemplateDetail struct {
	ID             int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	TemplateID     string                      `gorm:"type:uuid;not null;uniqueIndex" json:"template_id"`
	Header         string                      `gorm:"type:varchar(300);not null" json:"header"`
	HeaderSubtitle string                      `gorm:"type:varchar(500);not null" json:"header_subtitle"`
	Features       datatypes.JSONSlice[string] `gorm:"not null" json:"features"`
	Benefits       datatypes.JSONSlice[string] `gorm:"not null" json:"benefits"`
	CreatedAt      time.Time                   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
