package model

import "time"

// カートの明細。1ユーザー×1テンプレートで1行（DBのunique制約で保証）。
// 価格はスナップショットしない。読み出しのたびにTemplateをJOINして現在価格を使う。
type CartItem struct {
	ID         int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64    `gorm:"not null;uniqueIndex:uq_cart_user_template" json:"user_id"`
	TemplateID string   `gorm:"type:uuid;not null;uniqueIndex:uq_cart_user_template" json:"template_id"`
	Quantity   int64    `gorm:"not null" json:"quantity"`
	Template   Template `gorm:"foreignKey:TemplateID;references:ID" json:"template"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
