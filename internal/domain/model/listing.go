package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 外部カタログサービスが管理する出品。
// このコアでは読み取り専用（現在価格と有効フラグだけを使う）。
type Listing struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	SKU       string          `gorm:"type:varchar(100);not null" json:"sku"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Enabled   bool            `gorm:"not null;default:true;index" json:"enabled"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
