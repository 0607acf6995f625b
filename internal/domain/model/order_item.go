package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細のスナップショット。
// 起票時点の単価と小計を写し取るので、後から出品価格が変わっても過去の注文は動かない。
type OrderItem struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ListingID string          `gorm:"type:uuid;not null;index" json:"listing_id"`
	Qty       int64           `gorm:"not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
