package model

import "time"

// カートの明細。
// 同一(cart, listing)は1行で、追加し直すと数量を上書きする。
// 価格はここに持たない（合計計算時に出品の現在価格を読む）。
type CartItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_listing" json:"cart_id"`
	ListingID string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_listing" json:"listing_id"`
	Qty       int64     `gorm:"not null" json:"qty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
