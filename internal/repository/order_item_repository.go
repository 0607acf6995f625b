package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	// 明細は一括作成（部分的な注文を残さない）
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
