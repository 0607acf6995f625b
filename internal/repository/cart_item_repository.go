package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	// 同一(cart, listing)は数量を上書き。戻り値のboolは新規作成ならtrue
	UpsertByCartAndListing(ctx context.Context, cartID string, listingID string, qty int64) (model.CartItem, bool, error)
	// カート外の明細はErrNotFound
	DeleteByIDAndCartID(ctx context.Context, cartItemID string, cartID string) error
	CountByCartID(ctx context.Context, cartID string) (int64, error)
}
