package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// updated_atが最新のカートを返す。無ければ空のカートを作る
	GetOrCreateActiveByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindByID(ctx context.Context, cartID string) (model.Cart, error)
	// 所有チェック込みの取得（他人のカートはErrNotFound）
	FindByIDAndUserID(ctx context.Context, cartID string, userID string) (model.Cart, error)
}
