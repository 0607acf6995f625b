package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 出品の取得だけを約束。書き込みはカタログ側の責務。
type ListingRepository interface {
	FindByID(ctx context.Context, id string) (model.Listing, error)
}
