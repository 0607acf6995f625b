package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同一(cart, listing)は数量を上書き
func (r *CartItemGormRepository) UpsertByCartAndListing(ctx context.Context, cartID string, listingID string, qty int64) (model.CartItem, bool, error) {
	if qty < 1 {
		return model.CartItem{}, false, errors.New("invalid quantity")
	}

	var item model.CartItem
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND listing_id = ?", cartID, listingID).
			First(&item).Error

		if findErr == nil {
			// 既存ありは数量を置き換える
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("qty", qty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			item.Qty = qty
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		//無い場合は新規作成
		now := time.Now()
		item = model.CartItem{
			ID:        uuid.NewString(),
			CartID:    cartID,
			ListingID: listingID,
			Qty:       qty,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		created = true
		return nil
	})

	if err != nil {
		return model.CartItem{}, false, err
	}
	return item, created, nil
}

// カート外の明細は消さない（所有チェックを兼ねる）
func (r *CartItemGormRepository) DeleteByIDAndCartID(ctx context.Context, cartItemID string, cartID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", cartItemID, cartID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) CountByCartID(ctx context.Context, cartID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}
	return count, nil
}
