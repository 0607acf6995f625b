package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ListingGormRepository struct {
	db *gorm.DB
}

// DI
func NewListingGormRepository(db *gorm.DB) *ListingGormRepository {
	return &ListingGormRepository{db: db}
}

func (r *ListingGormRepository) FindByID(ctx context.Context, id string) (model.Listing, error) {
	var l model.Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Listing{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Listing{}, err
	}
	return l, nil
}
