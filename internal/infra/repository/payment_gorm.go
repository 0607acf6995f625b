package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

// DI
func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(&p).Error
}

func (r *PaymentGormRepository) FindByProviderRef(ctx context.Context, providerRef string) (model.Payment, error) {
	var p model.Payment

	err := r.db.WithContext(ctx).
		Where("provider_ref = ?", providerRef).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

// Webhookの同時配送対策。行ロックを取ってから状態遷移させる
func (r *PaymentGormRepository) FindByProviderRefForUpdate(ctx context.Context, providerRef string) (model.Payment, error) {
	var p model.Payment

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("provider_ref = ?", providerRef).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByIdempotencyKey(ctx context.Context, key string) (model.Payment, bool, error) {
	var p model.Payment

	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, false, nil
	}
	if err != nil {
		return model.Payment{}, false, err
	}
	return p, true, nil
}

func (r *PaymentGormRepository) UpdateStatusAndPayload(ctx context.Context, paymentID string, status model.PaymentStatus, rawPayload string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"status":      status,
			"raw_payload": rawPayload,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
