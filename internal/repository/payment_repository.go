package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) error
	FindByProviderRef(ctx context.Context, providerRef string) (model.Payment, error)
	// Webhook処理用。行ロック付きで取得する（トランザクション内で呼ぶこと）
	FindByProviderRefForUpdate(ctx context.Context, providerRef string) (model.Payment, error)
	// 同じキーなら同じ決済を返す
	FindByIdempotencyKey(ctx context.Context, key string) (model.Payment, bool, error)
	// WebhookによるステータスとRawPayloadの更新。Amountは触らない
	UpdateStatusAndPayload(ctx context.Context, paymentID string, status model.PaymentStatus, rawPayload string) error
}
