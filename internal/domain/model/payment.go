package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// 遷移表。pending -> paid / failed のみ許す。終端からは動かない。
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:    {},
	PaymentStatusFailed:  {},
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, t := range paymentTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// チェックアウト1回分の決済。
// Amountは作成時に確定し、以後変更しない。
// StatusはWebhook処理だけが更新する。
type Payment struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Provider    string          `gorm:"type:varchar(50);not null" json:"provider"`
	ProviderRef string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"provider_ref"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"status"`

	//元になったカートと冪等キー。台帳が切れてもDB側で重複を止めるためのユニーク制約付き
	CartID         string `gorm:"type:uuid;not null;index" json:"cart_id"`
	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`

	ItemCount int64 `gorm:"not null" json:"item_count"`

	//プロバイダからのraw_dataをマージしていくJSON文字列
	RawPayload string `gorm:"type:text;not null;default:'{}'" json:"raw_payload"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Webhookのraw_dataをRawPayloadへマージする。
func (p *Payment) MergeRawPayload(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}

	cur := map[string]any{}
	if p.RawPayload != "" {
		if err := json.Unmarshal([]byte(p.RawPayload), &cur); err != nil {
			cur = map[string]any{}
		}
	}

	for k, v := range data {
		cur[k] = v
	}

	b, err := json.Marshal(cur)
	if err != nil {
		return err
	}
	p.RawPayload = string(b)
	return nil
}
