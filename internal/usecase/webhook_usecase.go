package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/provider/mockpsp"
	repo "app/internal/repository"
)

// プロバイダの再送ウィンドウより長くとる
const webhookDedupTTL = 10 * time.Minute

const (
	WebhookResultProcessed        = "processed"
	WebhookResultAlreadyProcessed = "already_processed"
)

// WebhookUsecase はプロバイダ通知を検証してPaymentへ状態遷移を適用し、
// paidのとき一度だけ注文を起票する。
type WebhookUsecase struct {
	tx     repo.TransactionManager
	ledger repo.IdempotencyLedger
	//Webhook署名の共有シークレット
	secret string
}

func NewWebhookUsecase(tx repo.TransactionManager, ledger repo.IdempotencyLedger, secret string) *WebhookUsecase {
	return &WebhookUsecase{tx: tx, ledger: ledger, secret: secret}
}

type WebhookInput struct {
	ProviderRef string
	Status      string
	Signature   string
	RawData     map[string]any
}

type WebhookResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id,omitempty"`
	NewStatus string `json:"new_status,omitempty"`
}

func (u *WebhookUsecase) HandleWebhook(ctx context.Context, in WebhookInput) (WebhookResponse, error) {
	if strings.TrimSpace(in.ProviderRef) == "" {
		return WebhookResponse{}, NewHTTPError(http.StatusBadRequest, "invalid provider_ref")
	}
	newStatus := model.PaymentStatus(in.Status)
	if !newStatus.Valid() {
		return WebhookResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	// 1. 署名検証。失敗したらPaymentには一切触らない
	if !mockpsp.VerifySignature(in.ProviderRef, u.secret, in.Signature) {
		return WebhookResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	// 2. 再配送チェック
	dedupKey := webhookDedupKey(in.ProviderRef, newStatus)
	if _, found, err := u.ledger.Lookup(ctx, dedupKey); err == nil && found {
		return WebhookResponse{Status: WebhookResultAlreadyProcessed}, nil
	}

	var out WebhookResponse

	// 3,4. 状態遷移と注文起票は同一トランザクション。
	// 行ロックで同時配送を直列化し、orders.payment_idのユニーク制約が最後の砦
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByProviderRefForUpdate(ctx, in.ProviderRef)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 台帳が切れた後の再送。同じステータスなら冪等に成功で返す
		if p.Status == newStatus {
			out = WebhookResponse{
				Status:    WebhookResultAlreadyProcessed,
				PaymentID: p.ID,
				NewStatus: string(p.Status),
			}
			return nil
		}

		// 遷移表に無い遷移（終端からの上書き等）は409
		if !p.Status.CanTransitionTo(newStatus) {
			return NewHTTPError(http.StatusConflict, "invalid status transition")
		}

		p.Status = newStatus
		if err := p.MergeRawPayload(in.RawData); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "payload")
		}
		if err := r.Payments().UpdateStatusAndPayload(ctx, p.ID, p.Status, p.RawPayload); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// paidのときだけ、まだ注文が無ければ起票する
		if newStatus == model.PaymentStatusPaid {
			_, found, err := r.Orders().FindByPaymentID(ctx, p.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !found {
				if _, err := materializeOrder(ctx, r, p); err != nil {
					return err
				}
			}
		}

		out = WebhookResponse{
			Status:    WebhookResultProcessed,
			PaymentID: p.ID,
			NewStatus: string(newStatus),
		}
		return nil
	})

	if err != nil {
		return WebhookResponse{}, err
	}

	// 5. コミット後に再配送用の台帳を書く。失敗しても応答は返す
	_ = u.ledger.Store(ctx, dedupKey, []byte("1"), webhookDedupTTL)

	return out, nil
}

func webhookDedupKey(providerRef string, status model.PaymentStatus) string {
	return fmt.Sprintf("webhook:%s:%s", providerRef, status)
}
