package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/provider/mockpsp"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 台帳のTTL。切れた後のリトライはidempotency_keyのユニーク制約で止める
const checkoutSessionTTL = 5 * time.Minute

// CheckoutUsecase はカートを決済セッション（Payment）へ変換する。
type CheckoutUsecase struct {
	tx     repo.TransactionManager
	ledger repo.IdempotencyLedger
}

func NewCheckoutUsecase(tx repo.TransactionManager, ledger repo.IdempotencyLedger) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, ledger: ledger}
}

type CreateSessionInput struct {
	CartID         string
	IdempotencyKey string
}

type CheckoutSessionResponse struct {
	PaymentID    string `json:"payment_id"`
	PaymentToken string `json:"payment_token"`
	Amount       string `json:"amount"`
	Status       string `json:"status"`
}

type CreateSessionOutput struct {
	Session CheckoutSessionResponse
	//新規作成ならtrue（同じキーのリプレイはfalse）
	Created bool
}

func (u *CheckoutUsecase) CreateSession(ctx context.Context, userID string, in CreateSessionInput) (CreateSessionOutput, error) {
	if userID == "" {
		return CreateSessionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return CreateSessionOutput{}, NewHTTPError(http.StatusBadRequest, "Idempotency-Key header is required")
	}
	if _, err := uuid.Parse(in.CartID); err != nil {
		return CreateSessionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart_id")
	}

	// 台帳に載っていれば同じ応答を返す（新規作成はしない）。
	// 台帳が落ちていても処理は続行（DB側の制約が二重作成を止める）
	cacheKey := "checkout_session:" + key
	if data, found, err := u.ledger.Lookup(ctx, cacheKey); err == nil && found {
		var cached CheckoutSessionResponse
		if json.Unmarshal(data, &cached) == nil {
			return CreateSessionOutput{Session: cached, Created: false}, nil
		}
	}

	var out CreateSessionOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// カートの存在＋所有チェック
		cart, err := r.Carts().FindByIDAndUserID(ctx, in.CartID, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		// 合計は出品の現在価格で計算。以後この金額は再計算しない
		total := decimal.Zero
		for _, it := range items {
			l, err := r.Listings().FindByID(ctx, it.ListingID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid listing")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			total = total.Add(l.Price.Mul(decimal.NewFromInt(it.Qty)))
		}

		providerRef, err := mockpsp.NewProviderRef()
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "provider ref")
		}

		raw, err := json.Marshal(map[string]any{
			"cart_id":         cart.ID,
			"idempotency_key": key,
			"items_count":     len(items),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "payload")
		}

		p := model.Payment{
			ID:             uuid.NewString(),
			Provider:       mockpsp.ProviderName,
			ProviderRef:    providerRef,
			Amount:         total,
			Status:         model.PaymentStatusPending,
			CartID:         cart.ID,
			IdempotencyKey: key,
			ItemCount:      int64(len(items)),
			RawPayload:     string(raw),
		}

		if err := r.Payments().Create(ctx, p); err != nil {
			//競合（同時に同じキーが入った等）はもう一回検索して同じ結果を返す
			existing, found, err2 := r.Payments().FindByIdempotencyKey(ctx, key)
			if err2 == nil && found {
				out = CreateSessionOutput{Session: toSessionResponse(existing), Created: false}
				return nil
			}
			return NewHTTPError(http.StatusConflict, "idempotency conflict")
		}

		out = CreateSessionOutput{Session: toSessionResponse(p), Created: true}
		return nil
	})

	if err != nil {
		return CreateSessionOutput{}, err
	}

	// 台帳へ保存。失敗しても応答は返す
	if data, err := json.Marshal(out.Session); err == nil {
		_ = u.ledger.Store(ctx, cacheKey, data, checkoutSessionTTL)
	}

	return out, nil
}

func toSessionResponse(p model.Payment) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		PaymentID:    p.ID,
		PaymentToken: p.ProviderRef,
		Amount:       p.Amount.StringFixed(2),
		Status:       string(p.Status),
	}
}
