package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 支払い済みPaymentのカートから不変のOrder/OrderItemを起票する。
// 呼び出し側のトランザクション内で実行すること。
// 明細は作成時点の単価・小計を写し取る。
func materializeOrder(ctx context.Context, r repo.TxRepos, p model.Payment) (model.Order, error) {
	if p.Status != model.PaymentStatusPaid {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "payment not paid")
	}

	cart, err := r.Carts().FindByID(ctx, p.CartID)
	if err == repo.ErrNotFound {
		// Paymentがカートを指していない＝データ不整合
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "cart missing")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := r.CartItems().ListByCartID(ctx, cart.ID)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order := model.Order{
		ID:          uuid.NewString(),
		UserID:      cart.UserID,
		PaymentID:   p.ID,
		TotalAmount: p.Amount,
		Status:      model.OrderStatusConfirmed,
	}

	if err := r.Orders().Create(ctx, order); err != nil {
		//payment_idのユニーク制約で負けた側は既存の注文を返す
		existing, found, err2 := r.Orders().FindByPaymentID(ctx, p.ID)
		if err2 == nil && found {
			return existing, nil
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, ci := range items {
		l, err := r.Listings().FindByID(ctx, ci.ListingID)
		if err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems = append(orderItems, model.OrderItem{
			ListingID: ci.ListingID,
			Qty:       ci.Qty,
			UnitPrice: l.Price,
			Subtotal:  l.Price.Mul(decimal.NewFromInt(ci.Qty)),
		})
	}

	//注文明細一括作成
	if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return order, nil
}
