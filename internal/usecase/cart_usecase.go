package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// CartUsecase は /cart の業務ロジックです。
// 価格はカートに持たせず、応答を組むたびに出品の現在価格を読む。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	listingRepo  repo.ListingRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	listingRepo repo.ListingRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		listingRepo:  listingRepo,
	}
}

type CartItemResponse struct {
	ID         string `json:"id"`
	ListingID  string `json:"listing_id"`
	ListingSKU string `json:"listing_sku"`
	Price      string `json:"price"`
	Qty        int64  `json:"qty"`
}

type CartResponse struct {
	ID          string             `json:"id"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount string             `json:"total_amount"`
}

type AddCartItemInput struct {
	ListingID string
	Qty       int64
}

type AddCartItemOutput struct {
	Item CartItemResponse `json:"item"`
	//新規追加ならtrue（既存明細の数量更新ならfalse）
	Created bool `json:"-"`
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// AddItem はカートに追加（同一出品は数量を上書き）。
func (u *CartUsecase) AddItem(ctx context.Context, userID string, in AddCartItemInput) (AddCartItemOutput, error) {
	if userID == "" {
		return AddCartItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, err := uuid.Parse(in.ListingID); err != nil {
		return AddCartItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid listing")
	}
	if in.Qty < 1 {
		return AddCartItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid qty")
	}

	// 出品チェック（無効な出品は存在しない扱い）
	l, err := u.listingRepo.FindByID(ctx, in.ListingID)
	if err == repo.ErrNotFound {
		return AddCartItemOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return AddCartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !l.Enabled {
		return AddCartItemOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return AddCartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, created, err := u.cartItemRepo.UpsertByCartAndListing(ctx, cart.ID, in.ListingID, in.Qty)
	if err != nil {
		return AddCartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AddCartItemOutput{
		Item: CartItemResponse{
			ID:         item.ID,
			ListingID:  item.ListingID,
			ListingSKU: l.SKU,
			Price:      l.Price.StringFixed(2),
			Qty:        item.Qty,
		},
		Created: created,
	}, nil
}

// 明細削除。自分のカートに無い明細は404
func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, cartItemID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, err := uuid.Parse(cartItemID); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByIDAndCartID(ctx, cartItemID, cart.ID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 明細と現在価格ベースの合計をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		l, err := u.listingRepo.FindByID(ctx, it.ListingID)
		if err != nil {
			continue
		}

		respItems = append(respItems, CartItemResponse{
			ID:         it.ID,
			ListingID:  it.ListingID,
			ListingSKU: l.SKU,
			Price:      l.Price.StringFixed(2),
			Qty:        it.Qty,
		})

		total = total.Add(l.Price.Mul(decimal.NewFromInt(it.Qty)))
	}

	return CartResponse{
		ID:          cart.ID,
		Items:       respItems,
		TotalAmount: total.StringFixed(2),
	}, nil
}
