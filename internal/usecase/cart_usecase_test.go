package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *CartItemRepoMock, *ListingRepoMock) {
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	listingRepo := new(ListingRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, cartItemRepo, listingRepo)
	return uc, cartRepo, cartItemRepo, listingRepo
}

func TestAddItem_CreatesNewItem(t *testing.T) {
	uc, cartRepo, cartItemRepo, listingRepo := newCartUsecase()

	userID := uuid.NewString()
	listingID := uuid.NewString()
	cart := model.Cart{ID: uuid.NewString(), UserID: userID}

	listingRepo.On("FindByID", mock.Anything, listingID).Return(model.Listing{
		ID:      listingID,
		SKU:     "SHIRT-001",
		Price:   decimal.RequireFromString("120.00"),
		Enabled: true,
	}, nil)
	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, userID).Return(cart, nil)
	cartItemRepo.On("UpsertByCartAndListing", mock.Anything, cart.ID, listingID, int64(2)).
		Return(model.CartItem{ID: uuid.NewString(), CartID: cart.ID, ListingID: listingID, Qty: 2}, true, nil)

	out, err := uc.AddItem(context.Background(), userID, usecase.AddCartItemInput{ListingID: listingID, Qty: 2})

	assert.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, int64(2), out.Item.Qty)
	assert.Equal(t, "SHIRT-001", out.Item.ListingSKU)
	assert.Equal(t, "120.00", out.Item.Price)
}

func TestAddItem_ExistingListingUpdatesQty(t *testing.T) {
	uc, cartRepo, cartItemRepo, listingRepo := newCartUsecase()

	userID := uuid.NewString()
	listingID := uuid.NewString()
	cart := model.Cart{ID: uuid.NewString(), UserID: userID}

	listingRepo.On("FindByID", mock.Anything, listingID).Return(model.Listing{
		ID: listingID, SKU: "SHIRT-001", Price: decimal.RequireFromString("120.00"), Enabled: true,
	}, nil)
	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, userID).Return(cart, nil)
	//既存明細は数量を上書き（wasCreated=false）
	cartItemRepo.On("UpsertByCartAndListing", mock.Anything, cart.ID, listingID, int64(5)).
		Return(model.CartItem{ID: uuid.NewString(), CartID: cart.ID, ListingID: listingID, Qty: 5}, false, nil)

	out, err := uc.AddItem(context.Background(), userID, usecase.AddCartItemInput{ListingID: listingID, Qty: 5})

	assert.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, int64(5), out.Item.Qty)
}

func TestAddItem_InvalidQty(t *testing.T) {
	uc, _, cartItemRepo, _ := newCartUsecase()

	_, err := uc.AddItem(context.Background(), uuid.NewString(), usecase.AddCartItemInput{
		ListingID: uuid.NewString(),
		Qty:       0,
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	cartItemRepo.AssertNotCalled(t, "UpsertByCartAndListing", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItem_DisabledListingIsNotFound(t *testing.T) {
	uc, _, cartItemRepo, listingRepo := newCartUsecase()

	listingID := uuid.NewString()
	listingRepo.On("FindByID", mock.Anything, listingID).Return(model.Listing{
		ID: listingID, Price: decimal.RequireFromString("120.00"), Enabled: false,
	}, nil)

	_, err := uc.AddItem(context.Background(), uuid.NewString(), usecase.AddCartItemInput{ListingID: listingID, Qty: 1})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	cartItemRepo.AssertNotCalled(t, "UpsertByCartAndListing", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCart_TotalUsesLivePrice(t *testing.T) {
	uc, cartRepo, cartItemRepo, listingRepo := newCartUsecase()

	userID := uuid.NewString()
	listingID := uuid.NewString()
	cart := model.Cart{ID: uuid.NewString(), UserID: userID}

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, userID).Return(cart, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, cart.ID).Return([]model.CartItem{
		{ID: uuid.NewString(), CartID: cart.ID, ListingID: listingID, Qty: 3},
	}, nil)
	listingRepo.On("FindByID", mock.Anything, listingID).Return(model.Listing{
		ID: listingID, SKU: "SHIRT-001", Price: decimal.RequireFromString("120.00"), Enabled: true,
	}, nil)

	out, err := uc.GetCart(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "360.00", out.TotalAmount)
}

func TestRemoveItem_NotOwnedIsNotFound(t *testing.T) {
	uc, cartRepo, cartItemRepo, _ := newCartUsecase()

	userID := uuid.NewString()
	itemID := uuid.NewString()
	cart := model.Cart{ID: uuid.NewString(), UserID: userID}

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, userID).Return(cart, nil)
	cartItemRepo.On("DeleteByIDAndCartID", mock.Anything, itemID, cart.ID).Return(repo.ErrNotFound)

	err := uc.RemoveItem(context.Background(), userID, itemID)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestRemoveItem_OK(t *testing.T) {
	uc, cartRepo, cartItemRepo, _ := newCartUsecase()

	userID := uuid.NewString()
	itemID := uuid.NewString()
	cart := model.Cart{ID: uuid.NewString(), UserID: userID}

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, userID).Return(cart, nil)
	cartItemRepo.On("DeleteByIDAndCartID", mock.Anything, itemID, cart.ID).Return(nil)

	err := uc.RemoveItem(context.Background(), userID, itemID)

	assert.NoError(t, err)
	cartItemRepo.AssertCalled(t, "DeleteByIDAndCartID", mock.Anything, itemID, cart.ID)
}
