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

type orderFixture struct {
	uc         *usecase.OrderUsecase
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
}

func newOrderFixture() *orderFixture {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:     orders,
		orderItems: orderItems,
	}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	return &orderFixture{
		uc:         usecase.NewOrderUsecase(tx),
		orders:     orders,
		orderItems: orderItems,
	}
}

func TestListMyOrders_ReturnsOrdersWithItems(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.NewString()

	order := model.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		PaymentID:   uuid.NewString(),
		TotalAmount: decimal.RequireFromString("240.00"),
		Status:      model.OrderStatusConfirmed,
	}
	f.orders.On("ListByUserID", mock.Anything, userID, 1, 50).
		Return([]model.Order{order}, int64(1), nil)
	f.orderItems.On("ListByOrderID", mock.Anything, order.ID).Return([]model.OrderItem{
		{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ListingID: uuid.NewString(),
			Qty:       2,
			UnitPrice: decimal.RequireFromString("120.00"),
			Subtotal:  decimal.RequireFromString("240.00"),
		},
	}, nil)

	outs, err := f.uc.ListMyOrders(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Equal(t, "confirmed", outs[0].Status)
	assert.Equal(t, "240.00", outs[0].TotalAmount)
	assert.Len(t, outs[0].Items, 1)
	assert.Equal(t, "120.00", outs[0].Items[0].UnitPrice)
	assert.Equal(t, "240.00", outs[0].Items[0].Subtotal)
}

func TestListMyOrders_EmptyIsNotAnError(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.NewString()

	f.orders.On("ListByUserID", mock.Anything, userID, 1, 50).
		Return([]model.Order{}, int64(0), nil)

	outs, err := f.uc.ListMyOrders(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, outs)
}

func TestGetMyOrderDetail_OK(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.NewString()
	orderID := uuid.NewString()

	f.orders.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:          orderID,
		UserID:      userID,
		TotalAmount: decimal.RequireFromString("240.00"),
		Status:      model.OrderStatusConfirmed,
	}, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{}, nil)

	out, err := f.uc.GetMyOrderDetail(context.Background(), userID, orderID)

	assert.NoError(t, err)
	assert.Equal(t, orderID, out.ID)
	assert.Equal(t, "240.00", out.TotalAmount)
}

func TestGetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	f := newOrderFixture()
	orderID := uuid.NewString()

	f.orders.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		UserID: uuid.NewString(),
	}, nil)

	_, err := f.uc.GetMyOrderDetail(context.Background(), uuid.NewString(), orderID)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	f.orderItems.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestGetMyOrderDetail_NotFound(t *testing.T) {
	f := newOrderFixture()
	orderID := uuid.NewString()

	f.orders.On("FindByID", mock.Anything, orderID).Return(model.Order{}, repo.ErrNotFound)

	_, err := f.uc.GetMyOrderDetail(context.Background(), uuid.NewString(), orderID)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestGetMyOrderDetail_InvalidID(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.GetMyOrderDetail(context.Background(), uuid.NewString(), "not-a-uuid")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
