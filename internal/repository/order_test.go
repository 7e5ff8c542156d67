package repository_test

import (
	"context"
	"testing"

	"artmarket-backend/internal/model"
	"artmarket-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_CreateAndFindByPaymentRef(t *testing.T) {
	db := testDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	order := &model.Order{
		BuyerID:     7,
		TotalAmount: 20.00,
		Status:      model.OrderStatusPending,
		PaymentRef:  "PAYPAL-ORDER-1",
	}
	require.NoError(t, repo.Create(ctx, db, order))
	require.NotZero(t, order.ID)

	items := []*model.OrderItem{
		{OrderID: order.ID, ProductID: 1, Quantity: 2, Price: 10.00},
	}
	require.NoError(t, repo.CreateItems(ctx, db, items))

	got, err := repo.FindByPaymentRef(ctx, "PAYPAL-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, model.OrderStatusPending, got.Status)

	gotItems, err := repo.GetItems(ctx, db, order.ID)
	require.NoError(t, err)
	require.Len(t, gotItems, 1)
	assert.Equal(t, 2, gotItems[0].Quantity)
	assert.Equal(t, 10.00, gotItems[0].Price)
}

func TestOrderRepository_FindByPaymentRef_NotFound(t *testing.T) {
	db := testDB(t)
	repo := repository.NewOrderRepository(db)

	_, err := repo.FindByPaymentRef(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderRepository_MarkPaid(t *testing.T) {
	db := testDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	order := &model.Order{BuyerID: 1, TotalAmount: 5, Status: model.OrderStatusPending, PaymentRef: "ref"}
	require.NoError(t, repo.Create(ctx, db, order))

	require.NoError(t, repo.MarkPaid(ctx, db, order.ID))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)

	// A PAID order cannot be marked again; the transition is one-way.
	err = repo.MarkPaid(ctx, db, order.ID)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
