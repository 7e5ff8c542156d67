package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"artmarket-backend/internal/client"
	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/model"
	"artmarket-backend/internal/repository"
	"artmarket-backend/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakePaypalClient struct {
	createCalls  int
	captureCalls int
	createErr    error
	captureErr   error
	capturePaidAt time.Time
}

func (f *fakePaypalClient) GetAccessToken(ctx context.Context) (string, error) {
	return "test-token", nil
}

func (f *fakePaypalClient) CreateOrder(ctx context.Context, amount float64, currency string) (*client.CreateOrderResult, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &client.CreateOrderResult{
		OrderID:    "PAYPAL-ORDER-1",
		Status:     "CREATED",
		ApproveURL: "https://paypal.test/approve/PAYPAL-ORDER-1",
	}, nil
}

func (f *fakePaypalClient) CaptureOrder(ctx context.Context, orderID string) (*client.CaptureResult, error) {
	f.captureCalls++
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return &client.CaptureResult{
		CaptureID: "CAPTURE-1",
		Status:    "COMPLETED",
		PaidAt:    f.capturePaidAt,
	}, nil
}

type notification struct {
	sellerEmail string
	sellerName  string
	sale        *model.SaleSummary
}

type recordingNotifier struct {
	calls []notification
	err   error
}

func (n *recordingNotifier) NotifySale(ctx context.Context, sellerEmail, sellerName string, sale *model.SaleSummary) error {
	n.calls = append(n.calls, notification{sellerEmail: sellerEmail, sellerName: sellerName, sale: sale})
	return n.err
}

type checkoutFixture struct {
	db       *gorm.DB
	paypal   *fakePaypalClient
	notifier *recordingNotifier
	svc      service.CheckoutService

	buyer  *model.User
	seller *model.User
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	buyer := &model.User{Name: "Bea Buyer", Email: "bea@example.com", PasswordHash: "x", RoleID: model.RoleBuyerID}
	seller := &model.User{Name: "Sam Seller", Email: "sam@example.com", PasswordHash: "x", RoleID: model.RoleArtistID}
	require.NoError(t, db.Create(buyer).Error)
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(&model.Category{Name: "prints"}).Error)

	paypal := &fakePaypalClient{capturePaidAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	log := logrus.New()

	svc := service.NewCheckoutService(
		db, paypal,
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewUserRepository(db),
		notifier, log,
	)

	return &checkoutFixture{
		db:       db,
		paypal:   paypal,
		notifier: notifier,
		svc:      svc,
		buyer:    buyer,
		seller:   seller,
	}
}

func (f *checkoutFixture) seedProduct(t *testing.T, artistID uint, title string, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		ArtistID:   artistID,
		Title:      title,
		Price:      price,
		Stock:      stock,
		CategoryID: 1,
		StatusID:   model.ProductStatusActiveID,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *checkoutFixture) countRows(t *testing.T, value interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, f.db.Model(value).Count(&count).Error)
	return count
}

func (f *checkoutFixture) productByID(t *testing.T, id uint) *model.Product {
	t.Helper()

	var product model.Product
	require.NoError(t, f.db.First(&product, id).Error)
	return &product
}

// Scenario A: 2 units of a stock-5 product create a PENDING order holding
// the provider reference.
func TestInitiateCheckout_CreatesPendingOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 20.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 2, Price: 10.00}},
	})
	require.NoError(t, err)

	assert.Equal(t, "PAYPAL-ORDER-1", resp.PaypalOrderID)
	assert.Equal(t, model.OrderStatusPending, resp.Status)
	assert.NotEmpty(t, resp.ApproveURL)
	assert.Equal(t, 1, f.paypal.createCalls)

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.Equal(t, "PAYPAL-ORDER-1", order.PaymentRef)
	assert.Equal(t, 20.00, order.TotalAmount)

	// Validation does not reserve stock during the pending window.
	assert.Equal(t, 5, f.productByID(t, product.ID).Stock)
}

// Scenario C: requesting more than the available stock fails before any
// gateway call and leaves no order behind.
func TestInitiateCheckout_InsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)

	_, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 60.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 6, Price: 10.00}},
	})
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	assert.Equal(t, 0, f.paypal.createCalls, "validation must precede the gateway call")
	assert.Zero(t, f.countRows(t, &model.Order{}))
	assert.Zero(t, f.countRows(t, &model.OrderItem{}))
}

func TestInitiateCheckout_ProductNotFound(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 10.00,
		Items:  []*dto.CheckoutItem{{ProductID: 999, Quantity: 1, Price: 10.00}},
	})
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Equal(t, 0, f.paypal.createCalls)
}

func TestInitiateCheckout_SoldOut(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 0)

	_, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 10.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 10.00}},
	})
	assert.ErrorIs(t, err, model.ErrProductSoldOut)
	assert.Equal(t, 0, f.paypal.createCalls)
}

func TestInitiateCheckout_GatewayFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)
	f.paypal.createErr = &client.RequestError{StatusCode: 422, Body: "UNPROCESSABLE_ENTITY"}

	_, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 10.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 10.00}},
	})

	var reqErr *client.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 422, reqErr.StatusCode)
	assert.Zero(t, f.countRows(t, &model.Order{}), "no local order without a provider order")
}

// Scenario B: confirming the pending order decrements stock, marks the
// order PAID, records one payment, and notifies the seller with the
// seller's subtotal.
func TestConfirmCheckout_SettlesOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 20.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 2, Price: 10.00}},
	})
	require.NoError(t, err)

	confirm, err := f.svc.ConfirmCheckout(context.Background(), resp.PaypalOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, confirm.Status)
	assert.NotZero(t, confirm.PaymentID)

	assert.Equal(t, 3, f.productByID(t, product.ID).Stock)

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.Equal(t, model.OrderStatusPaid, order.Status)

	var payments []model.Payment
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, "paypal", payments[0].Provider)
	assert.Equal(t, "COMPLETED", payments[0].Status)

	require.Len(t, f.notifier.calls, 1)
	call := f.notifier.calls[0]
	assert.Equal(t, f.seller.Email, call.sellerEmail)
	assert.Equal(t, f.seller.Name, call.sellerName)
	assert.Equal(t, 20.00, call.sale.TotalAmount)
	assert.Equal(t, f.buyer.Name, call.sale.BuyerName)
	assert.Equal(t, f.buyer.Email, call.sale.BuyerEmail)
	assert.Equal(t, "PayPal", call.sale.PaymentMethod)
	require.Len(t, call.sale.Items, 1)
	assert.Equal(t, "Sunset print", call.sale.Items[0].ProductTitle)
	assert.Equal(t, 2, call.sale.Items[0].Quantity)
}

// Scenario D: a duplicate confirmation is a no-op success; stock and
// payments stay untouched.
func TestConfirmCheckout_Idempotent(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 20.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 2, Price: 10.00}},
	})
	require.NoError(t, err)

	_, err = f.svc.ConfirmCheckout(context.Background(), resp.PaypalOrderID)
	require.NoError(t, err)

	second, err := f.svc.ConfirmCheckout(context.Background(), resp.PaypalOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, second.Status)

	assert.Equal(t, 3, f.productByID(t, product.ID).Stock, "no second decrement")
	assert.Equal(t, int64(1), f.countRows(t, &model.Payment{}), "no second payment row")
	assert.Len(t, f.notifier.calls, 1, "no second notification")
}

// Scenario E: an order spanning two sellers produces one notification per
// seller, each carrying only that seller's items and subtotal.
func TestConfirmCheckout_TwoSellers(t *testing.T) {
	f := newCheckoutFixture(t)
	other := &model.User{Name: "Olga Other", Email: "olga@example.com", PasswordHash: "x", RoleID: model.RoleArtistID}
	require.NoError(t, f.db.Create(other).Error)

	p1 := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)
	p2 := f.seedProduct(t, other.ID, "Clay vase", 25.00, 2)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 45.00,
		Items: []*dto.CheckoutItem{
			{ProductID: p1.ID, Quantity: 2, Price: 10.00},
			{ProductID: p2.ID, Quantity: 1, Price: 25.00},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.ConfirmCheckout(context.Background(), resp.PaypalOrderID)
	require.NoError(t, err)

	require.Len(t, f.notifier.calls, 2)
	bySeller := map[string]notification{}
	for _, call := range f.notifier.calls {
		bySeller[call.sellerEmail] = call
	}

	sam := bySeller[f.seller.Email]
	require.NotNil(t, sam.sale)
	assert.Equal(t, 20.00, sam.sale.TotalAmount)
	require.Len(t, sam.sale.Items, 1)
	assert.Equal(t, "Sunset print", sam.sale.Items[0].ProductTitle)

	olga := bySeller[other.Email]
	require.NotNil(t, olga.sale)
	assert.Equal(t, 25.00, olga.sale.TotalAmount)
	require.Len(t, olga.sale.Items, 1)
	assert.Equal(t, "Clay vase", olga.sale.Items[0].ProductTitle)
}

func TestConfirmCheckout_SoldOutFlip(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Last copy", 30.00, 2)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 60.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 2, Price: 30.00}},
	})
	require.NoError(t, err)

	_, err = f.svc.ConfirmCheckout(context.Background(), resp.PaypalOrderID)
	require.NoError(t, err)

	got := f.productByID(t, product.ID)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, model.ProductStatusSoldOutID, got.StatusID)
}

func TestConfirmCheckout_OrderNotFound(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.ConfirmCheckout(context.Background(), "unknown-ref")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

// Stock can shrink between initiation and confirmation. Settlement must
// then abort atomically: order stays PENDING, nothing is decremented, no
// payment is written.
func TestConfirmCheckout_StockGoneAtSettlement(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 50.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 5, Price: 10.00}},
	})
	require.NoError(t, err)

	// Another sale emptied most of the stock in the meantime.
	require.NoError(t, f.db.Model(&model.Product{}).Where("id = ?", product.ID).Update("stock", 3).Error)

	_, err = f.svc.ConfirmCheckout(context.Background(), resp.PaypalOrderID)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.Equal(t, model.OrderStatusPending, order.Status, "order stays re-confirmable")
	assert.Equal(t, 3, f.productByID(t, product.ID).Stock)
	assert.Zero(t, f.countRows(t, &model.Payment{}))
	assert.Empty(t, f.notifier.calls)
}

// Notification failures are logged and swallowed; the settlement outcome
// stands.
func TestConfirmCheckout_NotifierFailureDoesNotRollBack(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)
	f.notifier.err = errors.New("smtp down")

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 10.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 10.00}},
	})
	require.NoError(t, err)

	confirm, err := f.svc.ConfirmCheckout(context.Background(), resp.PaypalOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, confirm.Status)
	assert.Equal(t, int64(1), f.countRows(t, &model.Payment{}))
}

func TestCaptureCheckout_RecordsProviderCapture(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 10.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 10.00}},
	})
	require.NoError(t, err)

	result, err := f.svc.CaptureCheckout(context.Background(), resp.PaypalOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, result.Status)
	assert.Equal(t, 1, f.paypal.captureCalls)

	var payment model.Payment
	require.NoError(t, f.db.First(&payment).Error)
	assert.Equal(t, "CAPTURE-1", payment.PaymentRef)
	assert.Equal(t, "COMPLETED", payment.Status)
	assert.True(t, payment.PaidAt.Equal(f.paypal.capturePaidAt))
}

// A capture failure at the provider leaves the order PENDING and
// re-confirmable.
func TestCaptureCheckout_GatewayFailureLeavesPending(t *testing.T) {
	f := newCheckoutFixture(t)
	product := f.seedProduct(t, f.seller.ID, "Sunset print", 10.00, 5)

	resp, err := f.svc.InitiateCheckout(context.Background(), f.buyer.ID, &dto.CheckoutRequest{
		Amount: 10.00,
		Items:  []*dto.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 10.00}},
	})
	require.NoError(t, err)

	f.paypal.captureErr = &client.CaptureError{StatusCode: 422, Body: "ORDER_NOT_APPROVED"}

	_, err = f.svc.CaptureCheckout(context.Background(), resp.PaypalOrderID)
	var captureErr *client.CaptureError
	require.ErrorAs(t, err, &captureErr)

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Zero(t, f.countRows(t, &model.Payment{}))
}
