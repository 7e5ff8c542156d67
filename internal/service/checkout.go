package service

import (
	"context"
	"fmt"
	"time"

	"artmarket-backend/internal/client"
	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/model"
	"artmarket-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const paymentMethodLabel = "PayPal"

// SaleNotifier is the slice of the mailer the settlement flow needs.
type SaleNotifier interface {
	NotifySale(ctx context.Context, sellerEmail, sellerName string, sale *model.SaleSummary) error
}

// CheckoutService drives an order from validation through PayPal to a
// settled PAID state with sellers notified.
type CheckoutService interface {
	InitiateCheckout(ctx context.Context, buyerID uint, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	ConfirmCheckout(ctx context.Context, paypalOrderID string) (*dto.ConfirmResponse, error)
	CaptureCheckout(ctx context.Context, paypalOrderID string) (*dto.ConfirmResponse, error)
}

type checkoutServiceImpl struct {
	db           *gorm.DB
	paypalClient client.PaypalClient
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	userRepo     repository.UserRepository
	notifier     SaleNotifier
	log          *logrus.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	paypalClient client.PaypalClient,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	notifier SaleNotifier,
	log *logrus.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:           db,
		paypalClient: paypalClient,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		log:          log,
	}
}

// InitiateCheckout validates every requested line against current stock,
// creates the PayPal order, then persists the PENDING order with its lines
// in one transaction. Stock is NOT reserved during the pending window; the
// same checks run again at settlement. If local persistence fails after the
// PayPal order was created, the remote order is orphaned and must be
// reconciled out-of-band.
func (s *checkoutServiceImpl) InitiateCheckout(ctx context.Context, buyerID uint, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
		if product.Stock <= 0 {
			return nil, fmt.Errorf("product %q: %w", product.Title, model.ErrProductSoldOut)
		}
		if item.Quantity > product.Stock {
			return nil, fmt.Errorf("requested quantity of %q exceeds available stock (%d): %w",
				product.Title, product.Stock, model.ErrInsufficientStock)
		}
	}

	resp, err := s.paypalClient.CreateOrder(ctx, req.Amount, "USD")
	if err != nil {
		return nil, fmt.Errorf("paypal api create order: %w", err)
	}

	order := &model.Order{
		BuyerID:     buyerID,
		TotalAmount: req.Amount,
		Status:      model.OrderStatusPending,
		PaymentRef:  resp.OrderID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}

		items := make([]*model.OrderItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = &model.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
		}
		if err := s.orderRepo.CreateItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}

		return nil
	})
	if err != nil {
		// The PayPal order resp.OrderID is orphaned at this point.
		return nil, err
	}

	return &dto.CheckoutResponse{
		OrderID:       order.ID,
		PaypalOrderID: resp.OrderID,
		ApproveURL:    resp.ApproveURL,
		Status:        order.Status,
	}, nil
}

// ConfirmCheckout settles a locally tracked order after the buyer approved
// the payment. Confirming an already-PAID order is a no-op success.
func (s *checkoutServiceImpl) ConfirmCheckout(ctx context.Context, paypalOrderID string) (*dto.ConfirmResponse, error) {
	return s.settle(ctx, paypalOrderID, paypalOrderID, "COMPLETED", time.Now().UTC())
}

// CaptureCheckout finalizes the payment at PayPal first, then settles the
// local order with the provider's capture details. A capture failure leaves
// the order PENDING and re-confirmable.
func (s *checkoutServiceImpl) CaptureCheckout(ctx context.Context, paypalOrderID string) (*dto.ConfirmResponse, error) {
	capture, err := s.paypalClient.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		return nil, fmt.Errorf("paypal api capture order: %w", err)
	}

	return s.settle(ctx, paypalOrderID, capture.CaptureID, capture.Status, capture.PaidAt)
}

type sellerSale struct {
	seller *model.User
	items  []model.SaleItem
}

func (s *checkoutServiceImpl) settle(ctx context.Context, paypalOrderID, paymentRef, paymentStatus string, paidAt time.Time) (*dto.ConfirmResponse, error) {
	order, err := s.orderRepo.FindByPaymentRef(ctx, paypalOrderID)
	if err != nil {
		return nil, err
	}

	if order.Status == model.OrderStatusPaid {
		return &dto.ConfirmResponse{
			Message: "order already recorded as paid",
			Status:  model.OrderStatusPaid,
		}, nil
	}

	buyer, err := s.userRepo.FindByID(ctx, order.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("buyer %d: %w", order.BuyerID, err)
	}

	payment := &model.Payment{
		OrderID:    order.ID,
		Provider:   "paypal",
		PaymentRef: paymentRef,
		Status:     paymentStatus,
		PaidAt:     paidAt,
	}
	sales := map[uint]*sellerSale{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.orderRepo.GetItems(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("get order items: %w", err)
		}

		for _, item := range items {
			product, err := s.productRepo.Get(ctx, tx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("not enough stock for product %q: %w",
					product.Title, model.ErrInsufficientStock)
			}

			if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("decrement stock for product %q: %w", product.Title, err)
			}
			if product.Stock-item.Quantity == 0 {
				if err := s.productRepo.SetStatus(ctx, tx, product.ID, model.ProductStatusSoldOutID); err != nil {
					return fmt.Errorf("mark product sold out: %w", err)
				}
			}

			seller, err := s.userRepo.Get(ctx, tx, product.ArtistID)
			if err != nil {
				if err == model.ErrUserNotFound {
					continue
				}
				return fmt.Errorf("seller %d: %w", product.ArtistID, err)
			}

			sale, ok := sales[seller.ID]
			if !ok {
				sale = &sellerSale{seller: seller}
				sales[seller.ID] = sale
			}
			sale.items = append(sale.items, model.SaleItem{
				ProductTitle: product.Title,
				Quantity:     item.Quantity,
				UnitPrice:    item.Price,
			})
		}

		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment in db: %w", err)
		}

		return s.orderRepo.MarkPaid(ctx, tx, order.ID)
	})
	if err != nil {
		return nil, err
	}

	// The payment and stock changes are committed; notification failures
	// are logged and swallowed.
	for _, sale := range sales {
		subtotal := decimal.Zero
		for _, item := range sale.items {
			subtotal = subtotal.Add(
				decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		summary := &model.SaleSummary{
			OrderID:       order.ID,
			SaleDate:      payment.PaidAt,
			BuyerName:     buyer.Name,
			BuyerEmail:    buyer.Email,
			TotalAmount:   subtotal.InexactFloat64(),
			PaymentMethod: paymentMethodLabel,
			Items:         sale.items,
		}

		if err := s.notifier.NotifySale(ctx, sale.seller.Email, sale.seller.Name, summary); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"order_id":     order.ID,
				"seller_email": sale.seller.Email,
			}).Warn("sale notification failed")
		}
	}

	return &dto.ConfirmResponse{
		Message:   "payment confirmed",
		PaymentID: payment.ID,
		Status:    model.OrderStatusPaid,
	}, nil
}
