package model

import "time"

// SaleItem is one sold line addressed to a single seller's notification.
type SaleItem struct {
	ProductTitle string
	Quantity     int
	UnitPrice    float64
}

// SaleSummary is the per-seller view of a confirmed order, built during
// settlement and handed to the notifier. It is never persisted.
type SaleSummary struct {
	OrderID       uint
	SaleDate      time.Time
	BuyerName     string
	BuyerEmail    string
	TotalAmount   float64 // this seller's subtotal, not the order total
	PaymentMethod string
	Items         []SaleItem
}
