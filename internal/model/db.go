package model

import "time"

const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
	OrderStatusFailed  = "FAILED"
)

// Seeded product_statuses rows.
const (
	ProductStatusActiveID   uint = 1
	ProductStatusSoldOutID  uint = 2
	ProductStatusInactiveID uint = 3
)

// Seeded roles rows.
const (
	RoleAdminID  uint = 1
	RoleArtistID uint = 2
	RoleBuyerID  uint = 3
)

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"size:32;not null" json:"description"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

type ProductStatus struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"size:32;uniqueIndex;not null" json:"status"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	RoleID       uint      `gorm:"index;not null" json:"role_id"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ArtistID    uint      `gorm:"index;not null" json:"artist_id"` // seller
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `gorm:"not null" json:"price"`
	IsDigital   bool      `json:"is_digital"`
	FileURL     string    `json:"file_url,omitempty"`
	Stock       int       `gorm:"not null;default:1" json:"stock"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	StatusID    uint      `gorm:"index;not null" json:"status_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Image struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	ImageURL  string `gorm:"size:512;not null" json:"image_url"`
}

type Order struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	BuyerID     uint    `gorm:"index;not null" json:"buyer_id"`
	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	// PENDING -> PAID or PENDING -> FAILED, never backward.
	Status     string    `gorm:"size:16;index;not null" json:"status"`
	PaymentRef string    `gorm:"size:64;index" json:"payment_ref,omitempty"` // paypal order id
	CreatedAt  time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	// Unit price snapshot at order time, independent of later product price changes.
	Price float64 `gorm:"not null" json:"price"`
}

type Payment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"index;not null" json:"order_id"`
	Provider   string    `gorm:"size:32;not null" json:"provider"`
	PaymentRef string    `gorm:"size:64;not null" json:"payment_ref"` // provider capture/payment id
	Status     string    `gorm:"size:32;not null" json:"status"`
	PaidAt     time.Time `json:"paid_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Commission struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ProductID  uint    `gorm:"index;not null" json:"product_id"`
	Amount     float64 `gorm:"not null" json:"amount"`
	Percentage float64 `gorm:"not null" json:"percentage"` // 0..100
}

type PasswordResetToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // uuid
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
