package dto

type CheckoutItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CheckoutRequest struct {
	Amount float64         `json:"amount"`
	Items  []*CheckoutItem `json:"items"`
}

type CheckoutResponse struct {
	OrderID       uint   `json:"order_id"`
	PaypalOrderID string `json:"paypal_order_id"`
	ApproveURL    string `json:"approve_url,omitempty"`
	Status        string `json:"status"`
}

type ConfirmResponse struct {
	Message   string `json:"message"`
	PaymentID uint   `json:"payment_id,omitempty"`
	Status    string `json:"status"`
}

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        interface{} `json:"user"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type CreateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	IsDigital   bool    `json:"is_digital"`
	FileURL     string  `json:"file_url,omitempty"`
	Stock       int     `json:"stock"`
	CategoryID  uint    `json:"category_id"`
}

// ProductPatch is an explicit field mask for partial updates; nil means
// "leave unchanged".
type ProductPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	CategoryID  *uint    `json:"category_id,omitempty"`
	StatusID    *uint    `json:"status_id,omitempty"`
	FileURL     *string  `json:"file_url,omitempty"`
}

type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

type CreateCommissionRequest struct {
	ProductID  uint    `json:"product_id"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}
