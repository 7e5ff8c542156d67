package model

import "errors"

var (
	// Checkout validation failures, surfaced to the caller with no side effects.
	ErrProductNotFound   = errors.New("product not found")
	ErrProductSoldOut    = errors.New("product sold out")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrCommissionNotFound = errors.New("commission not found")
)
