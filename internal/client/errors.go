package client

import "fmt"

// AuthError is a non-2xx response from the provider's token endpoint.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("paypal token exchange failed: status=%d body=%s", e.StatusCode, e.Body)
}

// RequestError is a non-2xx response from the provider's create-order endpoint.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("paypal create order failed: status=%d body=%s", e.StatusCode, e.Body)
}

// CaptureError is a non-2xx response from the provider's capture endpoint.
type CaptureError struct {
	StatusCode int
	Body       string
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("paypal capture failed: status=%d body=%s", e.StatusCode, e.Body)
}

// ConnectError wraps a transport-level failure reaching the provider.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("paypal connection failed: %v", e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }
