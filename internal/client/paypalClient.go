package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"artmarket-backend/internal/config"
	"artmarket-backend/internal/model"

	"github.com/shopspring/decimal"
)

// PaypalClient wraps the three provider calls the settlement flow needs.
// It performs no retries; retry policy belongs to the caller.
type PaypalClient interface {
	GetAccessToken(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, amount float64, currency string) (*CreateOrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type CreateOrderResult struct {
	OrderID    string
	Status     string
	ApproveURL string
	Raw        json.RawMessage
}

type CaptureResult struct {
	CaptureID string
	Status    string
	PaidAt    time.Time
}

type paypalClientImpl struct {
	httpClient         *http.Client
	baseApiURL         string
	paypalClientID     string
	paypalClientSecret string
	serviceBaseURL     string
}

func NewPaypalClient(paypalCfg *config.Paypal, serviceBaseURL string) PaypalClient {
	return &paypalClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:         paypalCfg.BaseApiURL,
		paypalClientID:     paypalCfg.ClientID,
		paypalClientSecret: paypalCfg.ClientSecret,
		serviceBaseURL:     serviceBaseURL,
	}
}

func (c *paypalClientImpl) GetAccessToken(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.paypalClientID + ":" + c.paypalClientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ConnectError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	return res.AccessToken, nil
}

func (c *paypalClientImpl) CreateOrder(ctx context.Context, amount float64, currency string) (*CreateOrderResult, error) {
	accessToken, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get paypal access token: %w", err)
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": currency,
					"value":         decimal.NewFromFloat(amount).StringFixed(2),
				},
			},
		},
		"application_context": map[string]string{
			"return_url": fmt.Sprintf("%s/api/payments/success", c.serviceBaseURL),
			"cancel_url": c.serviceBaseURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v2/checkout/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result model.PaypalOrderResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode paypal response: %w", err)
	}

	return &CreateOrderResult{
		OrderID:    result.ID,
		Status:     result.Status,
		ApproveURL: extractApproveURL(result.Links),
		Raw:        json.RawMessage(respBody),
	}, nil
}

func (c *paypalClientImpl) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	accessToken, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get paypal access token: %w", err)
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseApiURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create capture request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &CaptureError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result model.PaypalCaptureResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode capture response: %w", err)
	}

	capture, err := firstCapture(&result)
	if err != nil {
		return nil, err
	}

	paidAt, err := time.Parse(time.RFC3339, capture.CreateTime)
	if err != nil {
		paidAt = time.Now().UTC()
	}

	return &CaptureResult{
		CaptureID: capture.ID,
		Status:    capture.Status,
		PaidAt:    paidAt,
	}, nil
}

func firstCapture(result *model.PaypalCaptureResult) (*model.PaypalCapture, error) {
	if len(result.PurchaseUnits) == 0 || len(result.PurchaseUnits[0].Payments.Captures) == 0 {
		return nil, fmt.Errorf("capture response has no captures for order %s", result.ID)
	}
	return &result.PurchaseUnits[0].Payments.Captures[0], nil
}

func extractApproveURL(links []model.PaypalLink) string {
	for _, link := range links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
