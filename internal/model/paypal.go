package model

type PaypalLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type PaypalAmount struct {
	Currency string `json:"currency_code"`
	Value    string `json:"value"`
}

type PaypalOrderResult struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Links  []PaypalLink `json:"links"`
}

type PaypalCapture struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	CreateTime string       `json:"create_time"`
	Final      bool         `json:"final_capture"`
	Amount     PaypalAmount `json:"amount"`
}

type PaypalPayments struct {
	Captures []PaypalCapture `json:"captures"`
}

type PaypalPurchaseUnit struct {
	ReferenceID string         `json:"reference_id"`
	Payments    PaypalPayments `json:"payments"`
}

type PaypalCaptureResult struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	PurchaseUnits []PaypalPurchaseUnit `json:"purchase_units"`
}
