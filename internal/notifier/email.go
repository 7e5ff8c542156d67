package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"artmarket-backend/internal/config"
	"artmarket-backend/internal/model"

	"github.com/shopspring/decimal"
)

// Mailer sends best-effort emails. Callers must treat failures as
// non-fatal: a lost email never rolls back a settled payment.
type Mailer interface {
	NotifySale(ctx context.Context, sellerEmail, sellerName string, sale *model.SaleSummary) error
	SendPasswordReset(ctx context.Context, email, name, resetLink string) error
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.SMTP) Mailer {
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

var saleTemplate = template.Must(template.New("sale").Parse(`
<html>
<body>
	<h2>Congratulations {{.SellerName}}!</h2>
	<p>One of your products has been sold.</p>

	<h3>Sale details:</h3>
	<table border="1" style="border-collapse: collapse; width: 100%;">
		<tr><td><strong>Order number:</strong></td><td>#{{.Sale.OrderID}}</td></tr>
		<tr><td><strong>Sale date:</strong></td><td>{{.SaleDate}}</td></tr>
		<tr><td><strong>Buyer:</strong></td><td>{{.Sale.BuyerName}} ({{.Sale.BuyerEmail}})</td></tr>
		<tr><td><strong>Sale total:</strong></td><td>${{.Total}}</td></tr>
		<tr><td><strong>Payment method:</strong></td><td>{{.Sale.PaymentMethod}}</td></tr>
	</table>

	<h3>Items sold:</h3>
	<table border="1" style="border-collapse: collapse; width: 100%;">
		<tr><th>Product</th><th>Quantity</th><th>Unit price</th><th>Subtotal</th></tr>
		{{range .Items}}
		<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>${{.UnitPrice}}</td><td>${{.Subtotal}}</td></tr>
		{{end}}
	</table>

	<br>
	<p>Thanks for selling with us.</p>
	<p>Best regards,<br>The artmarket team</p>
</body>
</html>
`))

type saleItemView struct {
	Title     string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

func (m *smtpMailer) NotifySale(ctx context.Context, sellerEmail, sellerName string, sale *model.SaleSummary) error {
	items := make([]saleItemView, len(sale.Items))
	for i, item := range sale.Items {
		unit := decimal.NewFromFloat(item.UnitPrice)
		items[i] = saleItemView{
			Title:     item.ProductTitle,
			Quantity:  item.Quantity,
			UnitPrice: unit.StringFixed(2),
			Subtotal:  unit.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2),
		}
	}

	var body bytes.Buffer
	err := saleTemplate.Execute(&body, map[string]interface{}{
		"SellerName": sellerName,
		"Sale":       sale,
		"SaleDate":   sale.SaleDate.Format("2006-01-02 15:04:05"),
		"Total":      decimal.NewFromFloat(sale.TotalAmount).StringFixed(2),
		"Items":      items,
	})
	if err != nil {
		return fmt.Errorf("render sale email: %w", err)
	}

	subject := fmt.Sprintf("New sale! - Order #%d", sale.OrderID)
	return m.send(sellerEmail, subject, body.Bytes())
}

func (m *smtpMailer) SendPasswordReset(ctx context.Context, email, name, resetLink string) error {
	body := fmt.Sprintf(`
<html>
<body>
	<h2>Hello %s,</h2>
	<p>We received a request to reset your password.</p>
	<p><a href="%s">Reset your password</a></p>
	<p>The link expires in one hour. If you did not request this, ignore this email.</p>
</body>
</html>
`, template.HTMLEscapeString(name), template.HTMLEscapeString(resetLink))

	return m.send(email, "Password reset request", []byte(body))
}

func (m *smtpMailer) send(to, subject string, htmlBody []byte) error {
	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(htmlBody)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	return nil
}
