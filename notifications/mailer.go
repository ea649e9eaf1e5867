// Package notifications sends transactional email. Sends are best-effort:
// callers fire them on a goroutine and a failure is logged, never
// propagated back to the request that triggered it.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
)

const sendTimeout = 15 * time.Second

type Mailer struct {
	mg      *mailgun.MailgunImpl
	from    string
	baseURL string
}

func NewMailer(domain, apiKey, from, baseURL string) *Mailer {
	return &Mailer{
		mg:      mailgun.NewMailgun(domain, apiKey),
		from:    from,
		baseURL: baseURL,
	}
}

// Enabled reports whether mail credentials were configured at all. With
// no credentials every send becomes a logged no-op.
func (m *Mailer) Enabled() bool {
	return m.mg.Domain() != "" && m.mg.APIKey() != ""
}

// SendOrderPaid emails the payment confirmation for an order.
func (m *Mailer) SendOrderPaid(order models.Order, user models.User) {
	subject := fmt.Sprintf("Order Paid: %s", order.ID.Hex())
	to := fmt.Sprintf("%s <%s>", user.Name, user.Email)
	m.send(to, subject, orderPaidBody(order, user))
}

// SendPasswordReset emails the reset link for a forgot-password request.
func (m *Mailer) SendPasswordReset(user models.User, token string) {
	link := fmt.Sprintf("%s/reset-password/%s", m.baseURL, token)
	body := fmt.Sprintf(`<h3>Password Reset Request</h3>
<p>Click the link below to reset your password:</p>
<a href="%s">%s</a>
<p>This link will expire in 3 hours.</p>`, link, link)
	m.send(user.Email, "Reset your Medicure password", body)
}

func (m *Mailer) send(to, subject, html string) {
	if !m.Enabled() {
		slog.Info("mail disabled, skipping send", "to", to, "subject", subject)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	msg := m.mg.NewMessage(m.from, subject, "", to)
	msg.SetHtml(html)
	if _, _, err := m.mg.Send(ctx, msg); err != nil {
		slog.Error("mail send failed", "to", to, "subject", subject, "error", err)
		return
	}
	slog.Info("mail sent", "to", to, "subject", subject)
}

func orderPaidBody(order models.Order, user models.User) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, `<tr>
<td>%s</td>
<td align="center">%d</td>
<td align="right">$%.2f</td>
</tr>
`, item.Name, item.Quantity, item.Price)
	}
	return fmt.Sprintf(`<h1>Thanks for shopping with us</h1>
<p>Hi %s,</p>
<p>We have finished processing your order.</p>
<h2>[Order %s] (%s)</h2>
<table>
<thead>
<tr><td><strong>Product</strong></td><td><strong>Quantity</strong></td><td><strong>Price</strong></td></tr>
</thead>
<tbody>
%s</tbody>
<tfoot>
<tr><td colspan="2">Items Price:</td><td align="right">$%.2f</td></tr>
<tr><td colspan="2">Shipping Price:</td><td align="right">$%.2f</td></tr>
<tr><td colspan="2">Discount:</td><td align="right">-$%.2f</td></tr>
<tr><td colspan="2"><strong>Total Price:</strong></td><td align="right"><strong>$%.2f</strong></td></tr>
<tr><td colspan="2">Payment Method:</td><td align="right">%s</td></tr>
</tfoot>
</table>
<h2>Shipping address</h2>
<p>%s,<br/>%s,<br/>%s,<br/>%s,<br/>%s</p>
<hr/>
<p>Thanks for shopping with us.</p>`,
		user.Name,
		order.ID.Hex(),
		order.CreatedAt.Format("2006-01-02"),
		rows.String(),
		order.ItemsPrice,
		order.ShippingPrice,
		order.DiscountPrice,
		order.TotalPrice,
		order.PaymentMethod,
		order.ShippingAddress.FullName,
		order.ShippingAddress.Address,
		order.ShippingAddress.City,
		order.ShippingAddress.Country,
		order.ShippingAddress.PostalCode,
	)
}
