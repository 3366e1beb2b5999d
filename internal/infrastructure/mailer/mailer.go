package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/muna8646/airtisan/config"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

// CreateMailer returns nil when SMTP is not configured.
func CreateMailer(config *config.Config) *Mailer {
	if config.SMTPConfig.Host == "" {
		return nil
	}

	sender := config.SMTPConfig.Sender
	if sender == "" {
		sender = config.SMTPConfig.Username
	}

	return &Mailer{
		dialer: gomail.NewDialer(config.SMTPConfig.Host, config.SMTPConfig.Port, config.SMTPConfig.Username, config.SMTPConfig.Password),
		sender: sender,
	}
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, to string, order dto.OrderPlacedEvent) error {
	msg := BuildOrderConfirmation(m.sender, to, order)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SendOrderConfirmation").Str("order_id", order.OrderID).Msg("")
		return fmt.Errorf("sending order confirmation: %w", err)
	}

	return nil
}

func BuildOrderConfirmation(from, to string, order dto.OrderPlacedEvent) *gomail.Message {
	var body strings.Builder
	body.WriteString("<h1>Thank you for your order!</h1>")
	fmt.Fprintf(&body, "<p>Order <b>%s</b> is pending.</p><ul>", order.OrderID)
	for _, item := range order.Items {
		fmt.Fprintf(&body, "<li>%d x %s @ %.2f</li>", item.Quantity, item.ProductID, item.Price)
	}
	fmt.Fprintf(&body, "</ul><p>Total: <b>%.2f</b></p>", order.Total)

	msg := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your order %s", order.OrderID))
	msg.SetBody("text/html", body.String())

	return msg
}
