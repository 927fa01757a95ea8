package services

import (
	"fmt"

	"github.com/Annsgit/melbourneedu-backend/internal/config"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email through SendGrid. When no API key
// is configured the message is logged instead so flows keep working locally.
func SendEmail(to, subject, plainText, htmlContent string) bool {
	cfg := config.AppConfig
	if cfg.SendgridAPIKey == "" {
		logger.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("SendGrid not configured, skipping email send")
		return false
	}

	from := mail.NewEmail("Melbourne Education Guide", cfg.SendgridFromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		logger.Error().Err(err).Str("to", to).Msg("Failed to send email")
		return false
	}
	if response.StatusCode >= 400 {
		logger.Error().
			Int("status", response.StatusCode).
			Str("to", to).
			Msg("SendGrid rejected email")
		return false
	}

	return true
}

// SendConfirmationEmail sends the newsletter double-opt-in email
func SendConfirmationEmail(email, name, token string) bool {
	confirmURL := fmt.Sprintf("%s/api/subscriptions/confirm/%s", config.AppConfig.BaseURL, token)
	greeting := name
	if greeting == "" {
		greeting = "there"
	}

	subject := "Confirm Your Subscription to Melbourne Education Guide"

	text := fmt.Sprintf(`Hello %s,

Thank you for subscribing to Melbourne Education Guide updates. To confirm your subscription, please click on the link below:

%s

If you did not request this subscription, you can safely ignore this email.

Best regards,
The Melbourne Education Guide Team
`, greeting, confirmURL)

	html := fmt.Sprintf(`<h2>Confirm Your Subscription</h2>
<p>Hello %s,</p>
<p>Thank you for subscribing to Melbourne Education Guide updates. To confirm your subscription, please click the link below:</p>
<p><a href="%s">Confirm Subscription</a></p>
<p>If the button doesn't work, copy and paste this link into your browser:</p>
<p>%s</p>
<p>If you did not request this subscription, you can safely ignore this email.</p>`, greeting, confirmURL, confirmURL)

	return SendEmail(email, subject, text, html)
}

// SendReceiptEmail sends a purchase receipt after a successful checkout
func SendReceiptEmail(email, productName, transactionID string) bool {
	subject := "Thanks for your purchase from Melbourne Education Guide!"

	text := fmt.Sprintf(`Thank you for your purchase!

You purchased: %s
Your transaction ID: %s

If you have any questions, please don't hesitate to contact us.
`, productName, transactionID)

	html := fmt.Sprintf(`<h1>Thank you for your purchase!</h1>
<p>You purchased: %s</p>
<p>Your transaction ID: %s</p>
<p>If you have any questions, please don't hesitate to contact us.</p>`, productName, transactionID)

	return SendEmail(email, subject, text, html)
}
