// Package notification delivers best-effort customer notifications over
// email and WhatsApp. Delivery failures are logged and swallowed so a
// dead SMTP server can never block a loan operation.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goldfin/backend/internal/application/lending"
	infraconfig "github.com/goldfin/backend/internal/infrastructure/config"
)

// CustomerNotifier fans a notice out to every configured channel.
type CustomerNotifier struct {
	email    *EmailSender
	whatsapp *WhatsAppSender
	logger   *zap.Logger
}

var _ lending.Notifier = (*CustomerNotifier)(nil)

// NewCustomerNotifier builds a notifier from configuration. Disabled
// channels are simply left nil.
func NewCustomerNotifier(cfg infraconfig.NotificationConfig, logger *zap.Logger) *CustomerNotifier {
	n := &CustomerNotifier{logger: logger}
	if cfg.EmailEnabled {
		n.email = NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromAddress)
	}
	if cfg.WhatsAppEnabled {
		n.whatsapp = NewWhatsAppSender(cfg.WhatsAppEndpoint, cfg.WhatsAppToken)
	}
	return n
}

// LoanIssued notifies the customer that their loan has been disbursed.
func (n *CustomerNotifier) LoanIssued(ctx context.Context, notice lending.LoanNotice) {
	subject := fmt.Sprintf("Loan %s issued", notice.LoanNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour loan %s of ₹%s was issued on %s.\n\nThank you.",
		notice.CustomerName, notice.LoanNumber,
		notice.Amount.StringFixed(2), notice.Date.Format("02 Jan 2006"),
	)
	n.deliver(ctx, notice, subject, body)
}

// LoanClosed notifies the customer that their loan has been settled.
func (n *CustomerNotifier) LoanClosed(ctx context.Context, notice lending.LoanNotice) {
	subject := fmt.Sprintf("Loan %s closed", notice.LoanNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour loan %s was closed on %s with a settlement of ₹%s.\n\nThank you.",
		notice.CustomerName, notice.LoanNumber,
		notice.Date.Format("02 Jan 2006"), notice.Amount.StringFixed(2),
	)
	n.deliver(ctx, notice, subject, body)
}

func (n *CustomerNotifier) deliver(ctx context.Context, notice lending.LoanNotice, subject, body string) {
	if n.email != nil && notice.CustomerEmail != "" {
		if err := n.email.Send(notice.CustomerEmail, subject, body); err != nil {
			n.logger.Warn("Failed to send email notification",
				zap.String("loan_number", notice.LoanNumber),
				zap.Error(err),
			)
		}
	}
	if n.whatsapp != nil && notice.CustomerPhone != "" {
		if err := n.whatsapp.Send(ctx, notice.CustomerPhone, body); err != nil {
			n.logger.Warn("Failed to send whatsapp notification",
				zap.String("loan_number", notice.LoanNumber),
				zap.Error(err),
			)
		}
	}
}
