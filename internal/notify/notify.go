package notify

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// EmailSender sends a single email message.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender sends a single text message.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// Dispatcher sends order notifications: a confirmation email to the
// customer, an alert email to the admin, and optionally an SMS. Every
// delivery failure is logged and swallowed; a placed order never fails
// because a message did not go out.
type Dispatcher struct {
	email      EmailSender
	sms        SMSSender
	adminEmail string
	siteName   string
	logger     *zap.Logger
}

// NewDispatcher creates a dispatcher. sms may be nil when no SMS
// provider is configured.
func NewDispatcher(email EmailSender, sms SMSSender, adminEmail, siteName string) *Dispatcher {
	return &Dispatcher{
		email:      email,
		sms:        sms,
		adminEmail: adminEmail,
		siteName:   siteName,
		logger:     util.GetLogger(),
	}
}

// NotifyOrderPlaced sends all configured notifications for an order.
func (d *Dispatcher) NotifyOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	d.logger.Info("Sending order notifications",
		zap.String("order_number", event.OrderNumber))

	if event.CustomerEmail != "" {
		subject := fmt.Sprintf("Order Confirmation - #%s", event.OrderNumber)
		body := fmt.Sprintf("Thank you for your order #%s. Total amount: $%s",
			event.OrderNumber, event.TotalPrice.StringFixed(2))
		if err := d.email.Send(ctx, event.CustomerEmail, subject, body); err != nil {
			util.NotificationsFailedTotal.WithLabelValues("customer_email").Inc()
			d.logger.Error("Failed to send customer email",
				zap.String("order_number", event.OrderNumber),
				zap.Error(err))
		}
	}

	if d.adminEmail != "" {
		subject := fmt.Sprintf("New Order Received - #%s", event.OrderNumber)
		body := fmt.Sprintf("New order #%s received from user %d. Total amount: $%s",
			event.OrderNumber, event.UserID, event.TotalPrice.StringFixed(2))
		if err := d.email.Send(ctx, d.adminEmail, subject, body); err != nil {
			util.NotificationsFailedTotal.WithLabelValues("admin_email").Inc()
			d.logger.Error("Failed to send admin email",
				zap.String("order_number", event.OrderNumber),
				zap.Error(err))
		}
	}

	if d.sms != nil && event.PhoneNumber != "" {
		message := fmt.Sprintf("%s: your order #%s for $%s has been received.",
			d.siteName, event.OrderNumber, event.TotalPrice.StringFixed(2))
		if err := d.sms.Send(ctx, event.PhoneNumber, message); err != nil {
			util.NotificationsFailedTotal.WithLabelValues("sms").Inc()
			d.logger.Error("Failed to send SMS",
				zap.String("order_number", event.OrderNumber),
				zap.Error(err))
		}
	}

	util.NotificationsSentTotal.Inc()
	return nil
}
