package notify

import (
	"context"
	"fmt"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository"
	"drivehub-backend/internal/service"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridNotifier emails the counterparty of a rental event. Recipients are
// resolved through the contact directory; missing contacts and delivery
// failures are logged and swallowed, notifications never fail the operation
// that triggered them.
type SendGridNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
	contacts  repository.ContactRepository
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string, contacts repository.ContactRepository) *SendGridNotifier {
	return &SendGridNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		contacts:  contacts,
	}
}

var _ service.Notifier = (*SendGridNotifier)(nil)

func (n *SendGridNotifier) BookingCreated(ctx context.Context, rt *domain.Rental) error {
	subject := "New booking request"
	body := fmt.Sprintf("A customer requested car %d from %s to %s. Total: %d cents.",
		rt.CarID, rt.StartDate.Format(domain.DateLayout), rt.EndDate.Format(domain.DateLayout), rt.TotalAmountCents)
	return n.send(ctx, domain.RoleShop, rt.ShopID, subject, body)
}

func (n *SendGridNotifier) RentalStatusChanged(ctx context.Context, rt *domain.Rental, from, to domain.RentalStatus) error {
	subject := fmt.Sprintf("Rental %d is now %s", rt.ID, to)
	body := fmt.Sprintf("Rental %d for car %d moved from %s to %s.", rt.ID, rt.CarID, from, to)
	// Status changes are pushed to the customer; shops drive most of them.
	return n.send(ctx, domain.RoleCustomer, rt.CustomerID, subject, body)
}

func (n *SendGridNotifier) PaymentProofSubmitted(ctx context.Context, rt *domain.Rental) error {
	subject := fmt.Sprintf("Payment proof for rental %d", rt.ID)
	body := fmt.Sprintf("The customer submitted payment proof for rental %d (%d cents). Please verify it.",
		rt.ID, rt.TotalAmountCents)
	return n.send(ctx, domain.RoleShop, rt.ShopID, subject, body)
}

func (n *SendGridNotifier) PaymentVerified(ctx context.Context, rt *domain.Rental, approved bool) error {
	var subject, body string
	if approved {
		subject = fmt.Sprintf("Payment accepted for rental %d", rt.ID)
		body = fmt.Sprintf("Your payment for rental %d was accepted and the booking is confirmed.", rt.ID)
	} else {
		subject = fmt.Sprintf("Payment rejected for rental %d", rt.ID)
		body = fmt.Sprintf("Your payment proof for rental %d was rejected. You can submit new proof.", rt.ID)
	}
	return n.send(ctx, domain.RoleCustomer, rt.CustomerID, subject, body)
}

func (n *SendGridNotifier) send(ctx context.Context, role domain.ActorRole, actorID int32, subject, body string) error {
	email, name, err := n.contacts.GetContact(ctx, role, actorID)
	if err != nil {
		logger.Warn("No contact for notification", "role", role, "actor_id", actorID, "error", err)
		return err
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		logger.Error("Failed to send notification email", "to", email, "error", err)
		return fmt.Errorf("send notification: %w", err)
	}
	if resp.StatusCode >= 400 {
		logger.Error("SendGrid rejected notification", "to", email, "status", resp.StatusCode)
		return fmt.Errorf("sendgrid error: status %d", resp.StatusCode)
	}
	return nil
}

// NoopNotifier is used when no SendGrid key is configured and in tests.
type NoopNotifier struct{}

var _ service.Notifier = NoopNotifier{}

func (NoopNotifier) BookingCreated(context.Context, *domain.Rental) error { return nil }
func (NoopNotifier) RentalStatusChanged(context.Context, *domain.Rental, domain.RentalStatus, domain.RentalStatus) error {
	return nil
}
func (NoopNotifier) PaymentProofSubmitted(context.Context, *domain.Rental) error { return nil }
func (NoopNotifier) PaymentVerified(context.Context, *domain.Rental, bool) error { return nil }
