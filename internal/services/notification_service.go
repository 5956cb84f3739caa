package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// Notifier delivers tenant-facing notifications. Delivery failures are
// reported to the caller, which logs them; a failed notification never
// fails the operation that triggered it.
type Notifier interface {
	ContractCreated(ctx context.Context, renter *models.Renter, contract *models.Contract) error
	ContractEnded(ctx context.Context, renter *models.Renter, contract *models.Contract) error
	PaymentReceived(ctx context.Context, renter *models.Renter, payment *models.Payment) error
	PaymentOverdue(ctx context.Context, renter *models.Renter, payment *models.Payment) error
}

// NotifierConfig is the delivery configuration for NotificationService.
type NotifierConfig struct {
	OrganizationName string
	FromEmail        string
	TwilioFromNumber string

	// SandboxMode asks SendGrid to validate but not deliver, and skips
	// SMS entirely.
	SandboxMode bool
}

// NotificationService sends email through SendGrid and, when the renter
// has a phone number on file, SMS through Twilio.
type NotificationService struct {
	cfg            NotifierConfig
	sendgridClient *sendgrid.Client
	twilioClient   *twilio.RestClient
}

func NewNotificationService(cfg NotifierConfig, sendgridClient *sendgrid.Client, twilioClient *twilio.RestClient) *NotificationService {
	return &NotificationService{
		cfg:            cfg,
		sendgridClient: sendgridClient,
		twilioClient:   twilioClient,
	}
}

func (s *NotificationService) ContractCreated(ctx context.Context, renter *models.Renter, contract *models.Contract) error {
	subject := s.cfg.OrganizationName + " - Your rental contract"
	body := fmt.Sprintf(
		"Hi %s, your rental contract is set up. It runs from %s to %s at %.2f per month.",
		renter.Name,
		contract.StartDate.Format("2006-01-02"),
		contract.EndDate.Format("2006-01-02"),
		contract.Amount,
	)
	return s.deliver(ctx, renter, subject, body)
}

func (s *NotificationService) ContractEnded(ctx context.Context, renter *models.Renter, contract *models.Contract) error {
	subject := s.cfg.OrganizationName + " - Contract ended"
	body := fmt.Sprintf("Hi %s, your rental contract has ended with status %s.", renter.Name, contract.Status)
	if contract.TerminationReason != nil {
		body += fmt.Sprintf(" Reason: %s.", *contract.TerminationReason)
	}
	return s.deliver(ctx, renter, subject, body)
}

func (s *NotificationService) PaymentReceived(ctx context.Context, renter *models.Renter, payment *models.Payment) error {
	subject := s.cfg.OrganizationName + " - Payment received"
	body := fmt.Sprintf("Hi %s, we received your payment of %.2f. Thank you.", renter.Name, payment.Amount)
	return s.deliver(ctx, renter, subject, body)
}

func (s *NotificationService) PaymentOverdue(ctx context.Context, renter *models.Renter, payment *models.Payment) error {
	subject := s.cfg.OrganizationName + " - Payment overdue"
	body := fmt.Sprintf(
		"Hi %s, your payment of %.2f was due on %s and is now overdue.",
		renter.Name,
		payment.Amount,
		payment.DueDate.Format("2006-01-02"),
	)
	return s.deliver(ctx, renter, subject, body)
}

func (s *NotificationService) deliver(ctx context.Context, renter *models.Renter, subject, body string) error {
	if err := s.sendEmail(renter, subject, body); err != nil {
		return err
	}
	if renter.Phone != "" && !s.cfg.SandboxMode {
		return s.sendSMS(renter.Phone, body)
	}
	return nil
}

func (s *NotificationService) sendEmail(renter *models.Renter, subject, body string) error {
	from := mail.NewEmail(s.cfg.OrganizationName, s.cfg.FromEmail)
	to := mail.NewEmail(renter.Name, renter.Email)
	message := mail.NewSingleEmail(from, subject, to, body, "<p>"+body+"</p>")

	if s.cfg.SandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	if _, err := s.sendgridClient.Send(message); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send %q email to %s via SendGrid", subject, renter.Email)
		return err
	}
	return nil
}

func (s *NotificationService) sendSMS(phone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(body)

	if _, err := s.twilioClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send SMS to %s via Twilio", phone)
		return err
	}
	return nil
}
