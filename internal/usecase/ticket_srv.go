package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/mailer"
	"event-ticketing/pkg/qr"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest is returned when the registration request fails
	// field validation, before any store access.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTicketNotFound is returned by lookups for unknown ticket UIDs.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrRenderFailed means the ticket row was committed but the QR code
	// could not be rendered, so no delivery was attempted.
	ErrRenderFailed = errors.New("ticket issued but QR render failed")

	// ErrNotificationFailed means the ticket row was committed but the email
	// could not be delivered. The ticket stays valid; there is no rollback.
	ErrNotificationFailed = errors.New("ticket issued but email delivery failed")
)

// defaultMailTimeout bounds the outbound SendGrid call so a hung relay cannot
// pin the issuance handler after the row is committed.
const defaultMailTimeout = 20 * time.Second

type TicketService interface {
	IssueTicket(ctx context.Context, req *request.CreateTicketRequest) (*response.TicketResponse, error)
	GetTicketByUID(ctx context.Context, ticketUID string) (*response.TicketResponse, error)
}

type ticketService struct {
	tickets     repository.TicketRepository
	renderer    qr.Renderer
	mail        mailer.Mailer
	event       utils.EventConfig
	mailTimeout time.Duration
	log         *zap.Logger
}

func NewTicketService(tickets repository.TicketRepository, renderer qr.Renderer, mail mailer.Mailer, event utils.EventConfig, log *zap.Logger) TicketService {
	return &ticketService{
		tickets:     tickets,
		renderer:    renderer,
		mail:        mail,
		event:       event,
		mailTimeout: defaultMailTimeout,
		log:         log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) IssueTicket(ctx context.Context, req *request.CreateTicketRequest) (*response.TicketResponse, error) {
	// Validate request before any store access
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Issue ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	// Duplicate pre-check on the payment reference. Fast path only: the
	// unique index catches whatever slips through under concurrency.
	exists, err := s.tickets.ExistsByPaymentRef(ctx, req.PaymentRef)
	if err != nil {
		return nil, fmt.Errorf("check payment reference: %w", err)
	}
	if exists {
		s.log.Info("Payment reference already registered",
			zap.String("payment_ref", req.PaymentRef),
		)
		return nil, repository.ErrDuplicatePaymentRef
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	ticket := &entity.Ticket{
		TicketUID:   utils.NewTicketUID(),
		Name:        strings.TrimSpace(req.Name),
		Mobile:      strings.TrimSpace(req.Mobile),
		Email:       strings.TrimSpace(req.Email),
		PaymentRef:  strings.TrimSpace(req.PaymentRef),
		TicketClass: entity.TicketClass(req.TicketClass),
		Quantity:    quantity,
		Redeemed:    false,
		CreatedAt:   time.Now(),
	}

	// Insert. A duplicate here means we lost the race against the pre-check;
	// the conflict is on payment_ref, not the UID, so no retry with a new UID.
	saved, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePaymentRef) {
			return nil, err
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.log.Info("Ticket issued",
		zap.String("ticket_uid", saved.TicketUID),
		zap.String("email", saved.Email),
		zap.String("ticket_class", string(saved.TicketClass)),
		zap.Int("quantity", saved.Quantity),
	)

	// Render QR with the ticket UID as payload. The row is already committed,
	// but no delivery was attempted yet, so this fails distinctly from a
	// delivery failure.
	qrPNG, err := s.renderer.Render(saved.TicketUID)
	if err != nil {
		s.log.Error("Failed to render QR code",
			zap.Error(err),
			zap.String("ticket_uid", saved.TicketUID),
		)
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	// Send the ticket email. The row is already committed: a delivery failure
	// surfaces as a server error but never rolls back the insert.
	if err := s.sendTicketEmail(ctx, saved, qrPNG); err != nil {
		s.log.Error("Failed to send ticket email",
			zap.Error(err),
			zap.String("ticket_uid", saved.TicketUID),
			zap.String("email", saved.Email),
		)
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	return response.TicketToResponse(saved), nil
}

func (s *ticketService) GetTicketByUID(ctx context.Context, ticketUID string) (*response.TicketResponse, error) {
	ticket, err := s.tickets.FindByUID(ctx, ticketUID)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	return response.TicketToResponse(ticket), nil
}

func (s *ticketService) sendTicketEmail(ctx context.Context, ticket *entity.Ticket, qrPNG []byte) error {
	subject := fmt.Sprintf("Your Ticket for %s", s.event.Name)
	body := s.buildTicketEmailBody(ticket)

	attachments := []mailer.Attachment{
		{
			Content:  qrPNG,
			MimeType: "image/png",
			Filename: fmt.Sprintf("ticket_%s.png", ticket.TicketUID),
		},
	}

	// Banner is decorative: a missing or unreadable file degrades the email
	// but never aborts issuance.
	if s.event.BannerFile != "" {
		banner, err := os.ReadFile(s.event.BannerFile)
		if err != nil {
			s.log.Warn("Failed to load event banner",
				zap.Error(err),
				zap.String("banner_file", s.event.BannerFile),
			)
		} else {
			attachments = append(attachments, mailer.Attachment{
				Content:  banner,
				MimeType: "image/png",
				Filename: "event_banner.png",
			})
		}
	}

	// Bounded deadline: SendGrid is a network collaborator and must not be
	// able to hold the issuance request open past the timeout.
	sendCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()

	return s.mail.Send(sendCtx, ticket.Email, ticket.Name, subject, body, attachments)
}

func (s *ticketService) buildTicketEmailBody(ticket *entity.Ticket) string {
	classLabel := titleCase(string(ticket.TicketClass))

	return fmt.Sprintf(`
<html>
  <body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
    <div style="max-width: 600px; margin: auto; background: white; border-radius: 10px; overflow: hidden;">
      <div style="padding: 25px;">
        <h2 style="color: #333; text-align:center;">Your Ticket is Confirmed</h2>
        <p style="font-size: 16px; color: #555;">
          Hi <strong>%s</strong>,<br><br>
          Your ticket has been successfully booked for <strong>%s</strong>!
        </p>
        <h3 style="color: #333; margin-top:30px;">Ticket Details</h3>
        <table style="width:100%%; border-collapse: collapse;">
          <tr><td style="padding: 8px; font-weight:bold;">Ticket ID:</td><td>%s</td></tr>
          <tr><td style="padding: 8px; font-weight:bold;">Ticket Class:</td><td>%s</td></tr>
          <tr><td style="padding: 8px; font-weight:bold;">Number of Admissions:</td><td>%d</td></tr>
          <tr><td style="padding: 8px; font-weight:bold;">Name:</td><td>%s</td></tr>
          <tr><td style="padding: 8px; font-weight:bold;">Mobile:</td><td>%s</td></tr>
          <tr><td style="padding: 8px; font-weight:bold;">Payment Reference:</td><td>%s</td></tr>
          <tr><td style="padding: 8px; font-weight:bold;">Venue:</td><td>%s</td></tr>
          <tr><td style="padding: 8px; font-weight:bold;">Date &amp; Time:</td><td>%s</td></tr>
        </table>
        <p style="font-size: 15px; color: #444; margin-top: 25px;">
          Your ticket QR code is attached to this email.
          <br>Please show the QR code at the entry gate and do <strong>not</strong> share it with anyone.
        </p>
        <p style="font-size: 16px; margin-top: 25px;">See you there!</p>
      </div>
    </div>
  </body>
</html>
`,
		ticket.Name,
		s.event.Name,
		ticket.TicketUID,
		classLabel,
		ticket.Quantity,
		ticket.Name,
		ticket.Mobile,
		ticket.PaymentRef,
		s.event.Venue,
		s.event.Date,
	)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
