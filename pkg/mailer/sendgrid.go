package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"event-ticketing/pkg/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendGridMailer struct {
	client *sendgrid.Client
	sender *mail.Email
	log    *zap.Logger
}

// NewSendGridMailer builds a Mailer over the SendGrid v3 mail send API.
func NewSendGridMailer(config utils.MailConfig, log *zap.Logger) Mailer {
	return &sendGridMailer{
		client: sendgrid.NewSendClient(config.SendGridAPIKey),
		sender: mail.NewEmail(config.SenderName, config.SenderEmail),
		log:    log.With(zap.String("mailer", "sendgrid")),
	}
}

func (m *sendGridMailer) Send(ctx context.Context, toEmail, toName, subject, htmlBody string, attachments []Attachment) error {
	message := mail.NewV3Mail()
	message.SetFrom(m.sender)
	message.Subject = subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(toName, toEmail))
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/html", htmlBody))

	for _, att := range attachments {
		attachment := mail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString(att.Content))
		attachment.SetType(att.MimeType)
		attachment.SetFilename(att.Filename)
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.log.Error("SendGrid request failed",
			zap.Error(err),
			zap.String("to", toEmail),
		)
		return fmt.Errorf("send mail to %s: %w", toEmail, err)
	}

	if resp.StatusCode >= 400 {
		m.log.Error("SendGrid rejected message",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", resp.Body),
			zap.String("to", toEmail),
		)
		return fmt.Errorf("send mail to %s: sendgrid status %d", toEmail, resp.StatusCode)
	}

	m.log.Info("Email sent",
		zap.String("to", toEmail),
		zap.Int("status_code", resp.StatusCode),
	)

	return nil
}
