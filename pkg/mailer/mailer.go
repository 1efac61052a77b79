package mailer

import "context"

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Content  []byte
	MimeType string
	Filename string
}

// Mailer is the narrow delivery contract consumed by the issuance workflow.
// Delivery failures are opaque beyond the returned error; retry semantics
// belong to the relay, not to this service.
type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, htmlBody string, attachments []Attachment) error
}
