package usecase

import (
	"context"
	"sync"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/mailer"
)

// fakeTicketRepo is an in-memory TicketRepository with the same linearization
// guarantees as the real store: the mutex makes MarkRedeemed an atomic
// check-then-set, so concurrent redeems race exactly like the conditional
// UPDATE does.
type fakeTicketRepo struct {
	mu    sync.Mutex
	byUID map[string]*entity.Ticket

	existsErr error
	createErr error
	markErr   error

	existsCalls int
	createCalls int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{byUID: make(map[string]*entity.Ticket)}
}

func (f *fakeTicketRepo) ExistsByPaymentRef(ctx context.Context, paymentRef string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, t := range f.byUID {
		if t.PaymentRef == paymentRef {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, t := range f.byUID {
		if t.PaymentRef == ticket.PaymentRef {
			return nil, repository.ErrDuplicatePaymentRef
		}
	}
	saved := *ticket
	f.byUID[saved.TicketUID] = &saved
	copied := saved
	return &copied, nil
}

func (f *fakeTicketRepo) FindByUID(ctx context.Context, ticketUID string) (*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byUID[ticketUID]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTicketRepo) MarkRedeemed(ctx context.Context, ticketUID string) (repository.RedemptionOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return repository.RedemptionNotFound, f.markErr
	}
	t, ok := f.byUID[ticketUID]
	if !ok {
		return repository.RedemptionNotFound, nil
	}
	if t.Redeemed {
		return repository.RedemptionAlreadyRedeemed, nil
	}
	t.Redeemed = true
	return repository.RedemptionRedeemed, nil
}

// fakeRenderer records rendered payloads.
type fakeRenderer struct {
	mu       sync.Mutex
	payloads []string
	err      error
}

func (f *fakeRenderer) Render(payload string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.payloads = append(f.payloads, payload)
	return []byte("fake-png-" + payload), nil
}

type sentMail struct {
	to          string
	subject     string
	body        string
	attachments []mailer.Attachment
}

// fakeMailer records sent messages and can be told to fail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, toEmail, toName, subject, htmlBody string, attachments []mailer.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: toEmail, subject: subject, body: htmlBody, attachments: attachments})
	return nil
}

// blockingMailer simulates a hung mail relay: it never completes on its own
// and only returns once the send context is cancelled.
type blockingMailer struct{}

func (b *blockingMailer) Send(ctx context.Context, toEmail, toName, subject, htmlBody string, attachments []mailer.Attachment) error {
	<-ctx.Done()
	return ctx.Err()
}
