package repository

import (
	"context"
	"errors"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicatePaymentRef is returned when an insert collides with the unique
// index on payment_ref. The pre-check in the service is a fast path only; this
// constraint violation is the authoritative duplicate signal.
var ErrDuplicatePaymentRef = errors.New("payment reference already registered")

// RedemptionOutcome is the tri-state result of the conditional redeemed update.
type RedemptionOutcome int

const (
	RedemptionNotFound RedemptionOutcome = iota
	RedemptionAlreadyRedeemed
	RedemptionRedeemed
)

type TicketRepository interface {
	ExistsByPaymentRef(ctx context.Context, paymentRef string) (bool, error)
	Create(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error)
	FindByUID(ctx context.Context, ticketUID string) (*entity.Ticket, error)
	MarkRedeemed(ctx context.Context, ticketUID string) (RedemptionOutcome, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) ExistsByPaymentRef(ctx context.Context, paymentRef string) (bool, error) {
	query := `SELECT 1 FROM tickets WHERE payment_ref = $1 LIMIT 1`

	var one int
	err := r.db.QueryRow(ctx, query, paymentRef).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to check payment reference",
			zap.Error(err),
			zap.String("payment_ref", paymentRef),
		)
		return false, fmt.Errorf("check payment reference %s: %w", paymentRef, err)
	}

	return true, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error) {
	query := `
		INSERT INTO tickets (ticket_uid, name, mobile, email, payment_ref, ticket_class, quantity, redeemed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ticket_uid, name, mobile, email, payment_ref, ticket_class, quantity, redeemed, created_at
	`

	var saved entity.Ticket
	err := r.db.QueryRow(ctx, query,
		ticket.TicketUID,
		ticket.Name,
		ticket.Mobile,
		ticket.Email,
		ticket.PaymentRef,
		ticket.TicketClass,
		ticket.Quantity,
		ticket.Redeemed,
		ticket.CreatedAt,
	).Scan(
		&saved.TicketUID,
		&saved.Name,
		&saved.Mobile,
		&saved.Email,
		&saved.PaymentRef,
		&saved.TicketClass,
		&saved.Quantity,
		&saved.Redeemed,
		&saved.CreatedAt,
	)

	if err != nil {
		if isPaymentRefViolation(err) {
			r.log.Warn("Duplicate payment reference on insert",
				zap.String("payment_ref", ticket.PaymentRef),
			)
			return nil, ErrDuplicatePaymentRef
		}
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("ticket_uid", ticket.TicketUID),
			zap.String("payment_ref", ticket.PaymentRef),
		)
		return nil, fmt.Errorf("create ticket %s: %w", ticket.TicketUID, err)
	}

	return &saved, nil
}

func (r *ticketRepository) FindByUID(ctx context.Context, ticketUID string) (*entity.Ticket, error) {
	query := `
		SELECT ticket_uid, name, mobile, email, payment_ref, ticket_class, quantity, redeemed, created_at
		FROM tickets
		WHERE ticket_uid = $1
	`

	var ticket entity.Ticket
	err := r.db.QueryRow(ctx, query, ticketUID).Scan(
		&ticket.TicketUID,
		&ticket.Name,
		&ticket.Mobile,
		&ticket.Email,
		&ticket.PaymentRef,
		&ticket.TicketClass,
		&ticket.Quantity,
		&ticket.Redeemed,
		&ticket.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by UID",
			zap.Error(err),
			zap.String("ticket_uid", ticketUID),
		)
		return nil, fmt.Errorf("find ticket by UID %s: %w", ticketUID, err)
	}

	return &ticket, nil
}

// MarkRedeemed performs the one-time false→true flip as a single conditional
// update. The WHERE clause is the serialization point: under concurrent scans
// of the same UID exactly one caller gets RowsAffected == 1.
func (r *ticketRepository) MarkRedeemed(ctx context.Context, ticketUID string) (RedemptionOutcome, error) {
	query := `UPDATE tickets SET redeemed = TRUE WHERE ticket_uid = $1 AND redeemed = FALSE`

	tag, err := r.db.Exec(ctx, query, ticketUID)
	if err != nil {
		r.log.Error("Failed to mark ticket redeemed",
			zap.Error(err),
			zap.String("ticket_uid", ticketUID),
		)
		return RedemptionNotFound, fmt.Errorf("mark ticket %s redeemed: %w", ticketUID, err)
	}

	if tag.RowsAffected() == 1 {
		return RedemptionRedeemed, nil
	}

	// No row flipped: either the ticket does not exist or it was already
	// redeemed, possibly by a concurrent scan that won the update.
	var redeemed bool
	err = r.db.QueryRow(ctx, `SELECT redeemed FROM tickets WHERE ticket_uid = $1`, ticketUID).Scan(&redeemed)
	if err == pgx.ErrNoRows {
		return RedemptionNotFound, nil
	}
	if err != nil {
		r.log.Error("Failed to check ticket after redemption miss",
			zap.Error(err),
			zap.String("ticket_uid", ticketUID),
		)
		return RedemptionNotFound, fmt.Errorf("check ticket %s after redemption miss: %w", ticketUID, err)
	}

	return RedemptionAlreadyRedeemed, nil
}

// paymentRefConstraint is the unique constraint on tickets.payment_ref
// (Postgres default name for an inline UNIQUE column constraint).
const paymentRefConstraint = "tickets_payment_ref_key"

// isPaymentRefViolation reports whether err is a unique violation (SQLSTATE
// 23505) on the payment_ref constraint specifically. A collision on any other
// constraint, such as the ticket_uid primary key, is not a client duplicate
// and surfaces as a server error.
func isPaymentRefViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == paymentRefConstraint
}
