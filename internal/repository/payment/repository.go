package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func NewPaymentRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

func (pr *Repository) Create(ctx context.Context, payment *models.Payment) (err error) {
	const op = "repository.payment.Create"

	tx, err := pr.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		pr.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const query = `
		INSERT INTO payments (
			uuid, order_uuid, status, method, provider,
			amount, currency, provider_transaction_id,
			refunded_amount, refund_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err = tx.ExecContext(ctx, query,
		payment.PaymentUUID, payment.OrderUUID, payment.Status, payment.Method, payment.Provider,
		payment.Amount, payment.Currency, payment.ProviderTransactionID,
		payment.RefundedAmount, payment.RefundReason, payment.CreatedAt, payment.UpdatedAt,
	); err != nil {
		pr.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: payments execute statement: %w", op, err)
	}

	for _, entry := range payment.History {
		if err = insertHistory(ctx, tx, payment.PaymentUUID, entry); err != nil {
			pr.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		pr.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

// Update writes the mutable payment fields and the latest history entry in
// one transaction.
func (pr *Repository) Update(ctx context.Context, payment *models.Payment) (err error) {
	const op = "repository.payment.Update"

	tx, err := pr.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		pr.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const query = `
		UPDATE payments
		SET status = $1, provider_transaction_id = $2,
			refunded_amount = $3, refund_reason = $4, updated_at = $5
		WHERE uuid = $6`

	result, err := tx.ExecContext(ctx, query,
		payment.Status, payment.ProviderTransactionID,
		payment.RefundedAmount, payment.RefundReason, payment.UpdatedAt,
		payment.PaymentUUID,
	)
	if err != nil {
		pr.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrPaymentNotFound
	}

	if err = insertHistory(ctx, tx, payment.PaymentUUID, payment.LastHistoryEntry()); err != nil {
		pr.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		pr.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, paymentUUID uuid.UUID, entry models.StatusHistoryEntry) error {
	const query = `INSERT INTO payment_status_history (payment_uuid, status, note, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := tx.ExecContext(ctx, query, paymentUUID, entry.Status, entry.Note, entry.CreatedAt); err != nil {
		return fmt.Errorf("payment_status_history insert: %w", err)
	}

	return nil
}

func (pr *Repository) Payment(ctx context.Context, paymentUUID uuid.UUID) (*models.Payment, error) {
	const op = "repository.payment.Payment"

	const query = paymentSelect + ` WHERE uuid = $1`

	return pr.scanOne(ctx, op, query, paymentUUID)
}

// PaymentByProviderTransaction resolves the payment a gateway webhook
// refers to.
func (pr *Repository) PaymentByProviderTransaction(ctx context.Context, transactionID string) (*models.Payment, error) {
	const op = "repository.payment.PaymentByProviderTransaction"

	const query = paymentSelect + ` WHERE provider_transaction_id = $1`

	return pr.scanOne(ctx, op, query, transactionID)
}

const paymentSelect = `
	SELECT uuid, order_uuid, status, method, provider,
		amount, currency, provider_transaction_id,
		refunded_amount, refund_reason, created_at, updated_at
	FROM payments`

func (pr *Repository) scanOne(ctx context.Context, op, query string, arg interface{}) (*models.Payment, error) {
	row := pr.db.QueryRowxContext(ctx, query, arg)

	var payment models.Payment
	if err := row.Scan(
		&payment.PaymentUUID, &payment.OrderUUID, &payment.Status, &payment.Method, &payment.Provider,
		&payment.Amount, &payment.Currency, &payment.ProviderTransactionID,
		&payment.RefundedAmount, &payment.RefundReason, &payment.CreatedAt, &payment.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrPaymentNotFound
		}
		pr.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan payment: %w", op, err)
	}

	if err := pr.loadHistory(ctx, &payment); err != nil {
		pr.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &payment, nil
}

func (pr *Repository) loadHistory(ctx context.Context, payment *models.Payment) error {
	const query = `
		SELECT status, note, created_at
		FROM payment_status_history WHERE payment_uuid = $1
		ORDER BY id`

	rows, err := pr.db.QueryxContext(ctx, query, payment.PaymentUUID)
	if err != nil {
		return fmt.Errorf("payment_status_history query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.StatusHistoryEntry
		if err = rows.Scan(&entry.Status, &entry.Note, &entry.CreatedAt); err != nil {
			return fmt.Errorf("payment_status_history scan: %w", err)
		}
		payment.History = append(payment.History, entry)
	}

	return rows.Err()
}
