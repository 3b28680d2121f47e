package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func NewOrderRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

// Create persists the order, its line-item snapshots and the initial
// status-history rows in one transaction.
func (or *Repository) Create(ctx context.Context, order *models.Order) (err error) {
	const op = "repository.order.Create"

	tx, err := or.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const orderQuery = `
		INSERT INTO orders (
			uuid, number, user_uuid,
			subtotal, shipping, tax, discount, total, currency,
			status, payment_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if _, err = tx.ExecContext(ctx, orderQuery,
		order.OrderUUID, order.Number, order.UserUUID,
		order.Subtotal, order.Shipping, order.Tax, order.Discount, order.Total, order.Currency,
		order.Status, order.PaymentStatus, order.CreatedAt, order.UpdatedAt,
	); err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: orders execute statement: %w", op, err)
	}

	const itemsQuery = `INSERT INTO order_items (order_uuid, product_uuid, name, sku, unit_price, quantity) VALUES %s`
	var values []interface{}
	var placeholders []string

	for i, item := range order.Items {
		values = append(values, order.OrderUUID, item.ProductUUID, item.Name, item.SKU, item.UnitPrice, item.Quantity)

		argId := i * 6

		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			argId+1, argId+2, argId+3, argId+4, argId+5, argId+6))
	}

	fullQuery := fmt.Sprintf(itemsQuery, strings.Join(placeholders, ","))

	if _, err = tx.ExecContext(ctx, fullQuery, values...); err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: order_items execute statement: %w", op, err)
	}

	for _, entry := range order.History {
		if err = insertHistory(ctx, tx, order.OrderUUID, entry); err != nil {
			or.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

// UpdateStatus writes the status fields, side timestamps and the latest
// history entry in one transaction, so a transition either fully commits
// or not at all.
func (or *Repository) UpdateStatus(ctx context.Context, order *models.Order) (err error) {
	const op = "repository.order.UpdateStatus"

	tx, err := or.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const updateQuery = `
		UPDATE orders
		SET status = $1, payment_status = $2,
			shipped_at = $3, delivered_at = $4, cancelled_at = $5,
			updated_at = $6
		WHERE uuid = $7`

	result, err := tx.ExecContext(ctx, updateQuery,
		order.Status, order.PaymentStatus,
		order.ShippedAt, order.DeliveredAt, order.CancelledAt,
		order.UpdatedAt, order.OrderUUID,
	)
	if err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrOrderNotFound
	}

	if err = insertHistory(ctx, tx, order.OrderUUID, order.LastHistoryEntry()); err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		or.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, orderUUID uuid.UUID, entry models.StatusHistoryEntry) error {
	const query = `INSERT INTO order_status_history (order_uuid, status, note, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := tx.ExecContext(ctx, query, orderUUID, entry.Status, entry.Note, entry.CreatedAt); err != nil {
		return fmt.Errorf("order_status_history insert: %w", err)
	}

	return nil
}

func (or *Repository) Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	const op = "repository.order.Order"

	const orderQuery = `
		SELECT uuid, number, user_uuid,
			subtotal, shipping, tax, discount, total, currency,
			status, payment_status,
			shipped_at, delivered_at, cancelled_at,
			created_at, updated_at
		FROM orders WHERE uuid = $1`

	row := or.db.QueryRowxContext(ctx, orderQuery, orderUUID)

	var order models.Order
	if err := row.Scan(
		&order.OrderUUID, &order.Number, &order.UserUUID,
		&order.Subtotal, &order.Shipping, &order.Tax, &order.Discount, &order.Total, &order.Currency,
		&order.Status, &order.PaymentStatus,
		&order.ShippedAt, &order.DeliveredAt, &order.CancelledAt,
		&order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		or.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan order: %w", op, err)
	}

	if err := or.loadItems(ctx, &order); err != nil {
		or.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := or.loadHistory(ctx, &order); err != nil {
		or.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &order, nil
}

func (or *Repository) OrdersByUser(ctx context.Context, userUUID uuid.UUID) ([]models.Order, error) {
	const op = "repository.order.OrdersByUser"

	const query = `
		SELECT uuid, number, user_uuid,
			subtotal, shipping, tax, discount, total, currency,
			status, payment_status,
			shipped_at, delivered_at, cancelled_at,
			created_at, updated_at
		FROM orders WHERE user_uuid = $1
		ORDER BY created_at DESC`

	rows, err := or.db.QueryxContext(ctx, query, userUUID)
	if err != nil {
		or.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err = rows.Scan(
			&order.OrderUUID, &order.Number, &order.UserUUID,
			&order.Subtotal, &order.Shipping, &order.Tax, &order.Discount, &order.Total, &order.Currency,
			&order.Status, &order.PaymentStatus,
			&order.ShippedAt, &order.DeliveredAt, &order.CancelledAt,
			&order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			or.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: scan order: %w", op, err)
		}
		orders = append(orders, order)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	for i := range orders {
		if err = or.loadItems(ctx, &orders[i]); err != nil {
			or.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return orders, nil
}

func (or *Repository) loadItems(ctx context.Context, order *models.Order) error {
	const query = `
		SELECT product_uuid, name, sku, unit_price, quantity
		FROM order_items WHERE order_uuid = $1`

	rows, err := or.db.QueryxContext(ctx, query, order.OrderUUID)
	if err != nil {
		return fmt.Errorf("order_items query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err = rows.Scan(&item.ProductUUID, &item.Name, &item.SKU, &item.UnitPrice, &item.Quantity); err != nil {
			return fmt.Errorf("order_items scan: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

func (or *Repository) loadHistory(ctx context.Context, order *models.Order) error {
	const query = `
		SELECT status, note, created_at
		FROM order_status_history WHERE order_uuid = $1
		ORDER BY id`

	rows, err := or.db.QueryxContext(ctx, query, order.OrderUUID)
	if err != nil {
		return fmt.Errorf("order_status_history query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.StatusHistoryEntry
		if err = rows.Scan(&entry.Status, &entry.Note, &entry.CreatedAt); err != nil {
			return fmt.Errorf("order_status_history scan: %w", err)
		}
		order.History = append(order.History, entry)
	}

	return rows.Err()
}
