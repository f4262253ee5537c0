package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/repository"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
)

const orderColumns = `id, number, client_name, client_cpf, client_email, status, notes,
	items_json, total_area, total_value_cents, version, created_at, updated_at`

// OrderRepository implements repository.OrderRepository on top of a Store.
type OrderRepository struct {
	store *Store
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository creates a new SQLite-backed order repository.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Create inserts the order and assigns the next sequential number.
// The number is read and written inside one transaction under the write lock.
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", repository.ErrInvalidInput)
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("%w: encode items: %v", repository.ErrInvalidInput, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	var number int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM orders`,
	).Scan(&number); err != nil {
		return fmt.Errorf("%w: next order number: %v", repository.ErrTransactionFailed, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID.String(),
		number,
		order.ClientName,
		nullString(order.ClientCPF),
		nullString(order.ClientEmail),
		string(order.Status),
		nullString(order.Notes),
		string(itemsJSON),
		order.TotalArea,
		order.TotalValue.Cents,
		order.Version,
		formatTime(order.CreatedAt),
		formatTime(order.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return repository.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}

	order.Number = number
	return nil
}

// GetByID loads a single order.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row := r.store.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id.String())

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// Update writes the mutable fields of the order when its version matches the
// stored one, then bumps the version on both sides.
func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", repository.ErrInvalidInput)
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("%w: encode items: %v", repository.ErrInvalidInput, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	res, err := r.store.db.ExecContext(ctx,
		`UPDATE orders SET
			client_name = ?, client_cpf = ?, client_email = ?, status = ?, notes = ?,
			items_json = ?, total_area = ?, total_value_cents = ?,
			updated_at = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		order.ClientName,
		nullString(order.ClientCPF),
		nullString(order.ClientEmail),
		string(order.Status),
		nullString(order.Notes),
		string(itemsJSON),
		order.TotalArea,
		order.TotalValue.Cents,
		formatTime(order.UpdatedAt),
		order.ID.String(),
		order.Version,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if affected == 0 {
		var exists int
		err := r.store.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM orders WHERE id = ?`, order.ID.String()).Scan(&exists)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if exists == 0 {
			return repository.ErrOrderNotFound
		}
		return repository.ErrOptimisticLock
	}

	order.Version++
	return nil
}

// Delete removes the order.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	res, err := r.store.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if affected == 0 {
		return repository.ErrOrderNotFound
	}
	return nil
}

// List returns the orders matching the filter, highest number first.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	where, args := buildWhere(filter)

	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY number DESC`
	switch {
	case filter.Limit > 0:
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, max(filter.Offset, 0))
	case filter.Offset > 0:
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, filter.Offset)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Count returns how many orders match the filter, ignoring pagination.
func (r *OrderRepository) Count(ctx context.Context, filter repository.OrderFilter) (int64, error) {
	where, args := buildWhere(filter)

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var total int64
	if err := r.store.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM orders`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

// likeEscaper escapes the LIKE wildcards so a client filter matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func buildWhere(filter repository.OrderFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.Status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if name := strings.TrimSpace(filter.ClientName); name != "" {
		clauses = append(clauses, `LOWER(client_name) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(name))+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(s rowScanner) (*entity.Order, error) {
	var (
		id, status, itemsJSON string
		createdAt, updatedAt  string
		cpf, email, notes     sql.NullString
		cents                 int64
		order                 entity.Order
	)

	err := s.Scan(
		&id,
		&order.Number,
		&order.ClientName,
		&cpf,
		&email,
		&status,
		&notes,
		&itemsJSON,
		&order.TotalArea,
		&cents,
		&order.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if order.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse order id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", id, err)
	}
	if order.Items == nil {
		order.Items = make([]entity.ProductionItem, 0)
	}
	if order.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if order.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatus(status)
	order.ClientCPF = cpf.String
	order.ClientEmail = email.String
	order.Notes = notes.String
	order.TotalValue = valueobject.NewMoneyFromCents(cents)

	return &order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
