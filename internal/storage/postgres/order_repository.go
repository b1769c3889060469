package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
)

// OrderRepository persists orders and performs the inventory writes that
// must commit atomically with them.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *OrderRepository) GetProductForUpdate(ctx context.Context, productID string) (domain.Product, error) {
	const q = `
SELECT id, name, quantity, price, image, payment_options, show_on_home_page, created_by, created_at
FROM products
WHERE id = $1
FOR UPDATE`

	var p domain.Product
	err := queryRow(ctx, r.pool, q, productID).Scan(
		&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Image,
		&p.PaymentOptions, &p.ShowOnHomePage, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// DecrementProductQuantity is the oversell guard: the quantity check and
// the subtraction are one conditional statement, so two concurrent orders
// can never drive the stored quantity negative.
func (r *OrderRepository) DecrementProductQuantity(ctx context.Context, productID string, by int) (int64, error) {
	const stmt = `
UPDATE products
SET quantity = quantity - $2
WHERE id = $1 AND quantity >= $2`

	tag, err := exec(ctx, r.pool, stmt, productID, by)
	if err != nil {
		return 0, fmt.Errorf("decrement product quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrInsufficientInventory
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepository) IncrementProductQuantity(ctx context.Context, productID string, by int) error {
	const stmt = `UPDATE products SET quantity = quantity + $2 WHERE id = $1`

	tag, err := exec(ctx, r.pool, stmt, productID, by)
	if err != nil {
		return fmt.Errorf("increment product quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *OrderRepository) GetOrderByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error) {
	const q = orderSelect + ` WHERE transaction_id = $1`

	order, err := scanOrder(queryRow(ctx, r.pool, q, transactionID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by transaction id: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, o domain.Order) error {
	const stmt = `
INSERT INTO orders (id, product_id, product_name, manager, status, ordered_at,
                    order_quantity, buyer, payment_option, payment_status,
                    transaction_id, tracking_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var transactionID any
	if o.TransactionID != "" {
		transactionID = o.TransactionID
	}

	_, err := exec(ctx, r.pool, stmt,
		o.ID, o.ProductID, o.ProductName, o.Manager, o.Status, o.OrderedAt,
		o.Quantity, o.Buyer, o.PaymentOption, o.PaymentStatus,
		transactionID, o.TrackingID,
	)
	if err != nil {
		switch uniqueConstraint(err) {
		case "orders_transaction_id_key":
			return domain.ErrDuplicateTransaction
		case "orders_tracking_id_key":
			return domain.ErrTrackingIDConflict
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	const stmt = `
DELETE FROM orders
WHERE id = $1
RETURNING id, product_id, product_name, manager, status, ordered_at,
          order_quantity, buyer, payment_option, payment_status,
          COALESCE(transaction_id, ''), tracking_id`

	order, err := scanOrder(queryRow(ctx, r.pool, stmt, orderID))
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) ListOrdersByBuyer(ctx context.Context, buyer string) ([]domain.Order, error) {
	const q = orderSelect + ` WHERE buyer = $1 ORDER BY ordered_at DESC`

	rows, err := query(ctx, r.pool, q, buyer)
	if err != nil {
		return nil, fmt.Errorf("list orders by buyer: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders by buyer: %w", err)
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

const orderSelect = `
SELECT id, product_id, product_name, manager, status, ordered_at,
       order_quantity, buyer, payment_option, payment_status,
       COALESCE(transaction_id, ''), tracking_id
FROM orders`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.ProductID, &o.ProductName, &o.Manager, &o.Status, &o.OrderedAt,
		&o.Quantity, &o.Buyer, &o.PaymentOption, &o.PaymentStatus,
		&o.TransactionID, &o.TrackingID,
	)
	return o, err
}
