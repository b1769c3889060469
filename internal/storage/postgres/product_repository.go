package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p domain.Product) error {
	const stmt = `
INSERT INTO products (id, name, quantity, price, image, payment_options,
                      show_on_home_page, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := exec(ctx, r.pool, stmt,
		p.ID, p.Name, p.Quantity, p.Price, p.Image, p.PaymentOptions,
		p.ShowOnHomePage, p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	const q = productSelect + ` WHERE id = $1`

	product, err := scanProduct(queryRow(ctx, r.pool, q, productID))
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, createdBy string) ([]domain.Product, error) {
	q := productSelect + ` ORDER BY created_at DESC`
	args := []any{}
	if createdBy != "" {
		q = productSelect + ` WHERE created_by = $1 ORDER BY created_at DESC`
		args = append(args, createdBy)
	}

	return r.list(ctx, q, args...)
}

func (r *ProductRepository) ListHomeProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	const q = productSelect + ` WHERE show_on_home_page ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, q, limit)
}

func (r *ProductRepository) list(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := query(ctx, r.pool, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		out = append(out, product)
	}
	return out, rows.Err()
}

const productSelect = `
SELECT id, name, quantity, price, image, payment_options, show_on_home_page, created_by, created_at
FROM products`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Image,
		&p.PaymentOptions, &p.ShowOnHomePage, &p.CreatedBy, &p.CreatedAt,
	)
	return p, err
}
