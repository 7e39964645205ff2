package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storecatalog/catalog-service/internal/app/catalog/entity"
	"storecatalog/pkg/metrics"
)

const productColumns = `id, name, price, stock, category_id, created_at, updated_at`

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll returns every product, newest first.
func (r *productRepository) GetAll(ctx context.Context) (products []entity.Product, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer func() { timer.ObserveDuration(err) }()

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	products = make([]entity.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (product *entity.Product, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer func() { timer.ObserveDuration(ignoreNoRows(err, ErrProductNotFound)) }()

	product, err = scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

func (r *productRepository) Create(ctx context.Context, in entity.NewProduct) (product *entity.Product, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "products")
	defer func() { timer.ObserveDuration(err) }()

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, price, stock, category_id) VALUES ($1, $2, $3, $4) RETURNING `+productColumns,
		in.Name, in.Price, in.Stock, in.CategoryID,
	)
	product, err = scanProduct(row)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, columns []entity.Column) (product *entity.Product, err error) {
	query, err := BuildUpdate(ProductsTable, id, columns)
	if err != nil {
		return nil, err
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	defer func() { timer.ObserveDuration(ignoreNoRows(err, ErrProductNotFound)) }()

	product, err = scanProduct(r.db.QueryRowContext(ctx, query.SQL, query.Args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if isPgError(err, pgForeignKeyViolation) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) (product *entity.Product, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "products")
	defer func() { timer.ObserveDuration(ignoreNoRows(err, ErrProductNotFound)) }()

	product, err = scanProduct(r.db.QueryRowContext(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return product, nil
}
