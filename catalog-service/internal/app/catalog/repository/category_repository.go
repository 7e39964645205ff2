package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storecatalog/catalog-service/internal/app/catalog/entity"
	"storecatalog/pkg/metrics"
)

const categoryColumns = `id, name, created_at, updated_at`

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func scanCategory(row rowScanner) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAll returns every category ordered by name.
func (r *categoryRepository) GetAll(ctx context.Context) (categories []entity.Category, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer func() { timer.ObserveDuration(err) }()

	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	categories = make([]entity.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (category *entity.Category, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer func() { timer.ObserveDuration(ignoreNoRows(err, ErrCategoryNotFound)) }()

	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err = scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

// Create inserts a category and returns the stored row.
func (r *categoryRepository) Create(ctx context.Context, in entity.NewCategory) (category *entity.Category, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "categories")
	defer func() { timer.ObserveDuration(err) }()

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING `+categoryColumns,
		in.Name,
	)
	category, err = scanCategory(row)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, columns []entity.Column) (category *entity.Category, err error) {
	query, err := BuildUpdate(CategoriesTable, id, columns)
	if err != nil {
		return nil, err
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "categories")
	defer func() { timer.ObserveDuration(ignoreNoRows(err, ErrCategoryNotFound)) }()

	category, err = scanCategory(r.db.QueryRowContext(ctx, query.SQL, query.Args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		if isPgError(err, pgUniqueViolation) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete removes a category that no product references. The row is locked
// for the duration of the check so a concurrent product insert either
// commits first and blocks the delete, or waits for it and then fails its
// foreign key check.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (category *entity.Category, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "categories")
	defer func() {
		if errors.Is(err, ErrCategoryHasProducts) || errors.Is(err, ErrCategoryNotFound) {
			timer.ObserveDuration(nil)
			return
		}
		timer.ObserveDuration(err)
	}()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to lock category: %w", err)
	}

	ok, err := CanDeleteCategory(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCategoryHasProducts
	}

	row := tx.QueryRowContext(ctx, `DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id)
	category, err = scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		if isPgError(err, pgForeignKeyViolation) {
			return nil, ErrCategoryHasProducts
		}
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit category delete: %w", err)
	}

	return category, nil
}

// ignoreNoRows keeps expected misses out of db_errors_total.
func ignoreNoRows(err, notFound error) error {
	if errors.Is(err, notFound) {
		return nil
	}
	return err
}
