package repository

import (
	"context"
	"database/sql"
	"errors"

	"storecatalog/catalog-service/internal/app/catalog/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

const serviceName = "catalog-service"

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
	ErrCategoryHasProducts   = errors.New("cannot delete category with existing products")
	ErrProductNotFound       = errors.New("product not found")
	ErrUnknownCategory       = errors.New("referenced category does not exist")
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Querier is the part of *sql.DB and *sql.Tx used by the repositories, so
// the same statements run inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, category entity.NewCategory) (*entity.Category, error)
	Update(ctx context.Context, id int64, columns []entity.Column) (*entity.Category, error)
	Delete(ctx context.Context, id int64) (*entity.Category, error)
}

type ProductRepository interface {
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product entity.NewProduct) (*entity.Product, error)
	Update(ctx context.Context, id int64, columns []entity.Column) (*entity.Product, error)
	Delete(ctx context.Context, id int64) (*entity.Product, error)
}

type StatsRepository interface {
	Stats(ctx context.Context) (entity.CatalogStats, error)
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
