package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"storecatalog/catalog-service/internal/app/catalog/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var categoryRowColumns = []string{"id", "name", "created_at", "updated_at"}

type CategoryRepositoryTestSuite struct {
	suite.Suite
	sqlDB *sql.DB
	mock  sqlmock.Sqlmock
	repo  CategoryRepository
}

func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositoryTestSuite))
}

func (s *CategoryRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	s.repo = NewCategoryRepository(s.sqlDB)
}

func (s *CategoryRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.sqlDB.Close()
}

// ===================== GetAll =====================

func (s *CategoryRepositoryTestSuite) TestGetAll_OrderedByName() {
	now := time.Now()
	rows := sqlmock.NewRows(categoryRowColumns).
		AddRow(2, "Books", now, now).
		AddRow(1, "Electronics", now, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`)).
		WillReturnRows(rows)

	categories, err := s.repo.GetAll(context.Background())

	s.NoError(err)
	s.Len(categories, 2)
	s.Equal("Books", categories[0].Name)
	s.Equal(int64(1), categories[1].ID)
}

func (s *CategoryRepositoryTestSuite) TestGetAll_EmptyIsNotNil() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`FROM categories ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows(categoryRowColumns))

	categories, err := s.repo.GetAll(context.Background())

	s.NoError(err)
	s.NotNil(categories)
	s.Empty(categories)
}

func (s *CategoryRepositoryTestSuite) TestGetAll_DBError() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`FROM categories`)).
		WillReturnError(sql.ErrConnDone)

	categories, err := s.repo.GetAll(context.Background())

	s.Nil(categories)
	s.ErrorIs(err, sql.ErrConnDone)
	s.Contains(err.Error(), "failed to get categories")
}

// ===================== GetByID =====================

func (s *CategoryRepositoryTestSuite) TestGetByID_Success() {
	now := time.Now()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(categoryRowColumns).AddRow(5, "Garden", now, now))

	category, err := s.repo.GetByID(context.Background(), 5)

	s.NoError(err)
	s.Equal(int64(5), category.ID)
	s.Equal("Garden", category.Name)
}

func (s *CategoryRepositoryTestSuite) TestGetByID_NotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(categoryRowColumns))

	category, err := s.repo.GetByID(context.Background(), 99)

	s.Nil(category)
	s.ErrorIs(err, ErrCategoryNotFound)
}

// ===================== Create =====================

func (s *CategoryRepositoryTestSuite) TestCreate_ReturnsRow() {
	now := time.Now()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (name) VALUES ($1) RETURNING id, name, created_at, updated_at`)).
		WithArgs("Books").
		WillReturnRows(sqlmock.NewRows(categoryRowColumns).AddRow(3, "Books", now, now))

	category, err := s.repo.Create(context.Background(), entity.NewCategory{Name: "Books"})

	s.NoError(err)
	s.Equal(int64(3), category.ID)
	s.Equal("Books", category.Name)
}

func (s *CategoryRepositoryTestSuite) TestCreate_DuplicateName() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories`)).
		WithArgs("Books").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	category, err := s.repo.Create(context.Background(), entity.NewCategory{Name: "Books"})

	s.Nil(category)
	s.ErrorIs(err, ErrCategoryAlreadyExists)
}

// ===================== Update =====================

func (s *CategoryRepositoryTestSuite) TestUpdate_Success() {
	now := time.Now()
	s.mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE categories SET name = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1 RETURNING id, name, created_at, updated_at`)).
		WithArgs(int64(3), "Novels").
		WillReturnRows(sqlmock.NewRows(categoryRowColumns).AddRow(3, "Novels", now.Add(-time.Hour), now))

	category, err := s.repo.Update(context.Background(), 3, []entity.Column{{Name: "name", Value: "Novels"}})

	s.NoError(err)
	s.Equal("Novels", category.Name)
	s.True(category.UpdatedAt.After(category.CreatedAt))
}

func (s *CategoryRepositoryTestSuite) TestUpdate_NotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE categories SET name = $2`)).
		WithArgs(int64(42), "Novels").
		WillReturnRows(sqlmock.NewRows(categoryRowColumns))

	category, err := s.repo.Update(context.Background(), 42, []entity.Column{{Name: "name", Value: "Novels"}})

	s.Nil(category)
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryRepositoryTestSuite) TestUpdate_EmptyColumnsNoQuery() {
	category, err := s.repo.Update(context.Background(), 3, nil)

	s.Nil(category)
	s.ErrorIs(err, ErrNoFieldsToUpdate)
}

// ===================== Delete =====================

func (s *CategoryRepositoryTestSuite) TestDelete_NoProducts() {
	now := time.Now()
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM categories WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE category_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1 RETURNING id, name, created_at, updated_at`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(categoryRowColumns).AddRow(1, "Books", now, now))
	s.mock.ExpectCommit()

	category, err := s.repo.Delete(context.Background(), 1)

	s.NoError(err)
	s.Equal(int64(1), category.ID)
}

func (s *CategoryRepositoryTestSuite) TestDelete_BlockedByProducts() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM categories WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE category_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	s.mock.ExpectRollback()

	category, err := s.repo.Delete(context.Background(), 1)

	s.Nil(category)
	s.ErrorIs(err, ErrCategoryHasProducts)
}

func (s *CategoryRepositoryTestSuite) TestDelete_NotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM categories WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectRollback()

	category, err := s.repo.Delete(context.Background(), 8)

	s.Nil(category)
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryRepositoryTestSuite) TestDelete_ForeignKeyBackstop() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM categories`)).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	s.mock.ExpectRollback()

	category, err := s.repo.Delete(context.Background(), 1)

	s.Nil(category)
	s.ErrorIs(err, ErrCategoryHasProducts)
}

func (s *CategoryRepositoryTestSuite) TestDelete_BeginError() {
	s.mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	category, err := s.repo.Delete(context.Background(), 1)

	s.Nil(category)
	s.ErrorIs(err, sql.ErrConnDone)
}

// ===================== Guard =====================

func (s *CategoryRepositoryTestSuite) TestCanDeleteCategory() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE category_id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE category_id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	ok, err := CanDeleteCategory(context.Background(), s.sqlDB, 4)
	s.NoError(err)
	s.True(ok)

	ok, err = CanDeleteCategory(context.Background(), s.sqlDB, 5)
	s.NoError(err)
	s.False(ok)
}

func (s *CategoryRepositoryTestSuite) TestCanDeleteCategory_Error() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products`)).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrConnDone)

	ok, err := CanDeleteCategory(context.Background(), s.sqlDB, 4)

	s.False(ok)
	s.ErrorIs(err, sql.ErrConnDone)
}
