package repository

import (
	"errors"
	"fmt"
	"strings"

	"storecatalog/catalog-service/internal/app/catalog/entity"
)

var (
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrColumnNotAllowed = errors.New("column is not updatable")
	ErrDuplicateColumn  = errors.New("column assigned twice")
)

// UpdateTable names a table and the columns a dynamic update may assign.
// Returning is the row written back after the update.
type UpdateTable struct {
	Name      string
	Mutable   []string
	Returning []string
}

var (
	CategoriesTable = UpdateTable{
		Name:      "categories",
		Mutable:   []string{"name"},
		Returning: []string{"id", "name", "created_at", "updated_at"},
	}
	ProductsTable = UpdateTable{
		Name:      "products",
		Mutable:   []string{"name", "price", "stock", "category_id"},
		Returning: []string{"id", "name", "price", "stock", "category_id", "created_at", "updated_at"},
	}
)

func (t UpdateTable) allows(column string) bool {
	for _, c := range t.Mutable {
		if c == column {
			return true
		}
	}
	return false
}

func (t UpdateTable) returningClause() string {
	return strings.Join(t.Returning, ", ")
}

// UpdateQuery is a parameterized statement ready for execution.
type UpdateQuery struct {
	SQL  string
	Args []interface{}
}

// BuildUpdate renders an UPDATE of one row by primary key. The id is bound
// to $1 and the columns to $2.. in the order given. updated_at is always
// refreshed. Column names must belong to the table's mutable set; values are
// never written into the SQL text.
func BuildUpdate(table UpdateTable, id int64, columns []entity.Column) (UpdateQuery, error) {
	if len(columns) == 0 {
		return UpdateQuery{}, ErrNoFieldsToUpdate
	}

	assignments := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+1)
	args = append(args, id)
	seen := make(map[string]struct{}, len(columns))

	for i, col := range columns {
		if !table.allows(col.Name) {
			return UpdateQuery{}, fmt.Errorf("%w: %s.%s", ErrColumnNotAllowed, table.Name, col.Name)
		}
		if _, dup := seen[col.Name]; dup {
			return UpdateQuery{}, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name)
		}
		seen[col.Name] = struct{}{}

		assignments = append(assignments, fmt.Sprintf("%s = $%d", col.Name, i+2))
		args = append(args, col.Value)
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 RETURNING %s",
		table.Name, strings.Join(assignments, ", "), table.returningClause(),
	)

	return UpdateQuery{SQL: query, Args: args}, nil
}
