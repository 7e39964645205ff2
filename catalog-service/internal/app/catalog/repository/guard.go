package repository

import (
	"context"
	"fmt"
)

const countProductsByCategoryQuery = `SELECT COUNT(*) FROM products WHERE category_id = $1`

// CanDeleteCategory reports whether no product references the category.
// Run it on the transaction that performs the delete, after locking the
// category row, so no product can be attached in between.
func CanDeleteCategory(ctx context.Context, q Querier, categoryID int64) (bool, error) {
	var count int64
	if err := q.QueryRowContext(ctx, countProductsByCategoryQuery, categoryID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count products in category: %w", err)
	}
	return count == 0, nil
}
