package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storecatalog/catalog-service/internal/app/catalog/entity"
	"storecatalog/pkg/metrics"
)

const statsQuery = `SELECT
	(SELECT COUNT(*) FROM categories),
	(SELECT COUNT(*) FROM products),
	(SELECT COUNT(*) FROM products WHERE stock = 0)`

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Stats(ctx context.Context) (stats entity.CatalogStats, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "catalog")
	defer func() { timer.ObserveDuration(err) }()

	err = r.db.QueryRowContext(ctx, statsQuery).Scan(&stats.Categories, &stats.Products, &stats.ProductsOutOfStock)
	if err != nil {
		return entity.CatalogStats{}, fmt.Errorf("failed to count catalog: %w", err)
	}
	return stats, nil
}
