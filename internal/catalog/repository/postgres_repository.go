package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ridloal/saas-storefront/internal/catalog/domain"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
)

const productColumns = `id, name, description, long_description, category, price, logo, emoji, features, target_users`

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p           domain.Product
		logo, emoji sql.NullString
		longDesc    sql.NullString
		targetUsers sql.NullString
		features    []string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &longDesc, &p.Category, &p.Price,
		&logo, &emoji, pq.Array(&features), &targetUsers)
	if err != nil {
		return p, err
	}
	p.LongDescription = longDesc.String
	p.Logo = logo.String
	p.Emoji = emoji.String
	p.TargetUsers = targetUsers.String
	p.Features = features
	return p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}
