package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const saleColumns = `sale_id, user_id, purchase_ref, sale_date, total_amount`

type saleRepository struct {
	db *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) repository.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		ORDER BY sale_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func (r *saleRepository) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE sale_id = $1
	`

	sale, err := scanSale(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}

	return sale, nil
}

func (r *saleRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE user_id = $1
		ORDER BY sale_date DESC, sale_id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func (r *saleRepository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*domain.Sale, error) {
	// Одним запросом: при отсутствии строки ничего не пишется
	query := `
		UPDATE sales
		SET total_amount = $2
		WHERE sale_id = $1
		RETURNING ` + saleColumns

	sale, err := scanSale(r.db.QueryRow(ctx, query, id, price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		if isCheckViolation(err) {
			return nil, domain.ErrInvalidSalePrice
		}
		return nil, err
	}

	return sale, nil
}

func (r *saleRepository) Delete(ctx context.Context, id int64) error {
	// Строки продажи удаляются каскадно (ON DELETE CASCADE)
	query := `DELETE FROM sales WHERE sale_id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	sale := &domain.Sale{}
	err := row.Scan(
		&sale.ID,
		&sale.UserID,
		&sale.PurchaseRef,
		&sale.SaleDate,
		&sale.TotalPrice,
	)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func scanSales(rows pgx.Rows) ([]*domain.Sale, error) {
	sales := []*domain.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}
