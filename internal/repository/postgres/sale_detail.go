package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type saleDetailRepository struct {
	db *pgxpool.Pool
}

func NewSaleDetailRepository(db *pgxpool.Pool) repository.SaleDetailRepository {
	return &saleDetailRepository{db: db}
}

func (r *saleDetailRepository) Create(ctx context.Context, detail *domain.SaleDetail) error {
	query := `
		INSERT INTO sales_details (sale_id, vehicle_id, price, vehicle_count)
		VALUES ($1, $2, $3, $4)
		RETURNING sale_detail_id
	`

	err := r.db.QueryRow(ctx, query,
		detail.SaleID,
		detail.VehicleID,
		detail.Price,
		detail.VehicleCount,
	).Scan(&detail.ID)

	if err != nil {
		if isForeignKeyViolation(err) || isCheckViolation(err) || isOutOfRange(err) {
			return domain.ErrInvalidSaleDetailData
		}
		return err
	}

	return nil
}

func (r *saleDetailRepository) List(ctx context.Context) ([]*domain.SaleDetail, error) {
	query := `
		SELECT sale_detail_id, sale_id, vehicle_id, price, vehicle_count
		FROM sales_details
		ORDER BY sale_detail_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanSaleDetails(rows)
}

func (r *saleDetailRepository) GetByID(ctx context.Context, id int64) (*domain.SaleDetail, error) {
	query := `
		SELECT sale_detail_id, sale_id, vehicle_id, price, vehicle_count
		FROM sales_details
		WHERE sale_detail_id = $1
	`

	detail := &domain.SaleDetail{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.SaleID,
		&detail.VehicleID,
		&detail.Price,
		&detail.VehicleCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleDetailNotFound
		}
		return nil, err
	}

	return detail, nil
}

func (r *saleDetailRepository) GetBySaleID(ctx context.Context, saleID int64) ([]*domain.SaleDetail, error) {
	query := `
		SELECT sale_detail_id, sale_id, vehicle_id, price, vehicle_count
		FROM sales_details
		WHERE sale_id = $1
		ORDER BY sale_detail_id
	`

	rows, err := r.db.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanSaleDetails(rows)
}

func (r *saleDetailRepository) Update(ctx context.Context, detail *domain.SaleDetail) error {
	query := `
		UPDATE sales_details
		SET sale_id = $2, vehicle_id = $3, price = $4, vehicle_count = $5
		WHERE sale_detail_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		detail.ID,
		detail.SaleID,
		detail.VehicleID,
		detail.Price,
		detail.VehicleCount,
	)

	if err != nil {
		if isForeignKeyViolation(err) || isCheckViolation(err) || isOutOfRange(err) {
			return domain.ErrInvalidSaleDetailData
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSaleDetailNotFound
	}

	return nil
}

func (r *saleDetailRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM sales_details WHERE sale_detail_id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSaleDetailNotFound
	}

	return nil
}

func (r *saleDetailRepository) scanSaleDetails(rows pgx.Rows) ([]*domain.SaleDetail, error) {
	details := []*domain.SaleDetail{}
	for rows.Next() {
		d := &domain.SaleDetail{}
		err := rows.Scan(
			&d.ID,
			&d.SaleID,
			&d.VehicleID,
			&d.Price,
			&d.VehicleCount,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, rows.Err()
}
