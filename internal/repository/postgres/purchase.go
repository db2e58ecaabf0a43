package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Коды ошибок PostgreSQL, которые переводятся в доменные ошибки
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

type purchaseStore struct {
	db *pgxpool.Pool
}

func NewPurchaseStore(db *pgxpool.Pool) repository.PurchaseStore {
	return &purchaseStore{db: db}
}

// InsertSaleRecords выполняет процедуру в одной транзакции.
// Процедура сама откатывает свои изменения при ошибке и возвращает код и текст;
// транзакция фиксируется в любом случае, так как после отката в ней ничего не осталось.
func (s *purchaseStore) InsertSaleRecords(ctx context.Context, userID int64, purchaseRef uuid.UUID, vehiclesJSON []byte) (*domain.StoreStatus, error) {
	query := `SELECT status_code, message FROM insert_sale_records($1, $2, $3::jsonb)`

	status := &domain.StoreStatus{}
	err := pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, userID, purchaseRef, string(vehiclesJSON)).Scan(&status.Code, &status.Message)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("insert_sale_records returned no status")
		}
		return nil, fmt.Errorf("failed to call insert_sale_records: %w", err)
	}

	return status, nil
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

func isCheckViolation(err error) bool {
	return pgErrorCode(err) == pgCheckViolation
}

func isOutOfRange(err error) bool {
	return pgErrorCode(err) == pgNumericOutOfRange
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
