package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trinitynoble/BudgetBuddyProject/internal/models"
)

// PostgresRecordStore serves one ledger table. Transactions and budget
// items share the schema, so the table name is the only difference.
type PostgresRecordStore struct {
	db    *pgxpool.Pool
	table string
}

func NewPostgresTransactionStore(db *pgxpool.Pool) *PostgresRecordStore {
	return &PostgresRecordStore{db: db, table: "transactions"}
}

func NewPostgresBudgetStore(db *pgxpool.Pool) *PostgresRecordStore {
	return &PostgresRecordStore{db: db, table: "budget_items"}
}

const recordColumns = `id, amount, description, date::text, user_id, created_at, updated_at`

func scanRecord(row pgx.Row) (*models.Record, error) {
	var rec models.Record
	err := row.Scan(
		&rec.ID,
		&rec.Amount,
		&rec.Description,
		&rec.Date,
		&rec.UserID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PostgresRecordStore) collectRows(rows pgx.Rows) ([]*models.Record, error) {
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

func (s *PostgresRecordStore) ListByUser(ctx context.Context, userID string) ([]*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY id DESC
	`, recordColumns, s.table)

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return s.collectRows(rows)
}

func (s *PostgresRecordStore) Latest(ctx context.Context, userID string) (*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT 1
	`, recordColumns, s.table)

	rec, err := scanRecord(s.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest record: %w", err)
	}

	return rec, nil
}

func (s *PostgresRecordStore) Create(ctx context.Context, userID string, in *models.RecordInput) (*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (amount, description, date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s
	`, s.table, recordColumns)

	rec, err := scanRecord(s.db.QueryRow(ctx, query, in.Amount, in.Description, in.Date, userID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrUserVanished
		}
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return rec, nil
}

func (s *PostgresRecordStore) GetOwned(ctx context.Context, id int64, userID string) (*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, recordColumns, s.table)

	rec, err := scanRecord(s.db.QueryRow(ctx, query, id, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return rec, nil
}

func (s *PostgresRecordStore) OwnerOf(ctx context.Context, id int64) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE id = $1`, s.table)

	var owner string
	err := s.db.QueryRow(ctx, query, id).Scan(&owner)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up owner: %w", err)
	}

	return owner, true, nil
}

func (s *PostgresRecordStore) Update(ctx context.Context, id int64, userID string, in *models.RecordInput) (*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Ownership is re-checked in the WHERE clause so a concurrent owner
	// change between lookup and write cannot slip through.
	query := fmt.Sprintf(`
		UPDATE %s
		SET amount = $1, description = $2, date = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING %s
	`, s.table, recordColumns)

	rec, err := scanRecord(s.db.QueryRow(ctx, query, in.Amount, in.Description, in.Date, id, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	return rec, nil
}

func (s *PostgresRecordStore) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, s.table)

	cmdTag, err := s.db.Exec(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (s *PostgresRecordStore) Search(ctx context.Context, userID, query string) ([]*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		  AND (description ILIKE $2 OR amount::text ILIKE $2 OR date::text ILIKE $2)
		ORDER BY id DESC
	`, recordColumns, s.table)

	rows, err := s.db.Query(ctx, sql, userID, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search records: %w", err)
	}

	return s.collectRows(rows)
}
