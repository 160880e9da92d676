package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gerenciador-gastos/internal/database"
	"gerenciador-gastos/internal/models"

	"github.com/shopspring/decimal"
)

// SQLiteDatasetRepository stores the active dataset as a snapshot in SQLite.
// Replace runs in a single transaction, so a failed write leaves the previous
// dataset in place.
type SQLiteDatasetRepository struct {
	db *database.DB
}

func NewSQLiteDatasetRepository(db *database.DB) *SQLiteDatasetRepository {
	return &SQLiteDatasetRepository{db: db}
}

func (r *SQLiteDatasetRepository) Replace(ctx context.Context, ds *models.Dataset) (err error) {
	if ds == nil {
		return ErrNilDataset
	}

	columns, err := json.Marshal(ds.SourceColumns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"dataset_rows", "datasets"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	query := `
        INSERT INTO datasets (id, filename, columns, has_category, dropped, uploaded_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	if _, err = tx.ExecContext(ctx, query, ds.ID, ds.Filename, string(columns), ds.HasCategory, ds.Dropped, ds.UploadedAt); err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO dataset_rows (dataset_id, position, cells, amount, category)
        VALUES (?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range ds.Rows {
		cells, err := json.Marshal(row.Values)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, ds.ID, i, string(cells), row.Amount.String(), row.Category); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *SQLiteDatasetRepository) Current(ctx context.Context) (*models.Dataset, error) {
	var (
		id, filename, columnsJSON string
		hasCategory               bool
		dropped                   int
		uploadedAt                time.Time
	)
	err := r.db.QueryRowContext(ctx, `
        SELECT id, filename, columns, has_category, dropped, uploaded_at
        FROM datasets LIMIT 1
    `).Scan(&id, &filename, &columnsJSON, &hasCategory, &dropped, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	var columns []string
	if err := json.Unmarshal([]byte(columnsJSON), &columns); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT cells, amount, category
        FROM dataset_rows
        WHERE dataset_id = ?
        ORDER BY position
    `, id)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	defer rows.Close()

	var out []models.Row
	for rows.Next() {
		var cells, amount, category string
		if err := rows.Scan(&cells, &amount, &category); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var row models.Row
		if err := json.Unmarshal([]byte(cells), &row.Values); err != nil {
			return nil, fmt.Errorf("decode row cells: %w", err)
		}
		if row.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("decode row amount: %w", err)
		}
		row.Category = category
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return models.NewDataset(id, filename, uploadedAt.UTC(), columns, hasCategory, out, dropped), nil
}
