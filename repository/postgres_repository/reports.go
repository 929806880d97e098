package postgres_repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/capitol/models"
)

// postgresReportRepository stores report documents as JSONB rows
type postgresReportRepository struct {
	db *sql.DB
}

func (r postgresReportRepository) FindReport(ctx context.Context, abbr string) (*models.Report, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM reports WHERE abbr=$1`, strings.ToLower(abbr)).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrReportNotFound
		}
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal(doc, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", abbr, err)
	}
	return &report, nil
}

func (r postgresReportRepository) SaveReport(ctx context.Context, abbr string, report models.Report) error {
	doc, err := json.Marshal(report)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO reports (abbr, document, updated_at)
VALUES ($1,$2,NOW())
ON CONFLICT (abbr) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
`, strings.ToLower(abbr), doc)
	return err
}

func (r postgresReportRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func NewPostgresReportRepository(db *sql.DB) *postgresReportRepository {
	return &postgresReportRepository{db: db}
}
