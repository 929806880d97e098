package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mohammad-safakhou/capitol/config"
	"github.com/mohammad-safakhou/capitol/models"
	"github.com/mohammad-safakhou/capitol/repository/postgres_repository"
	"github.com/mohammad-safakhou/capitol/repository/redis_repository"
)

// ReportRepository stores the precomputed per-region report documents.
// FindReport returns models.ErrReportNotFound when a region has none.
type ReportRepository interface {
	FindReport(ctx context.Context, abbr string) (*models.Report, error)
	SaveReport(ctx context.Context, abbr string, report models.Report) error
	Ping(ctx context.Context) error
}

type RepoType string

const (
	RepoTypeRedis    RepoType = config.ReportsRedis
	RepoTypePostgres RepoType = config.ReportsPostgres
)

// NewReportRepository builds the report repository named by t. db is used
// by the postgres variant and may be nil for redis.
func NewReportRepository(ctx context.Context, t RepoType, cfg config.StorageConfig, db *sql.DB) (ReportRepository, error) {
	switch t {
	case RepoTypeRedis:
		r := cfg.Redis
		c, err := redis_repository.Conn(ctx, r.Host, r.Port, r.Password, r.DB, r.Timeout)
		if err != nil {
			return nil, err
		}
		return redis_repository.NewRedisReportRepository(c), nil
	case RepoTypePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres report repository needs a database handle")
		}
		return postgres_repository.NewPostgresReportRepository(db), nil
	}
	return nil, fmt.Errorf("invalid repository type: %s", t)
}
