package redis_repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/capitol/models"
	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "report:"

// redisReportRepository keeps one JSON report document per region
type redisReportRepository struct {
	client *redis.Client
}

func reportKey(abbr string) string {
	return reportKeyPrefix + strings.ToLower(abbr)
}

func (r redisReportRepository) FindReport(ctx context.Context, abbr string) (*models.Report, error) {
	val, err := r.client.Get(ctx, reportKey(abbr)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrReportNotFound
		}
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal(val, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", abbr, err)
	}
	return &report, nil
}

func (r redisReportRepository) SaveReport(ctx context.Context, abbr string, report models.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, reportKey(abbr), data, 0).Err()
}

func (r redisReportRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r redisReportRepository) Close() error {
	return r.client.Close()
}

func NewRedisReportRepository(client *redis.Client) *redisReportRepository {
	return &redisReportRepository{
		client: client,
	}
}
