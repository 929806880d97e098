package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/mohammad-safakhou/capitol/models"
)

// Store is the read model behind the region pages. Every lookup is
// scoped to one call; the pool is the only shared state.
type Store struct {
	DB *sql.DB
}

// NewWithDSN constructs the Store using an explicit Postgres DSN
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Close() error { return s.DB.Close() }

// GetMetadata returns the legislature metadata for a region code, or
// models.ErrRegionNotFound.
func (s *Store) GetMetadata(ctx context.Context, abbr string) (*models.Metadata, error) {
	row := s.DB.QueryRowContext(ctx, `
SELECT abbr, name, legislature_name, upper_chamber_name, upper_chamber_title, lower_chamber_name, lower_chamber_title
FROM regions
WHERE abbr=$1
`, strings.ToLower(abbr))
	var m models.Metadata
	if err := row.Scan(&m.Abbr, &m.Name, &m.LegislatureName, &m.UpperChamberName, &m.UpperChamberTitle, &m.LowerChamberName, &m.LowerChamberTitle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrRegionNotFound
		}
		return nil, fmt.Errorf("get metadata %s: %w", abbr, err)
	}
	return &m, nil
}

// Sessions lists a region's legislative sessions in display order.
func (s *Store) Sessions(ctx context.Context, abbr string) ([]models.Session, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, display_name, term, start_date, end_date
FROM sessions
WHERE abbr=$1
ORDER BY position, id
`, strings.ToLower(abbr))
	if err != nil {
		return nil, fmt.Errorf("list sessions %s: %w", abbr, err)
	}
	defer rows.Close()
	var out []models.Session
	for rows.Next() {
		var sess models.Session
		var term sql.NullString
		var start, end sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.DisplayName, &term, &start, &end); err != nil {
			return nil, err
		}
		sess.Term = term.String
		sess.StartDate = nullTime(start)
		sess.EndDate = nullTime(end)
		out = append(out, sess)
	}
	return out, rows.Err()
}

// CountCommittees counts a region's committees in one chamber, "joint" included.
func (s *Store) CountCommittees(ctx context.Context, abbr string, chamber models.Chamber) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM committees WHERE state=$1 AND chamber=$2`, strings.ToLower(abbr), string(chamber)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s committees %s: %w", chamber, abbr, err)
	}
	return n, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// scopeFilter returns a state predicate for the nth placeholder, or an
// empty clause when the scope spans all regions.
func scopeFilter(scope string, n int) (string, []interface{}) {
	if scope == models.AllRegions {
		return "", nil
	}
	return fmt.Sprintf(" AND state=$%d", n), []interface{}{strings.ToLower(scope)}
}

// containsPattern builds an ILIKE pattern matching text literally anywhere.
func containsPattern(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(text) + "%"
}
