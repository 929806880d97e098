package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mohammad-safakhou/capitol/models"
)

const billColumns = `id, state, session, chamber, bill_id, title, last_action,
       first_action_at, last_action_at, passed_upper_at, passed_lower_at, signed_at`

var passedColumn = map[models.Chamber]string{
	models.ChamberUpper: "passed_upper_at",
	models.ChamberLower: "passed_lower_at",
}

func scanBill(rows *sql.Rows) (models.Bill, error) {
	var b models.Bill
	var chamber string
	var lastAction sql.NullString
	var first, last, passedUpper, passedLower, signed sql.NullTime
	if err := rows.Scan(&b.ID, &b.State, &b.Session, &chamber, &b.BillID, &b.Title, &lastAction,
		&first, &last, &passedUpper, &passedLower, &signed); err != nil {
		return models.Bill{}, err
	}
	b.Chamber = models.Chamber(chamber)
	b.LastAction = lastAction.String
	b.ActionDates = models.ActionDates{
		First:       nullTime(first),
		Last:        nullTime(last),
		PassedUpper: nullTime(passedUpper),
		PassedLower: nullTime(passedLower),
		Signed:      nullTime(signed),
	}
	return b, nil
}

func (s *Store) queryBills(ctx context.Context, query string, args ...interface{}) ([]models.Bill, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// LatestBills returns the chamber's most recently introduced bills.
func (s *Store) LatestBills(ctx context.Context, abbr string, chamber models.Chamber, limit int) ([]models.Bill, error) {
	out, err := s.queryBills(ctx, `SELECT `+billColumns+`
FROM bills
WHERE state=$1 AND chamber=$2
ORDER BY first_action_at DESC NULLS LAST, id
LIMIT $3`, strings.ToLower(abbr), string(chamber), limit)
	if err != nil {
		return nil, fmt.Errorf("latest %s bills %s: %w", chamber, abbr, err)
	}
	return out, nil
}

// PassedBills returns the chamber's bills ordered by the date they passed
// that chamber. Bills that never passed sort last.
func (s *Store) PassedBills(ctx context.Context, abbr string, chamber models.Chamber, limit int) ([]models.Bill, error) {
	col, ok := passedColumn[chamber]
	if !ok {
		return nil, fmt.Errorf("no passage date for chamber %q", chamber)
	}
	out, err := s.queryBills(ctx, `SELECT `+billColumns+`
FROM bills
WHERE state=$1 AND chamber=$2
ORDER BY `+col+` DESC NULLS LAST, id
LIMIT $3`, strings.ToLower(abbr), string(chamber), limit)
	if err != nil {
		return nil, fmt.Errorf("passed %s bills %s: %w", chamber, abbr, err)
	}
	return out, nil
}

// BillsByBillID looks up bills by their normalized identifier, e.g. "HB 1".
// The same identifier recurs across sessions and regions, so several
// bills may come back.
func (s *Store) BillsByBillID(ctx context.Context, scope, billID string) ([]models.Bill, error) {
	filter, extra := scopeFilter(scope, 2)
	args := append([]interface{}{billID}, extra...)
	out, err := s.queryBills(ctx, `SELECT `+billColumns+`
FROM bills
WHERE bill_id=$1`+filter+`
ORDER BY first_action_at DESC NULLS LAST, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("bills by id %q: %w", billID, err)
	}
	return out, nil
}

// SearchBillTitles matches titles containing text, ignoring case.
func (s *Store) SearchBillTitles(ctx context.Context, scope, text string, limit int) ([]models.Bill, error) {
	filter, extra := scopeFilter(scope, 3)
	args := append([]interface{}{containsPattern(text), limit}, extra...)
	out, err := s.queryBills(ctx, `SELECT `+billColumns+`
FROM bills
WHERE title ILIKE $1`+filter+`
ORDER BY first_action_at DESC NULLS LAST, id
LIMIT $2`, args...)
	if err != nil {
		return nil, fmt.Errorf("search bill titles %q: %w", text, err)
	}
	return out, nil
}

// BillsByIDs loads bills by primary key, keeping the order of ids.
// Unknown ids are skipped.
func (s *Store) BillsByIDs(ctx context.Context, ids []string) ([]models.Bill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.queryBills(ctx, `SELECT `+billColumns+`
FROM bills
WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("bills by ids: %w", err)
	}
	byID := make(map[string]models.Bill, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}
	out := make([]models.Bill, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// ForEachBill streams every bill to fn, stopping at the first error.
func (s *Store) ForEachBill(ctx context.Context, fn func(models.Bill) error) error {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+billColumns+` FROM bills ORDER BY id`)
	if err != nil {
		return fmt.Errorf("scan bills: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
	}
	return rows.Err()
}
