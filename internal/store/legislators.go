package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/capitol/models"
)

// ActiveLegislators returns the party and chamber of every active member.
// Chamber is left empty for members outside both chambers.
func (s *Store) ActiveLegislators(ctx context.Context, abbr string) ([]models.Legislator, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT party, chamber FROM legislators WHERE state=$1 AND active`, strings.ToLower(abbr))
	if err != nil {
		return nil, fmt.Errorf("active legislators %s: %w", abbr, err)
	}
	defer rows.Close()
	var out []models.Legislator
	for rows.Next() {
		var party, chamber sql.NullString
		if err := rows.Scan(&party, &chamber); err != nil {
			return nil, err
		}
		out = append(out, models.Legislator{Party: party.String, Chamber: models.Chamber(chamber.String)})
	}
	return out, rows.Err()
}

// SearchLegislatorNames matches full names containing text, ignoring case.
func (s *Store) SearchLegislatorNames(ctx context.Context, scope, text string, limit int) ([]models.Legislator, error) {
	filter, extra := scopeFilter(scope, 3)
	args := append([]interface{}{containsPattern(text), limit}, extra...)
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, state, chamber, party, full_name, district, active
FROM legislators
WHERE full_name ILIKE $1`+filter+`
ORDER BY full_name, id
LIMIT $2`, args...)
	if err != nil {
		return nil, fmt.Errorf("search legislator names %q: %w", text, err)
	}
	defer rows.Close()
	var out []models.Legislator
	for rows.Next() {
		var l models.Legislator
		var chamber, party, district sql.NullString
		if err := rows.Scan(&l.ID, &l.State, &chamber, &party, &l.FullName, &district, &l.Active); err != nil {
			return nil, err
		}
		l.Chamber = models.Chamber(chamber.String)
		l.Party = party.String
		l.District = district.String
		out = append(out, l)
	}
	return out, rows.Err()
}
