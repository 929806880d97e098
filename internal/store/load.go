package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/capitol/models"
)

// LoadRegion upserts a region's metadata, sessions, legislators,
// committees and bills in one transaction. Sessions are replaced wholesale
// so their order follows the input.
func (s *Store) LoadRegion(ctx context.Context, data models.RegionData) (err error) {
	abbr := strings.ToLower(strings.TrimSpace(data.Metadata.Abbr))
	if len(abbr) != 2 {
		return fmt.Errorf("region abbr must be 2 letters, got %q", data.Metadata.Abbr)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m := data.Metadata
	if _, err = tx.ExecContext(ctx, `
INSERT INTO regions (abbr, name, legislature_name, upper_chamber_name, upper_chamber_title, lower_chamber_name, lower_chamber_title)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (abbr) DO UPDATE SET
  name = EXCLUDED.name,
  legislature_name = EXCLUDED.legislature_name,
  upper_chamber_name = EXCLUDED.upper_chamber_name,
  upper_chamber_title = EXCLUDED.upper_chamber_title,
  lower_chamber_name = EXCLUDED.lower_chamber_name,
  lower_chamber_title = EXCLUDED.lower_chamber_title
`, abbr, m.Name, m.LegislatureName, m.UpperChamberName, m.UpperChamberTitle, m.LowerChamberName, m.LowerChamberTitle); err != nil {
		return fmt.Errorf("upsert region %s: %w", abbr, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE abbr=$1`, abbr); err != nil {
		return fmt.Errorf("clear sessions %s: %w", abbr, err)
	}
	for i, sess := range data.Sessions {
		if _, err = tx.ExecContext(ctx, `
INSERT INTO sessions (abbr, id, display_name, term, start_date, end_date, position)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, abbr, sess.ID, sess.DisplayName, nullString(sess.Term), sess.StartDate, sess.EndDate, i); err != nil {
			return fmt.Errorf("insert session %s/%s: %w", abbr, sess.ID, err)
		}
	}

	for _, l := range data.Legislators {
		if _, err = tx.ExecContext(ctx, `
INSERT INTO legislators (id, state, chamber, party, full_name, district, active)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  state = EXCLUDED.state,
  chamber = EXCLUDED.chamber,
  party = EXCLUDED.party,
  full_name = EXCLUDED.full_name,
  district = EXCLUDED.district,
  active = EXCLUDED.active
`, l.ID, abbr, nullString(string(l.Chamber)), l.Party, l.FullName, nullString(l.District), l.Active); err != nil {
			return fmt.Errorf("upsert legislator %s: %w", l.ID, err)
		}
	}

	for _, c := range data.Committees {
		if _, err = tx.ExecContext(ctx, `
INSERT INTO committees (id, state, chamber, name)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET
  state = EXCLUDED.state,
  chamber = EXCLUDED.chamber,
  name = EXCLUDED.name
`, c.ID, abbr, string(c.Chamber), c.Name); err != nil {
			return fmt.Errorf("upsert committee %s: %w", c.ID, err)
		}
	}

	for _, b := range data.Bills {
		d := b.ActionDates
		if _, err = tx.ExecContext(ctx, `
INSERT INTO bills (id, state, session, chamber, bill_id, title, last_action,
                   first_action_at, last_action_at, passed_upper_at, passed_lower_at, signed_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  state = EXCLUDED.state,
  session = EXCLUDED.session,
  chamber = EXCLUDED.chamber,
  bill_id = EXCLUDED.bill_id,
  title = EXCLUDED.title,
  last_action = EXCLUDED.last_action,
  first_action_at = EXCLUDED.first_action_at,
  last_action_at = EXCLUDED.last_action_at,
  passed_upper_at = EXCLUDED.passed_upper_at,
  passed_lower_at = EXCLUDED.passed_lower_at,
  signed_at = EXCLUDED.signed_at
`, b.ID, abbr, b.Session, string(b.Chamber), models.FixBillID(b.BillID), b.Title, nullString(b.LastAction),
			d.First, d.Last, d.PassedUpper, d.PassedLower, d.Signed); err != nil {
			return fmt.Errorf("upsert bill %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
