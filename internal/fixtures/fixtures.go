// Package fixtures reads region data files and derives the report document
// the dashboard uses for per-session bill totals.
package fixtures

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mohammad-safakhou/capitol/models"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the fixture at path.
func Load(path string) (models.RegionData, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.RegionData{}, err
	}
	defer f.Close()
	data, err := Parse(f)
	if err != nil {
		return models.RegionData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a fixture, rejecting unknown keys. Each entity's state
// defaults to the metadata code and display text is stripped of markup.
func Parse(r io.Reader) (models.RegionData, error) {
	var data models.RegionData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return models.RegionData{}, fmt.Errorf("decode fixture: %w", err)
	}
	if err := normalize(&data); err != nil {
		return models.RegionData{}, err
	}
	sanitize(&data)
	return data, nil
}

func normalize(data *models.RegionData) error {
	abbr := strings.ToLower(strings.TrimSpace(data.Metadata.Abbr))
	if len(abbr) != 2 {
		return fmt.Errorf("metadata.abbr must be a two letter code, got %q", data.Metadata.Abbr)
	}
	data.Metadata.Abbr = abbr

	sessions := make(map[string]bool, len(data.Sessions))
	for _, s := range data.Sessions {
		if s.ID == "" {
			return fmt.Errorf("session without id")
		}
		sessions[s.ID] = true
	}

	for i := range data.Legislators {
		l := &data.Legislators[i]
		if err := claim(&l.State, abbr, "legislator", l.ID); err != nil {
			return err
		}
		if l.Chamber != "" && l.Chamber != models.ChamberUpper && l.Chamber != models.ChamberLower {
			return fmt.Errorf("legislator %s: chamber %q", l.ID, l.Chamber)
		}
	}
	for i := range data.Committees {
		c := &data.Committees[i]
		if err := claim(&c.State, abbr, "committee", c.ID); err != nil {
			return err
		}
		switch c.Chamber {
		case models.ChamberUpper, models.ChamberLower, models.ChamberJoint:
		default:
			return fmt.Errorf("committee %s: chamber %q", c.ID, c.Chamber)
		}
	}
	for i := range data.Bills {
		b := &data.Bills[i]
		if err := claim(&b.State, abbr, "bill", b.ID); err != nil {
			return err
		}
		if !sessions[b.Session] {
			return fmt.Errorf("bill %s: unknown session %q", b.ID, b.Session)
		}
		if b.Chamber != models.ChamberUpper && b.Chamber != models.ChamberLower {
			return fmt.Errorf("bill %s: chamber %q", b.ID, b.Chamber)
		}
	}
	return nil
}

// claim defaults an entity's state to abbr and rejects foreign ones.
func claim(state *string, abbr, kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s without id", kind)
	}
	*state = strings.ToLower(strings.TrimSpace(*state))
	if *state == "" {
		*state = abbr
	}
	if *state != abbr {
		return fmt.Errorf("%s %s belongs to %q, fixture is for %q", kind, id, *state, abbr)
	}
	return nil
}
