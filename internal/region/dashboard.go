package region

import (
	"context"

	"github.com/mohammad-safakhou/capitol/models"
)

// PartyCounts maps chamber -> party -> active member count.
type PartyCounts map[models.Chamber]map[string]int

// add bumps the count for chamber/party, creating the inner map on first use.
func (p PartyCounts) add(chamber models.Chamber, party string) {
	parties, ok := p[chamber]
	if !ok {
		parties = make(map[string]int)
		p[chamber] = parties
	}
	parties[party]++
}

// Chamber returns a copy of the party breakdown for one chamber, never nil.
func (p PartyCounts) Chamber(chamber models.Chamber) map[string]int {
	out := make(map[string]int, len(p[chamber]))
	for party, n := range p[chamber] {
		out[party] = n
	}
	return out
}

// Total sums every party in one chamber.
func (p PartyCounts) Total(chamber models.Chamber) int {
	total := 0
	for _, n := range p[chamber] {
		total += n
	}
	return total
}

// CountParties groups legislators by chamber and party. Members without a
// chamber (e.g. a lieutenant governor) are not counted anywhere.
func CountParties(legislators []models.Legislator) PartyCounts {
	counts := make(PartyCounts)
	for _, leg := range legislators {
		if leg.Chamber == "" {
			continue
		}
		counts.add(leg.Chamber, leg.Party)
	}
	return counts
}

type LegislatorSummary struct {
	Count       int
	PartyCounts map[string]int
}

// ChamberSummary is one house's block on the dashboard.
type ChamberSummary struct {
	Type            models.Chamber
	Title           string
	Name            string
	Legislators     LegislatorSummary
	CommitteesCount int
	LatestBills     []models.Bill
	PassedBills     []models.Bill
}

// StatePage is the dashboard view model.
type StatePage struct {
	Abbr                string
	Metadata            *models.Metadata
	Sessions            []models.Session
	Chambers            []ChamberSummary
	JointCommitteeCount int
	StatenavActive      string
}

// Dashboard assembles the state summary page: party counts and committee
// counts per chamber, the newest and most recently passed bills, and bill
// totals per session taken from the region's report document.
func (s *Service) Dashboard(ctx context.Context, abbr string) (*StatePage, error) {
	abbr = normalizeAbbr(abbr)
	report := s.findReport(ctx, abbr)

	meta, err := s.Store.GetMetadata(ctx, abbr)
	if err != nil {
		return nil, err
	}

	legislators, err := s.Store.ActiveLegislators(ctx, abbr)
	if err != nil {
		return nil, err
	}
	counts := CountParties(legislators)

	chambers := make([]ChamberSummary, 0, len(models.Chambers))
	for _, chamber := range models.Chambers {
		res := ChamberSummary{
			Type:  chamber,
			Title: meta.ChamberTitle(chamber),
			Name:  meta.ChamberName(chamber),
			Legislators: LegislatorSummary{
				Count:       counts.Total(chamber),
				PartyCounts: counts.Chamber(chamber),
			},
		}
		if res.CommitteesCount, err = s.Store.CountCommittees(ctx, abbr, chamber); err != nil {
			return nil, err
		}
		if res.LatestBills, err = s.Store.LatestBills(ctx, abbr, chamber, DashboardBillLimit); err != nil {
			return nil, err
		}
		if res.PassedBills, err = s.Store.PassedBills(ctx, abbr, chamber, DashboardBillLimit); err != nil {
			return nil, err
		}
		chambers = append(chambers, res)
	}

	joint, err := s.Store.CountCommittees(ctx, abbr, models.ChamberJoint)
	if err != nil {
		return nil, err
	}

	sessions, err := s.Store.Sessions(ctx, abbr)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].BillCount = report.SessionBillCount(sessions[i].ID)
	}

	return &StatePage{
		Abbr:                abbr,
		Metadata:            meta,
		Sessions:            sessions,
		Chambers:            chambers,
		JointCommitteeCount: joint,
		StatenavActive:      "home",
	}, nil
}
