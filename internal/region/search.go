package region

import (
	"context"
	"strings"

	"github.com/mohammad-safakhou/capitol/models"
)

// StrategyBillID marks searches answered by an exact bill id match.
const StrategyBillID = "bill_id"

// BillColumnHeaders label the result table columns.
var BillColumnHeaders = []string{"State", "Title", "Session", "Introduced", "Recent Action"}

// SearchPage is the search results view model. Metadata is nil when
// searching all regions.
type SearchPage struct {
	SearchText               string
	Abbr                     string
	Metadata                 *models.Metadata
	FoundByID                bool
	BillResults              []models.Bill
	MoreBillsAvailable       bool
	LegislatorResults        []models.Legislator
	MoreLegislatorsAvailable bool
	BillColumnHeaders        []string
	ShowChamberColumn        bool
}

// Search looks for bills and legislators matching text within a region,
// or across every region when abbr is models.AllRegions. An exact bill id
// match short-circuits the text search.
func (s *Service) Search(ctx context.Context, abbr, text string) (*SearchPage, error) {
	scope := normalizeAbbr(abbr)
	page := &SearchPage{
		SearchText:        text,
		Abbr:              scope,
		BillColumnHeaders: BillColumnHeaders,
		ShowChamberColumn: true,
	}
	if scope != models.AllRegions {
		meta, err := s.Store.GetMetadata(ctx, scope)
		if err != nil {
			return nil, err
		}
		page.Metadata = meta
	}

	query := strings.TrimSpace(text)
	byID, err := s.Store.BillsByBillID(ctx, scope, models.FixBillID(query))
	if err != nil {
		return nil, err
	}
	if len(byID) > 0 {
		page.FoundByID = true
		page.BillResults = byID
		s.observe(StrategyBillID)
		return page, nil
	}

	bills, err := s.Bills.SearchBills(ctx, query, scope, SearchLimit+1)
	if err != nil {
		return nil, err
	}
	page.BillResults, page.MoreBillsAvailable = capResults(bills, SearchLimit)

	legislators, err := s.Store.SearchLegislatorNames(ctx, scope, query, SearchLimit+1)
	if err != nil {
		return nil, err
	}
	page.LegislatorResults, page.MoreLegislatorsAvailable = capResults(legislators, SearchLimit)

	s.observe(s.Bills.Strategy())
	return page, nil
}

func (s *Service) observe(strategy string) {
	if s.Observer != nil {
		s.Observer.ObserveSearch(strategy)
	}
}

// capResults truncates items to limit and reports whether any were cut.
func capResults[T any](items []T, limit int) ([]T, bool) {
	if len(items) > limit {
		return items[:limit], true
	}
	return items, false
}
