// Package region builds the view models behind the per-state pages: the
// dashboard, the not-yet-active placeholder and the bill/legislator search.
package region

import (
	"context"
	"errors"
	"strings"

	"github.com/mohammad-safakhou/capitol/models"
	"go.uber.org/zap"
)

const (
	// DashboardBillLimit caps the latest/passed bill lists per chamber.
	DashboardBillLimit = 2
	// SearchLimit caps each search result list.
	SearchLimit = 5
)

// MetadataStore is the read side of the legislature store.
type MetadataStore interface {
	GetMetadata(ctx context.Context, abbr string) (*models.Metadata, error)
	Sessions(ctx context.Context, abbr string) ([]models.Session, error)
	ActiveLegislators(ctx context.Context, abbr string) ([]models.Legislator, error)
	CountCommittees(ctx context.Context, abbr string, chamber models.Chamber) (int, error)
	LatestBills(ctx context.Context, abbr string, chamber models.Chamber, limit int) ([]models.Bill, error)
	PassedBills(ctx context.Context, abbr string, chamber models.Chamber, limit int) ([]models.Bill, error)
	BillsByBillID(ctx context.Context, scope, billID string) ([]models.Bill, error)
	SearchLegislatorNames(ctx context.Context, scope, text string, limit int) ([]models.Legislator, error)
}

// ReportFinder loads report documents; a missing one is models.ErrReportNotFound.
type ReportFinder interface {
	FindReport(ctx context.Context, abbr string) (*models.Report, error)
}

// BillSearcher runs the free-text bill search. scope is a region code or
// models.AllRegions.
type BillSearcher interface {
	SearchBills(ctx context.Context, text, scope string, limit int) ([]models.Bill, error)
	Strategy() string
}

// SearchObserver is told which strategy answered each search.
type SearchObserver interface {
	ObserveSearch(strategy string)
}

type Service struct {
	Store    MetadataStore
	Reports  ReportFinder
	Bills    BillSearcher
	Observer SearchObserver
	Logger   *zap.Logger
}

func NewService(st MetadataStore, reports ReportFinder, bills BillSearcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Store: st, Reports: reports, Bills: bills, Logger: logger}
}

// NotActiveYetPage is the placeholder for regions without data yet.
type NotActiveYetPage struct {
	Metadata *models.Metadata
}

// NotActiveYet loads the region metadata for the placeholder page.
func (s *Service) NotActiveYet(ctx context.Context, abbr string) (*NotActiveYetPage, error) {
	meta, err := s.Store.GetMetadata(ctx, normalizeAbbr(abbr))
	if err != nil {
		return nil, err
	}
	return &NotActiveYetPage{Metadata: meta}, nil
}

// findReport returns the region's report, or nil when it is missing or
// unreadable. Session counts then fall back to zero.
func (s *Service) findReport(ctx context.Context, abbr string) *models.Report {
	if s.Reports == nil {
		return nil
	}
	report, err := s.Reports.FindReport(ctx, abbr)
	if err != nil {
		if !errors.Is(err, models.ErrReportNotFound) {
			s.Logger.Warn("report unavailable, using zero bill counts", zap.String("abbr", abbr), zap.Error(err))
		}
		return nil
	}
	return report
}

func normalizeAbbr(abbr string) string {
	return strings.ToLower(strings.TrimSpace(abbr))
}
