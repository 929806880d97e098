// Package search holds the two bill search strategies: a substring match
// run by the database and a bleve full-text index kept in process.
package search

import (
	"context"

	"github.com/mohammad-safakhou/capitol/models"
)

const (
	StrategySubstring = "substring"
	StrategyIndex     = "index"
)

// TitleSearcher is the store query used by the substring strategy.
type TitleSearcher interface {
	SearchBillTitles(ctx context.Context, scope, text string, limit int) ([]models.Bill, error)
}

// Substring matches bill titles containing the query, ignoring case.
type Substring struct {
	Store TitleSearcher
}

func NewSubstring(st TitleSearcher) *Substring { return &Substring{Store: st} }

func (s *Substring) SearchBills(ctx context.Context, text, scope string, limit int) ([]models.Bill, error) {
	return s.Store.SearchBillTitles(ctx, scope, text, limit)
}

func (s *Substring) Strategy() string { return StrategySubstring }
