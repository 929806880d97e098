package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"
	"github.com/mohammad-safakhou/capitol/models"
	"go.uber.org/zap"
)

// ErrIndexNotReady is returned by searches before the first rebuild.
var ErrIndexNotReady = errors.New("search index not built yet")

const batchSize = 500

// BillSource streams every bill for a rebuild.
type BillSource interface {
	ForEachBill(ctx context.Context, fn func(models.Bill) error) error
}

// BillLoader resolves index hits back to full bills, keeping hit order.
type BillLoader interface {
	BillsByIDs(ctx context.Context, ids []string) ([]models.Bill, error)
}

// billDoc is the indexed projection of a bill.
type billDoc struct {
	Title   string `json:"title"`
	State   string `json:"state"`
	Session string `json:"session"`
	BillID  string `json:"bill_id"`
}

// Index is a bleve full-text index over bill titles. Rebuild constructs a
// fresh index and swaps it in, so searches never observe a partial one.
type Index struct {
	source BillSource
	loader BillLoader
	dir    string
	logger *zap.Logger

	rebuildMu sync.Mutex
	mu        sync.RWMutex
	idx       bleve.Index
	idxPath   string
}

// NewIndex builds an index over source. dir is where on-disk generations
// are written; an empty dir keeps the index in memory.
func NewIndex(source BillSource, loader BillLoader, dir string, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{source: source, loader: loader, dir: dir, logger: logger}
}

func newBillMapping() mapping.IndexMapping {
	exact := bleve.NewTextFieldMapping()
	exact.Analyzer = keyword.Name
	title := bleve.NewTextFieldMapping()

	bill := bleve.NewDocumentMapping()
	bill.AddFieldMappingsAt("title", title)
	bill.AddFieldMappingsAt("state", exact)
	bill.AddFieldMappingsAt("session", exact)
	bill.AddFieldMappingsAt("bill_id", exact)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = bill
	return im
}

func (x *Index) open() (bleve.Index, string, error) {
	if x.dir == "" {
		idx, err := bleve.NewMemOnly(newBillMapping())
		return idx, "", err
	}
	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return nil, "", err
	}
	path := filepath.Join(x.dir, fmt.Sprintf("bills-%d", time.Now().UnixNano()))
	idx, err := bleve.New(path, newBillMapping())
	return idx, path, err
}

// Rebuild indexes every bill from the source and replaces the live index.
// It returns the number of documents indexed.
func (x *Index) Rebuild(ctx context.Context) (int, error) {
	x.rebuildMu.Lock()
	defer x.rebuildMu.Unlock()

	started := time.Now()
	next, path, err := x.open()
	if err != nil {
		indexRebuilds.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("open index: %w", err)
	}
	discard := func() {
		_ = next.Close()
		if path != "" {
			_ = os.RemoveAll(path)
		}
	}

	count := 0
	batch := next.NewBatch()
	err = x.source.ForEachBill(ctx, func(b models.Bill) error {
		if err := batch.Index(b.ID, billDoc{
			Title:   b.Title,
			State:   strings.ToLower(b.State),
			Session: b.Session,
			BillID:  b.BillID,
		}); err != nil {
			return err
		}
		count++
		if batch.Size() >= batchSize {
			if err := next.Batch(batch); err != nil {
				return err
			}
			batch.Reset()
		}
		return ctx.Err()
	})
	if err == nil && batch.Size() > 0 {
		err = next.Batch(batch)
	}
	if err != nil {
		discard()
		indexRebuilds.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	x.mu.Lock()
	prev, prevPath := x.idx, x.idxPath
	x.idx, x.idxPath = next, path
	x.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
		if prevPath != "" {
			_ = os.RemoveAll(prevPath)
		}
	}

	indexDocuments.Set(float64(count))
	indexRebuilds.WithLabelValues("ok").Inc()
	x.logger.Info("bill index rebuilt", zap.Int("documents", count), zap.Duration("took", time.Since(started)))
	return count, nil
}

// SearchBills ranks bills by title relevance and loads the top hits.
func (x *Index) SearchBills(ctx context.Context, text, scope string, limit int) ([]models.Bill, error) {
	var q query.Query
	if strings.TrimSpace(text) == "" {
		q = bleve.NewMatchAllQuery()
	} else {
		mq := bleve.NewMatchQuery(text)
		mq.SetField("title")
		q = mq
	}
	if scope != models.AllRegions {
		tq := bleve.NewTermQuery(strings.ToLower(scope))
		tq.SetField("state")
		q = bleve.NewConjunctionQuery(q, tq)
	}

	x.mu.RLock()
	if x.idx == nil {
		x.mu.RUnlock()
		return nil, ErrIndexNotReady
	}
	res, err := x.idx.Search(bleve.NewSearchRequestOptions(q, limit, 0, false))
	x.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("index search %q: %w", text, err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return x.loader.BillsByIDs(ctx, ids)
}

func (x *Index) Strategy() string { return StrategyIndex }

// DocCount reports how many bills the live index holds.
func (x *Index) DocCount() (uint64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.idx == nil {
		return 0, ErrIndexNotReady
	}
	return x.idx.DocCount()
}

func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.idx == nil {
		return nil
	}
	err := x.idx.Close()
	x.idx = nil
	return err
}
