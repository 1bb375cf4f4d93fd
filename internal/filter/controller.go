// Package filter implements the closet filter controller: a multi-select
// faceted filter over the four attribute dimensions, with a debounced remote
// re-query on every mutation.
package filter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

// Querier is the slice of the API client the controller fetches through.
type Querier interface {
	ListCloset(ctx context.Context) ([]model.ClosetItem, error)
	FilterCloset(ctx context.Context, sel model.FilterSelection) ([]model.ClosetItem, error)
}

// Controller holds the current selection and the last fetched result list.
// Filtering is always delegated to the backend; there is no client-side
// incremental filtering. Each query carries a sequence number, and a response
// is dropped when a newer query has already been applied, so a slow early
// response can never overwrite fresher results.
type Controller struct {
	mu      sync.Mutex
	ctx     context.Context
	query   Querier
	deb     *debouncer
	log     *zap.Logger
	sel     model.FilterSelection
	results []model.ClosetItem
	lastErr error
	issued  uint64 // sequence of the most recently issued query
	applied uint64 // sequence of the most recently applied response
	wg      sync.WaitGroup
}

// New constructs a Controller. ctx bounds the lifetime of the background
// queries the debouncer fires.
func New(ctx context.Context, q Querier, window time.Duration, log *zap.Logger) *Controller {
	return &Controller{
		ctx:   ctx,
		query: q,
		deb:   newDebouncer(window),
		log:   log,
	}
}

// Load fetches the unfiltered closet list immediately, bypassing the
// debouncer. Used on first display.
func (c *Controller) Load() error {
	items, err := c.query.ListCloset(c.ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.results = items
	c.lastErr = nil
	return nil
}

// SetCategories replaces the category selection; empty means unconstrained.
func (c *Controller) SetCategories(vals []model.Category) {
	c.mu.Lock()
	c.sel.Categories = append([]model.Category(nil), vals...)
	c.mu.Unlock()
	c.schedule()
}

// SetTypes replaces the garment-type selection.
func (c *Controller) SetTypes(vals []model.GarmentType) {
	c.mu.Lock()
	c.sel.Types = append([]model.GarmentType(nil), vals...)
	c.mu.Unlock()
	c.schedule()
}

// SetPatterns replaces the pattern selection.
func (c *Controller) SetPatterns(vals []model.Pattern) {
	c.mu.Lock()
	c.sel.Patterns = append([]model.Pattern(nil), vals...)
	c.mu.Unlock()
	c.schedule()
}

// SetTones replaces the tone selection.
func (c *Controller) SetTones(vals []model.Tone) {
	c.mu.Lock()
	c.sel.Tones = append([]model.Tone(nil), vals...)
	c.mu.Unlock()
	c.schedule()
}

// SetAllFilters atomically replaces all four dimensions in one operation.
// "Select all" passes model.SelectAll(); "reset" passes the zero selection.
// The bulk swap never interleaves with a partial per-dimension update.
func (c *Controller) SetAllFilters(sel model.FilterSelection) {
	c.mu.Lock()
	c.sel = sel
	c.mu.Unlock()
	c.schedule()
}

// Selection returns the current selection.
func (c *Controller) Selection() model.FilterSelection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// Results returns the last applied result list.
func (c *Controller) Results() []model.ClosetItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.ClosetItem(nil), c.results...)
}

// Err returns the error of the most recent query, if it failed.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Flush forces any pending debounced query to run now and waits for every
// in-flight query to settle. Used by the CLI before rendering and by tests.
func (c *Controller) Flush() {
	c.deb.flush()
	c.wg.Wait()
}

// Close drops any pending query without running it.
func (c *Controller) Close() {
	c.deb.cancel()
	c.wg.Wait()
}

// schedule arms the debouncer; the selection is snapshotted when the window
// elapses, so rapid mutations collapse into one query carrying all of them.
func (c *Controller) schedule() {
	c.deb.trigger(func() {
		c.mu.Lock()
		sel := c.sel
		c.issued++
		seq := c.issued
		c.mu.Unlock()

		c.wg.Add(1)
		go c.run(seq, sel)
	})
}

// run issues one filtered query and applies the response unless it is stale.
func (c *Controller) run(seq uint64, sel model.FilterSelection) {
	defer c.wg.Done()
	items, err := c.query.FilterCloset(c.ctx, sel)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.applied {
		c.log.Debug("stale filter response dropped", zap.Uint64("seq", seq))
		return
	}
	if err != nil {
		c.lastErr = err
		c.log.Warn("filter query failed", zap.Error(err))
		return
	}
	c.applied = seq
	c.results = items
	c.lastErr = nil
}
