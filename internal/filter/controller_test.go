package filter

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

type fakeQuerier struct {
	mu          sync.Mutex
	listCalls   int
	filterCalls int
	selections  []model.FilterSelection
	items       []model.ClosetItem
	err         error
	// perCall, when set, overrides items for the nth filter call (1-based).
	perCall map[int][]model.ClosetItem
}

func (f *fakeQuerier) ListCloset(context.Context) ([]model.ClosetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.items, f.err
}

func (f *fakeQuerier) FilterCloset(_ context.Context, sel model.FilterSelection) ([]model.ClosetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filterCalls++
	f.selections = append(f.selections, sel)
	if f.err != nil {
		return nil, f.err
	}
	if items, ok := f.perCall[f.filterCalls]; ok {
		return items, nil
	}
	return f.items, nil
}

func (f *fakeQuerier) stats() (list, filter int, sels []model.FilterSelection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.filterCalls, append([]model.FilterSelection(nil), f.selections...)
}

func closetItem(id string) model.ClosetItem {
	return model.ClosetItem{
		ID:       id,
		ImageURL: "https://cdn/" + id + ".jpg",
		Attributes: model.Attributes{
			Category: model.CategoryTop, Type: model.TypeShirt,
			Pattern: model.PatternDot, Tone: model.ToneLight,
		},
	}
}

// longWindow keeps the timer from firing on its own; tests drive the
// controller through Flush for determinism.
const longWindow = time.Hour

func TestLoad_FetchesUnfilteredImmediately(t *testing.T) {
	t.Parallel()
	q := &fakeQuerier{items: []model.ClosetItem{closetItem("1"), closetItem("2")}}
	c := New(context.Background(), q, longWindow, zap.NewNop())
	defer c.Close()

	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	list, filter, _ := q.stats()
	if list != 1 || filter != 0 {
		t.Fatalf("list=%d filter=%d, want 1/0", list, filter)
	}
	if got := c.Results(); len(got) != 2 {
		t.Fatalf("results = %d items, want 2", len(got))
	}
}

func TestMutationsInWindowCoalesceIntoOneQuery(t *testing.T) {
	t.Parallel()
	q := &fakeQuerier{}
	c := New(context.Background(), q, longWindow, zap.NewNop())
	defer c.Close()

	c.SetCategories([]model.Category{model.CategoryTop})
	c.SetTypes([]model.GarmentType{model.TypeShirt, model.TypeBlouse})
	c.SetTones([]model.Tone{model.ToneDark})
	c.Flush()

	_, filter, sels := q.stats()
	if filter != 1 {
		t.Fatalf("filter calls = %d, want exactly 1", filter)
	}
	want := model.FilterSelection{
		Categories: []model.Category{model.CategoryTop},
		Types:      []model.GarmentType{model.TypeShirt, model.TypeBlouse},
		Tones:      []model.Tone{model.ToneDark},
	}
	if !reflect.DeepEqual(sels[0], want) {
		t.Fatalf("query carried %+v, want every mutation in one selection %+v", sels[0], want)
	}
}

func TestSetAllFilters_SelectAllAndReset(t *testing.T) {
	t.Parallel()
	q := &fakeQuerier{}
	c := New(context.Background(), q, longWindow, zap.NewNop())
	defer c.Close()

	c.SetAllFilters(model.SelectAll())
	c.Flush()
	_, _, sels := q.stats()
	got := sels[len(sels)-1]
	if len(got.Categories) != len(model.Categories()) ||
		len(got.Types) != len(model.GarmentTypes()) ||
		len(got.Patterns) != len(model.Patterns()) ||
		len(got.Tones) != len(model.Tones()) {
		t.Fatalf("select-all query missing dimensions: %+v", got)
	}

	c.SetAllFilters(model.FilterSelection{})
	c.Flush()
	_, _, sels = q.stats()
	got = sels[len(sels)-1]
	if !got.Empty() {
		t.Fatalf("reset query must carry the empty selection, got %+v", got)
	}
	if sel := c.Selection(); !sel.Empty() {
		t.Fatalf("selection after reset = %+v, want empty", sel)
	}
}

func TestFlushAppliesResults(t *testing.T) {
	t.Parallel()
	q := &fakeQuerier{items: []model.ClosetItem{closetItem("7")}}
	c := New(context.Background(), q, longWindow, zap.NewNop())
	defer c.Close()

	c.SetPatterns([]model.Pattern{model.PatternStripe})
	c.Flush()

	got := c.Results()
	if len(got) != 1 || got[0].ID != "7" {
		t.Fatalf("results = %+v", got)
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	t.Parallel()
	q := &fakeQuerier{perCall: map[int][]model.ClosetItem{
		1: {closetItem("new")},
		2: {closetItem("old")},
	}}
	c := New(context.Background(), q, longWindow, zap.NewNop())
	defer c.Close()

	// The second-issued query responds first; the slow first one lands after
	// and must be dropped rather than overwrite the fresher results.
	c.mu.Lock()
	c.issued = 2
	c.mu.Unlock()

	c.wg.Add(1)
	c.run(2, model.FilterSelection{Tones: []model.Tone{model.ToneDark}})
	c.wg.Add(1)
	c.run(1, model.FilterSelection{})

	got := c.Results()
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("stale response overwrote fresher results: %+v", got)
	}
}

func TestQueryFailureRecordedAndCleared(t *testing.T) {
	t.Parallel()
	q := &fakeQuerier{err: errors.New("backend unavailable")}
	c := New(context.Background(), q, longWindow, zap.NewNop())
	defer c.Close()

	c.SetTones([]model.Tone{model.ToneLight})
	c.Flush()
	if err := c.Err(); err == nil {
		t.Fatal("want recorded query error")
	}

	q.mu.Lock()
	q.err = nil
	q.items = []model.ClosetItem{closetItem("9")}
	q.mu.Unlock()

	c.SetTones([]model.Tone{model.ToneDark})
	c.Flush()
	if err := c.Err(); err != nil {
		t.Fatalf("error must clear on the next success, got %v", err)
	}
	if got := c.Results(); len(got) != 1 {
		t.Fatalf("results = %+v", got)
	}
}

func TestClose_DropsPendingQuery(t *testing.T) {
	t.Parallel()
	q := &fakeQuerier{}
	c := New(context.Background(), q, longWindow, zap.NewNop())

	c.SetCategories([]model.Category{model.CategoryBottom})
	c.Close()

	_, filter, _ := q.stats()
	if filter != 0 {
		t.Fatalf("filter calls = %d, want 0 after Close", filter)
	}
}

func TestDebouncer_CoalescesAndFires(t *testing.T) {
	t.Parallel()
	d := newDebouncer(20 * time.Millisecond)

	fired := make(chan int, 2)
	d.trigger(func() { fired <- 1 })
	d.trigger(func() { fired <- 2 })

	select {
	case got := <-fired:
		if got != 2 {
			t.Fatalf("fired callback %d, want the latest (2)", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case got := <-fired:
		t.Fatalf("second callback %d fired, want coalescing", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_CancelDropsPending(t *testing.T) {
	t.Parallel()
	d := newDebouncer(10 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.trigger(func() { fired <- struct{}{} })
	d.cancel()

	select {
	case <-fired:
		t.Fatal("cancelled callback fired")
	case <-time.After(100 * time.Millisecond):
	}
}
