// Package closet implements the wardrobe staging workflow: items are
// accumulated locally on a waitlist and flushed to the backend in one bulk
// submission.
package closet

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/errs"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/preview"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/upload"
)

// minPairs is the minimum number of top/bottom pairs a new registration needs.
const minPairs = 3

// Registrar is the slice of the API client the workflow submits through.
type Registrar interface {
	RegisterUserWithCloset(ctx context.Context, p model.Profile, items []model.StagedItem) (string, error)
	AddClosetItems(ctx context.Context, items []model.StagedItem) error
}

// Session is the slice of the session store the workflow reads and writes.
type Session interface {
	SessionID() (string, bool)
	SetSessionID(id string) error
	Profile() model.Profile
}

// Stager is the upload capability the workflow consumes: a snapshot of the
// pending image and a reset command invoked once the item is staged.
type Stager interface {
	Snapshot() (upload.Pending, bool)
	Reset() error
}

// Direction of a finalize navigation.
type Direction int

const (
	// Back leaves the registration flow toward the profile page. Backward
	// navigation is never blocked by forward-flow validation.
	Back Direction = iota
	// Forward completes the flow: registration for new users, bulk add for
	// returning ones.
	Forward
)

// Outcome reports what Finalize did.
type Outcome int

const (
	// OutcomeBack means no submission happened; navigate backward.
	OutcomeBack Outcome = iota
	// OutcomeRegistered means the combined profile+wardrobe registration
	// succeeded and a session identity was stored.
	OutcomeRegistered
	// OutcomeAdded means the staged items were added to the existing closet.
	OutcomeAdded
)

// Waitlist is the ordered sequence of staged items. Insertion order is
// preserved for display; it carries no business meaning.
type Waitlist struct {
	items    []model.StagedItem
	previews preview.Store
	session  Session
	reg      Registrar
	log      *zap.Logger
}

// New constructs an empty waitlist.
func New(previews preview.Store, session Session, reg Registrar, log *zap.Logger) *Waitlist {
	return &Waitlist{previews: previews, session: session, reg: reg, log: log}
}

// Add stages the pending upload with the given attributes. It fails without
// mutation unless an image is pending and all four attributes are non-empty.
// On success the entry gets a fresh local identifier, the upload state is
// reset through the Stager capability, and the waitlist grows by exactly one.
func (w *Waitlist) Add(st Stager, attrs model.Attributes) (model.StagedItem, error) {
	pending, ok := st.Snapshot()
	if !ok {
		return model.StagedItem{}, errs.ErrImageRequired
	}
	if !attrs.Complete() {
		return model.StagedItem{}, errs.ErrIncompleteAttributes
	}
	if err := attrs.Validate(); err != nil {
		return model.StagedItem{}, err
	}

	item := model.StagedItem{
		ID:         model.NewStagedItemID(),
		Attributes: attrs,
	}
	if pending.AnalysisOK {
		item.HostedURL = pending.HostedURL
	} else {
		// Analysis failed: the raw file goes to the server, and the waitlist
		// keeps its own preview copy so the entry stays visible after the
		// upload state is reset.
		item.File = pending.FilePath
		f, err := os.Open(pending.FilePath)
		if err != nil {
			return model.StagedItem{}, fmt.Errorf("reopen image: %w", err)
		}
		ref, err := w.previews.Create(f, pending.FilePath)
		_ = f.Close()
		if err != nil {
			return model.StagedItem{}, fmt.Errorf("stage preview: %w", err)
		}
		item.PreviewRef = ref
	}

	w.items = append(w.items, item)
	if err := st.Reset(); err != nil {
		w.log.Warn("reset upload state", zap.Error(err))
	}
	return item, nil
}

// Remove deletes exactly one entry by identifier and releases its preview.
func (w *Waitlist) Remove(id string) error {
	for i, it := range w.items {
		if it.ID != id {
			continue
		}
		if it.PreviewRef != "" {
			if err := w.previews.Release(it.PreviewRef); err != nil {
				w.log.Warn("release staged preview", zap.Error(err))
			}
		}
		w.items = append(w.items[:i], w.items[i+1:]...)
		return nil
	}
	return errs.ErrNotFound
}

// Items returns a copy of the staged entries in insertion order.
func (w *Waitlist) Items() []model.StagedItem {
	return append([]model.StagedItem(nil), w.items...)
}

// Len returns the number of staged entries.
func (w *Waitlist) Len() int { return len(w.items) }

// CheckRequirements reports whether the minimum-viable-set rule holds:
// at least minPairs tops and minPairs bottoms. It gates a new registration
// only; incremental additions to an existing closet need any non-empty
// waitlist.
func (w *Waitlist) CheckRequirements() bool {
	var tops, bottoms int
	for _, it := range w.items {
		switch it.Attributes.Category {
		case model.CategoryTop:
			tops++
		case model.CategoryBottom:
			bottoms++
		}
	}
	return min(tops, bottoms) >= minPairs
}

// Finalize submits the waitlist. Behavior branches on session state and
// direction:
//
//   - existing session, non-empty waitlist: bulk-add against the session;
//   - existing session, empty waitlist: errs.ErrEmptyWaitlist;
//   - no session, Back: proceed unconditionally, nothing submitted;
//   - no session, Forward: requires CheckRequirements, then one combined
//     profile+wardrobe registration whose returned identity is stored.
//
// Submission is all-or-nothing: on error the waitlist and session state are
// left untouched and the user resubmits from scratch.
func (w *Waitlist) Finalize(ctx context.Context, dir Direction) (Outcome, error) {
	if _, ok := w.session.SessionID(); ok {
		if len(w.items) == 0 {
			return 0, errs.ErrEmptyWaitlist
		}
		if err := w.reg.AddClosetItems(ctx, w.items); err != nil {
			return 0, err
		}
		w.flush()
		return OutcomeAdded, nil
	}

	if dir == Back {
		return OutcomeBack, nil
	}

	if !w.CheckRequirements() {
		return 0, errs.ErrRequirementsNotMet
	}
	profile := w.session.Profile()
	if err := profile.Validate(); err != nil {
		return 0, err
	}
	id, err := w.reg.RegisterUserWithCloset(ctx, profile, w.items)
	if err != nil {
		return 0, err
	}
	if err := w.session.SetSessionID(id); err != nil {
		return 0, fmt.Errorf("store session: %w", err)
	}
	w.flush()
	return OutcomeRegistered, nil
}

// flush clears the waitlist after a successful submission, releasing every
// staged preview exactly once.
func (w *Waitlist) flush() {
	for _, it := range w.items {
		if it.PreviewRef == "" {
			continue
		}
		if err := w.previews.Release(it.PreviewRef); err != nil {
			w.log.Warn("release staged preview", zap.Error(err))
		}
	}
	w.items = nil
}
