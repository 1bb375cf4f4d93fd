// Package upload manages the single in-progress image upload: preview
// lifecycle, the one analysis call per accepted image, and the attribute state
// derived from it.
package upload

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/api"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/errs"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/preview"
)

// Analyzer is the external clothing-analysis call.
type Analyzer interface {
	AnalyzeClothing(ctx context.Context, imagePath string) (api.ClothingAnalysis, error)
}

// Pending is a snapshot of the current upload, consumed by the staging
// workflow when the user confirms the item.
type Pending struct {
	FilePath   string
	HostedURL  string
	PreviewRef string
	Analyzed   bool
	AnalysisOK bool
	Attributes model.Attributes
}

// Uploader holds at most one image at a time. Accepting an image triggers
// exactly one analysis call; while it is in flight, further uploads and
// removal are rejected. On success the local preview is released and replaced
// by the hosted URL; on failure the preview is kept so the user still sees
// their image and the raw file is sent to the server instead.
type Uploader struct {
	mu       sync.Mutex
	previews preview.Store
	analyze  Analyzer
	log      *zap.Logger

	filePath   string
	hostedURL  string
	previewRef string
	analyzing  bool
	analyzed   bool
	analysisOK bool
	attrs      model.Attributes
}

// New constructs an Uploader.
func New(previews preview.Store, analyzer Analyzer, log *zap.Logger) *Uploader {
	return &Uploader{previews: previews, analyze: analyzer, log: log}
}

// Accept ingests an image from the file picker. Any prior preview is released
// before the new one is created. Returns errs.ErrUploadBusy while an analysis
// is in flight, and errs.ErrAnalysisFailed (wrapped) when the analysis call
// fails; in the latter case the image stays staged for manual tagging.
func (u *Uploader) Accept(ctx context.Context, path string) error {
	if err := u.stage(path); err != nil {
		return err
	}
	return u.runAnalysis(ctx, path)
}

// Drop ingests an image from drag-and-drop. Unlike the picker, a drop is
// silently ignored while an image is already present or an analysis is in
// flight.
func (u *Uploader) Drop(ctx context.Context, path string) error {
	u.mu.Lock()
	if u.analyzing || u.previewRef != "" || u.hostedURL != "" {
		u.mu.Unlock()
		u.log.Debug("drop ignored", zap.String("path", path))
		return nil
	}
	u.mu.Unlock()

	if err := u.stage(path); err != nil {
		return err
	}
	return u.runAnalysis(ctx, path)
}

// stage swaps the pending image for the file at path.
func (u *Uploader) stage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.analyzing {
		return errs.ErrUploadBusy
	}
	if u.previewRef != "" {
		if err := u.previews.Release(u.previewRef); err != nil {
			u.log.Warn("release previous preview", zap.Error(err))
		}
		u.previewRef = ""
	}
	ref, err := u.previews.Create(f, path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	u.previewRef = ref
	u.filePath = path
	u.hostedURL = ""
	u.analyzed = false
	u.analysisOK = false
	u.attrs = model.Attributes{}
	return nil
}

// runAnalysis performs the single analysis call for the staged image.
func (u *Uploader) runAnalysis(ctx context.Context, path string) error {
	u.mu.Lock()
	u.analyzing = true
	u.mu.Unlock()

	res, err := u.analyze.AnalyzeClothing(ctx, path)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.analyzing = false
	u.analyzed = true
	if err != nil {
		u.analysisOK = false
		u.log.Warn("clothing analysis failed", zap.Error(err))
		return fmt.Errorf("%w: %w", errs.ErrAnalysisFailed, err)
	}
	u.analysisOK = true
	// The hosted copy supersedes the local preview; release it now.
	if u.previewRef != "" {
		if err := u.previews.Release(u.previewRef); err != nil {
			u.log.Warn("release analyzed preview", zap.Error(err))
		}
		u.previewRef = ""
	}
	u.filePath = ""
	u.hostedURL = res.HostedURL
	u.attrs = res.Attributes
	return nil
}

// Remove discards the pending image on explicit user action, releasing the
// preview and clearing all derived attribute state.
func (u *Uploader) Remove() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.analyzing {
		return errs.ErrUploadBusy
	}
	u.clearLocked()
	return nil
}

// Reset is the capability the staging workflow invokes after it has copied
// the pending state into a waitlist entry.
func (u *Uploader) Reset() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.analyzing {
		return errs.ErrUploadBusy
	}
	u.clearLocked()
	return nil
}

func (u *Uploader) clearLocked() {
	if u.previewRef != "" {
		if err := u.previews.Release(u.previewRef); err != nil {
			u.log.Warn("release preview", zap.Error(err))
		}
	}
	u.previewRef = ""
	u.filePath = ""
	u.hostedURL = ""
	u.analyzed = false
	u.analysisOK = false
	u.attrs = model.Attributes{}
}

// Snapshot returns the pending upload, and whether one exists.
func (u *Uploader) Snapshot() (Pending, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.previewRef == "" && u.hostedURL == "" {
		return Pending{}, false
	}
	return Pending{
		FilePath:   u.filePath,
		HostedURL:  u.hostedURL,
		PreviewRef: u.previewRef,
		Analyzed:   u.analyzed,
		AnalysisOK: u.analysisOK,
		Attributes: u.attrs,
	}, true
}

// Analyzing reports whether the analysis call is in flight.
func (u *Uploader) Analyzing() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.analyzing
}

// HasImage reports whether an image is currently staged.
func (u *Uploader) HasImage() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.previewRef != "" || u.hostedURL != ""
}

// Attributes returns the current attribute state.
func (u *Uploader) Attributes() model.Attributes {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.attrs
}

// SetAttributes replaces the attribute state; used for manual tagging and for
// correcting the inferred values.
func (u *Uploader) SetAttributes(a model.Attributes) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.attrs = a
}
