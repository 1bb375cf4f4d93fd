package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

// ClothingAnalysis is the result of the clothing image-analysis call: the
// inferred attributes plus the hosted copy of the uploaded image.
type ClothingAnalysis struct {
	Attributes model.Attributes
	HostedURL  string
}

// AnalyzeClothing submits one clothing image for AI classification. The call
// is best-effort: a failure is recoverable by manual tagging.
func (c *Client) AnalyzeClothing(ctx context.Context, imagePath string) (ClothingAnalysis, error) {
	const op = "analyze clothing"

	f := newForm()
	if err := f.file("clothesImage", imagePath); err != nil {
		return ClothingAnalysis{}, fmt.Errorf("%s: %w", op, err)
	}

	var out struct {
		ImageURL string `json:"imageUrl"`
		wireAttrs
	}
	if err := c.doForm(ctx, op, http.MethodPost, "/clothes/image-analysis", f, &out, false); err != nil {
		return ClothingAnalysis{}, err
	}
	return ClothingAnalysis{
		Attributes: fromWireAttrs(out.wireAttrs),
		HostedURL:  out.ImageURL,
	}, nil
}

// appendItemFields writes one staged item into the registration form. Exactly
// one of the file and hosted-URL parts is present.
func appendItemFields(f *form, i int, it model.StagedItem) error {
	prefix := fmt.Sprintf("clothesItems[%d]", i)
	if it.File != "" {
		if err := f.file(prefix+".clothesImageFile", it.File); err != nil {
			return err
		}
	}
	if it.HostedURL != "" {
		if err := f.field(prefix+".clothesImageUrl", it.HostedURL); err != nil {
			return err
		}
	}
	w := toWireAttrs(it.Attributes)
	for _, kv := range [][2]string{
		{".type", w.Type},
		{".category", w.Category},
		{".pattern", w.Pattern},
		{".color", w.Color},
	} {
		if err := f.field(prefix+kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// RegisterUserWithCloset performs the single combined profile+wardrobe
// registration and returns the newly minted session identifier. The call is
// all-or-nothing: on failure nothing is assumed persisted.
func (c *Client) RegisterUserWithCloset(ctx context.Context, p model.Profile, items []model.StagedItem) (string, error) {
	const op = "register user with closet"

	f := newForm()
	fields := [][2]string{
		{"userProfileInfo.age", fmt.Sprint(p.Age)},
		{"userProfileInfo.gender", string(p.Gender)},
		{"userProfileInfo.height", fmt.Sprint(p.Height)},
		{"userProfileInfo.weight", fmt.Sprint(p.Weight)},
		{"userProfileInfo.skinTone", string(p.SkinTone)},
	}
	if p.BodyImageURL != "" {
		fields = append(fields, [2]string{"userProfileInfo.bodyImageUrl", p.BodyImageURL})
	}
	for _, kv := range fields {
		if err := f.field(kv[0], kv[1]); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}
	for i, it := range items {
		if err := appendItemFields(f, i, it); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	var sessionID string
	if err := c.doForm(ctx, op, http.MethodPost, "/clothes/registration", f, &sessionID, false); err != nil {
		return "", err
	}
	return sessionID, nil
}

// AddClosetItems bulk-registers new items against the existing session.
func (c *Client) AddClosetItems(ctx context.Context, items []model.StagedItem) error {
	const op = "add closet items"

	f := newForm()
	for i, it := range items {
		if err := appendItemFields(f, i, it); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return c.doForm(ctx, op, http.MethodPost, "/clothes", f, nil, true)
}

// ListCloset fetches every persisted wardrobe item.
func (c *Client) ListCloset(ctx context.Context) ([]model.ClosetItem, error) {
	var out []wireClosetItem
	if err := c.do(ctx, "list closet", http.MethodGet, "/clothes", "", nil, true, &out); err != nil {
		return nil, err
	}
	return fromWireClosetItems(out), nil
}

// FilterCloset fetches the items matching the given selection. Empty
// dimensions are unconstrained.
func (c *Client) FilterCloset(ctx context.Context, sel model.FilterSelection) ([]model.ClosetItem, error) {
	var out []wireClosetItem
	if err := c.doJSON(ctx, "filter closet", http.MethodPost, "/clothes/filter", toWireFilter(sel), &out, true); err != nil {
		return nil, err
	}
	return fromWireClosetItems(out), nil
}

// ClosetItemUpdate is a wardrobe item edit. PrevImageURL keeps the current
// hosted image; NewImagePath replaces it with a freshly uploaded file.
type ClosetItemUpdate struct {
	PrevImageURL string
	NewImagePath string
	Attributes   model.Attributes
}

// UpdateClosetItem edits one persisted item.
func (c *Client) UpdateClosetItem(ctx context.Context, id string, upd ClosetItemUpdate) error {
	const op = "update closet item"

	f := newForm()
	if upd.PrevImageURL != "" {
		if err := f.field("prevImage", upd.PrevImageURL); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if upd.NewImagePath != "" {
		if err := f.file("newImage", upd.NewImagePath); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	w := toWireAttrs(upd.Attributes)
	for _, kv := range [][2]string{
		{"type", w.Type},
		{"category", w.Category},
		{"pattern", w.Pattern},
		{"color", w.Color},
	} {
		if err := f.field(kv[0], kv[1]); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return c.doForm(ctx, op, http.MethodPatch, "/clothes/"+id, f, nil, true)
}

// DeleteClosetItem removes one persisted item.
func (c *Client) DeleteClosetItem(ctx context.Context, id string) error {
	return c.do(ctx, "delete closet item", http.MethodDelete, "/clothes/"+id, "", nil, true, nil)
}
