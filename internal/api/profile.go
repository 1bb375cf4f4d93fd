package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

// BodyAnalysis is the result of the full-body image validation call. A
// non-empty Warnings list is a soft rejection: the image is unusable but the
// call itself succeeded, and the reasons are meant for the user.
type BodyAnalysis struct {
	HostedURL string   `json:"s3Url"`
	Warnings  []string `json:"warnings"`
}

// Rejected reports whether the image was softly rejected.
func (b BodyAnalysis) Rejected() bool { return len(b.Warnings) > 0 }

// AnalyzeBody submits one full-body image for validation.
func (c *Client) AnalyzeBody(ctx context.Context, imagePath string) (BodyAnalysis, error) {
	const op = "analyze body image"

	f := newForm()
	if err := f.file("bodyImage", imagePath); err != nil {
		return BodyAnalysis{}, fmt.Errorf("%s: %w", op, err)
	}

	var out BodyAnalysis
	if err := c.doForm(ctx, op, http.MethodPost, "/user/profile/image-analysis", f, &out, false); err != nil {
		return BodyAnalysis{}, err
	}
	return out, nil
}

// FetchProfile reads the server copy of the profile.
func (c *Client) FetchProfile(ctx context.Context) (model.Profile, error) {
	var out wireProfile
	if err := c.do(ctx, "fetch profile", http.MethodGet, "/user/profile", "", nil, true, &out); err != nil {
		return model.Profile{}, err
	}
	return fromWireProfile(out), nil
}

// ProfileUpdate is a partial profile edit; nil fields are left untouched.
type ProfileUpdate struct {
	Age          *int
	Gender       *model.Gender
	Height       *int
	Weight       *int
	SkinTone     *model.SkinTone
	BodyImageURL *string
}

func (u ProfileUpdate) wire() map[string]any {
	w := map[string]any{}
	if u.Age != nil {
		w["age"] = *u.Age
	}
	if u.Gender != nil {
		w["gender"] = string(*u.Gender)
	}
	if u.Height != nil {
		w["height"] = *u.Height
	}
	if u.Weight != nil {
		w["weight"] = *u.Weight
	}
	if u.SkinTone != nil {
		w["skinTone"] = string(*u.SkinTone)
	}
	if u.BodyImageURL != nil {
		w["bodyImageUrl"] = *u.BodyImageURL
	}
	return w
}

// UpdateProfile applies a partial profile edit.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	return c.doJSON(ctx, "update profile", http.MethodPatch, "/user/profile", upd.wire(), nil, true)
}
