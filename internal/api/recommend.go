package api

import (
	"context"
	"net/http"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

// Recommend submits a situational query and returns the suggested outfits.
// Callers validate the request (date window, non-empty fields) before calling.
func (c *Client) Recommend(ctx context.Context, s model.SituationRequest) (model.Recommendation, error) {
	in := struct {
		Situation          string `json:"situation"`
		Date               string `json:"date"`
		Place              string `json:"place"`
		UseOnlyClosetItems bool   `json:"useOnlyClosetItems"`
	}{
		Situation:          s.Occasion,
		Date:               s.Date.Format("2006-01-02"),
		Place:              s.Place,
		UseOnlyClosetItems: s.ClosetOnly,
	}

	var out struct {
		Summary  string `json:"summary"`
		Weather  string `json:"weather"`
		Contents []struct {
			Combination string `json:"combination"`
			Description string `json:"description"`
			ImageURL    string `json:"imageUrl"`
		} `json:"contents"`
	}
	if err := c.doJSON(ctx, "recommend outfit", http.MethodPost, "/recommendation", in, &out, true); err != nil {
		return model.Recommendation{}, err
	}

	rec := model.Recommendation{Summary: out.Summary, Weather: out.Weather}
	for _, ct := range out.Contents {
		rec.Contents = append(rec.Contents, model.OutfitContent{
			Combination: ct.Combination,
			Description: ct.Description,
			ImageURL:    ct.ImageURL,
		})
	}
	return rec, nil
}
