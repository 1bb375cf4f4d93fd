package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

func TestAnalyzeBody_SoftRejection(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/profile/image-analysis", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("bodyImage")
		require.NoError(t, err)
		_, _ = w.Write([]byte(`{"warnings":["face not visible","multiple people detected"]}`))
	}), "")

	res, err := c.AnalyzeBody(context.Background(), writeTempImage(t))
	require.NoError(t, err)
	require.True(t, res.Rejected())
	require.Equal(t, []string{"face not visible", "multiple people detected"}, res.Warnings)
	require.Empty(t, res.HostedURL)
}

func TestAnalyzeBody_Success(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"s3Url":"https://cdn/body.jpg","warnings":[]}`))
	}), "")

	res, err := c.AnalyzeBody(context.Background(), writeTempImage(t))
	require.NoError(t, err)
	require.False(t, res.Rejected())
	require.Equal(t, "https://cdn/body.jpg", res.HostedURL)
}

func TestFetchProfile(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/profile", r.URL.Path)
		require.Equal(t, "user-1", r.Header.Get("Fitu-User-UUID"))
		_, _ = w.Write([]byte(`{"data":{"age":25,"gender":"FEMALE","height":165,"weight":55,"skinTone":"NEUTRAL","bodyImageUrl":"https://cdn/body.jpg"}}`))
	}), "user-1")

	p, err := c.FetchProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.Profile{
		Age: 25, Gender: model.GenderFemale, Height: 165, Weight: 55,
		SkinTone: model.SkinToneNeutral, BodyImageURL: "https://cdn/body.jpg",
	}, p)
}

func TestUpdateProfile_PartialBody(t *testing.T) {
	t.Parallel()

	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":null}`))
	}), "user-1")

	height := 170
	skin := model.SkinToneWarm
	err := c.UpdateProfile(context.Background(), ProfileUpdate{Height: &height, SkinTone: &skin})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"height": float64(170), "skinTone": "WARM"}, got)
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommendation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":{"summary":"smart casual for a cool evening","weather":"18C, light breeze","contents":[{"combination":"shirt + slacks","description":"crisp and simple","imageUrl":"https://cdn/o1.jpg"}]}}`))
	}), "user-1")

	req := model.SituationRequest{
		Occasion:   "dinner",
		Date:       mustDate(t, "2026-09-01"),
		Place:      "downtown",
		ClosetOnly: true,
	}
	rec, err := c.Recommend(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, "dinner", got["situation"])
	require.Equal(t, "2026-09-01", got["date"])
	require.Equal(t, "downtown", got["place"])
	require.Equal(t, true, got["useOnlyClosetItems"])

	require.Equal(t, "smart casual for a cool evening", rec.Summary)
	require.Equal(t, "18C, light breeze", rec.Weather)
	require.Len(t, rec.Contents, 1)
	require.Equal(t, "shirt + slacks", rec.Contents[0].Combination)
}

func mustDate(t *testing.T, s string) (d time.Time) {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
