package api

import (
	"encoding/json"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
)

// The server vocabulary transposes the client's category and type fields
// (client category -> server "type", client type -> server "category") and
// names the tone "color". Every API boundary maps through the helpers in this
// file; no call site re-derives the transposition.

// wireAttrs is an item's attributes in server vocabulary.
type wireAttrs struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Pattern  string `json:"pattern"`
	Color    string `json:"color"`
}

func toWireAttrs(a model.Attributes) wireAttrs {
	return wireAttrs{
		Type:     string(a.Category),
		Category: string(a.Type),
		Pattern:  string(a.Pattern),
		Color:    string(a.Tone),
	}
}

func fromWireAttrs(w wireAttrs) model.Attributes {
	return model.Attributes{
		Category: model.Category(w.Type),
		Type:     model.GarmentType(w.Category),
		Pattern:  model.Pattern(w.Pattern),
		Tone:     model.Tone(w.Color),
	}
}

// wireFilter is a filtered-query request body in server vocabulary.
type wireFilter struct {
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
	Patterns   []string `json:"patterns"`
	Colors     []string `json:"colors"`
}

func toWireFilter(f model.FilterSelection) wireFilter {
	w := wireFilter{
		Categories: make([]string, 0, len(f.Types)),
		Types:      make([]string, 0, len(f.Categories)),
		Patterns:   make([]string, 0, len(f.Patterns)),
		Colors:     make([]string, 0, len(f.Tones)),
	}
	for _, t := range f.Types {
		w.Categories = append(w.Categories, string(t))
	}
	for _, c := range f.Categories {
		w.Types = append(w.Types, string(c))
	}
	for _, p := range f.Patterns {
		w.Patterns = append(w.Patterns, string(p))
	}
	for _, t := range f.Tones {
		w.Colors = append(w.Colors, string(t))
	}
	return w
}

// wireClosetItem is a persisted wardrobe item as the server renders it.
type wireClosetItem struct {
	ClothesID       json.Number `json:"clothesId"`
	ClothesImageURL string      `json:"clothesImageUrl"`
	wireAttrs
}

func fromWireClosetItem(w wireClosetItem) model.ClosetItem {
	return model.ClosetItem{
		ID:         w.ClothesID.String(),
		ImageURL:   w.ClothesImageURL,
		Attributes: fromWireAttrs(w.wireAttrs),
	}
}

func fromWireClosetItems(ws []wireClosetItem) []model.ClosetItem {
	items := make([]model.ClosetItem, 0, len(ws))
	for _, w := range ws {
		items = append(items, fromWireClosetItem(w))
	}
	return items
}

// wireProfile is the profile resource; its field names are not transposed.
type wireProfile struct {
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	Height       int    `json:"height"`
	Weight       int    `json:"weight"`
	SkinTone     string `json:"skinTone"`
	BodyImageURL string `json:"bodyImageUrl,omitempty"`
}

func fromWireProfile(w wireProfile) model.Profile {
	return model.Profile{
		Age:          w.Age,
		Gender:       model.Gender(w.Gender),
		Height:       w.Height,
		Weight:       w.Weight,
		SkinTone:     model.SkinTone(w.SkinTone),
		BodyImageURL: w.BodyImageURL,
	}
}
