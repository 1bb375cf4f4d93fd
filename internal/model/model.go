// Package model defines domain entities shared by the staging workflow,
// filter controller, and API clients.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Category is the top-level garment category.
type Category string

const (
	CategoryTop      Category = "TOP"
	CategoryBottom   Category = "BOTTOM"
	CategoryOnePiece Category = "ONEPIECE"
)

// Categories enumerates every known category in a stable order.
func Categories() []Category {
	return []Category{CategoryTop, CategoryBottom, CategoryOnePiece}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryOnePiece:
		return true
	}
	return false
}

// GarmentType is the specific garment kind within a category.
type GarmentType string

const (
	TypeBlouse     GarmentType = "BLOUSE"
	TypeCardigan   GarmentType = "CARDIGAN"
	TypeCoat       GarmentType = "COAT"
	TypeJacket     GarmentType = "JACKET"
	TypeJumper     GarmentType = "JUMPER"
	TypeShirt      GarmentType = "SHIRT"
	TypeSweater    GarmentType = "SWEATER"
	TypeTShirt     GarmentType = "TSHIRT"
	TypeVest       GarmentType = "VEST"
	TypeActivewear GarmentType = "ACTIVEWEAR"
	TypeJeans      GarmentType = "JEANS"
	TypePants      GarmentType = "PANTS"
	TypeShorts     GarmentType = "SHORTS"
	TypeSkirt      GarmentType = "SKIRT"
	TypeSlacks     GarmentType = "SLACKS"
	TypeDress      GarmentType = "DRESS"
	TypeJumpsuit   GarmentType = "JUMPSUIT"
)

// GarmentTypes enumerates every known garment type in a stable order.
func GarmentTypes() []GarmentType {
	return []GarmentType{
		TypeBlouse, TypeCardigan, TypeCoat, TypeJacket, TypeJumper,
		TypeShirt, TypeSweater, TypeTShirt, TypeVest, TypeActivewear,
		TypeJeans, TypePants, TypeShorts, TypeSkirt, TypeSlacks,
		TypeDress, TypeJumpsuit,
	}
}

// Valid reports whether t belongs to the closed garment type set.
func (t GarmentType) Valid() bool {
	for _, v := range GarmentTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Pattern is the surface pattern class of a garment.
type Pattern string

const (
	PatternAnimal    Pattern = "ANIMAL"
	PatternArtifact  Pattern = "ARTIFACT"
	PatternCheck     Pattern = "CHECK"
	PatternDot       Pattern = "DOT"
	PatternEtc       Pattern = "ETC"
	PatternEtcNature Pattern = "ETCNATURE"
	PatternGeometric Pattern = "GEOMETRIC"
	PatternPlants    Pattern = "PLANTS"
	PatternStripe    Pattern = "STRIPE"
	PatternSymbol    Pattern = "SYMBOL"
)

// Patterns enumerates every known pattern class in a stable order.
func Patterns() []Pattern {
	return []Pattern{
		PatternAnimal, PatternArtifact, PatternCheck, PatternDot, PatternEtc,
		PatternEtcNature, PatternGeometric, PatternPlants, PatternStripe, PatternSymbol,
	}
}

// Valid reports whether p belongs to the closed pattern set.
func (p Pattern) Valid() bool {
	for _, v := range Patterns() {
		if p == v {
			return true
		}
	}
	return false
}

// Tone is the color tone classification of a garment.
type Tone string

const (
	ToneLight         Tone = "LIGHT"
	ToneDark          Tone = "DARK"
	ToneNotConsidered Tone = "NOT_CONSIDERED"
)

// Tones enumerates every known tone in a stable order.
func Tones() []Tone {
	return []Tone{ToneLight, ToneDark, ToneNotConsidered}
}

// Valid reports whether t belongs to the closed tone set.
func (t Tone) Valid() bool {
	switch t {
	case ToneLight, ToneDark, ToneNotConsidered:
		return true
	}
	return false
}

// Gender of the profile owner.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// SkinTone of the profile owner.
type SkinTone string

const (
	SkinToneWarm    SkinTone = "WARM"
	SkinToneCool    SkinTone = "COOL"
	SkinToneNeutral SkinTone = "NEUTRAL"
)

// Profile holds the user's demographic attributes. It lives in memory until the
// combined profile+wardrobe registration succeeds; afterwards the server copy is
// authoritative.
type Profile struct {
	Age          int
	Gender       Gender
	Height       int // cm
	Weight       int // kg
	SkinTone     SkinTone
	BodyImageURL string // hosted URL of a validated full-body image, optional
}

// Complete reports whether every required field has been filled in.
func (p Profile) Complete() bool {
	return p.Age != 0 && p.Gender != "" && p.Height != 0 && p.Weight != 0 && p.SkinTone != ""
}

// Validate checks field ranges and enum membership.
func (p Profile) Validate() error {
	if p.Age < 10 || p.Age > 100 {
		return fmt.Errorf("validation: age %d out of range [10,100]", p.Age)
	}
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("validation: unknown gender %q", p.Gender)
	}
	if p.Height < 100 || p.Height > 250 {
		return fmt.Errorf("validation: height %d out of range [100,250]", p.Height)
	}
	if p.Weight < 30 || p.Weight > 300 {
		return fmt.Errorf("validation: weight %d out of range [30,300]", p.Weight)
	}
	switch p.SkinTone {
	case SkinToneWarm, SkinToneCool, SkinToneNeutral:
	default:
		return fmt.Errorf("validation: unknown skin tone %q", p.SkinTone)
	}
	return nil
}

// Attributes are the four categorical attributes every wardrobe item carries.
type Attributes struct {
	Category Category
	Type     GarmentType
	Pattern  Pattern
	Tone     Tone
}

// Complete reports whether all four attributes are non-empty. An item is
// eligible for staging only when Complete is true.
func (a Attributes) Complete() bool {
	return a.Category != "" && a.Type != "" && a.Pattern != "" && a.Tone != ""
}

// Validate checks membership of each attribute in its closed set.
func (a Attributes) Validate() error {
	if !a.Category.Valid() {
		return fmt.Errorf("validation: unknown category %q", a.Category)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("validation: unknown garment type %q", a.Type)
	}
	if !a.Pattern.Valid() {
		return fmt.Errorf("validation: unknown pattern %q", a.Pattern)
	}
	if !a.Tone.Valid() {
		return fmt.Errorf("validation: unknown tone %q", a.Tone)
	}
	return nil
}

// StagedItem is one waitlist entry: a locally staged wardrobe item awaiting
// bulk submission. Exactly one of File and HostedURL is set: HostedURL when
// image analysis succeeded, File (the raw image path, resent to the server)
// when it failed.
type StagedItem struct {
	ID         string // local time-ordered identifier, unique within one run
	File       string // path to the raw image file; analysis failed
	HostedURL  string // server-hosted image URL; analysis succeeded
	PreviewRef string // transient local preview reference for display, if any
	Attributes Attributes
}

// NewStagedItemID returns a fresh time-ordered local identifier.
func NewStagedItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}

// ClosetItem is a wardrobe item persisted on the server.
type ClosetItem struct {
	ID         string
	ImageURL   string
	Attributes Attributes
}

// FilterSelection holds the selected values per attribute dimension. An empty
// slice means no constraint on that dimension.
type FilterSelection struct {
	Categories []Category
	Types      []GarmentType
	Patterns   []Pattern
	Tones      []Tone
}

// SelectAll returns a selection covering the full enumerated domain of every
// dimension.
func SelectAll() FilterSelection {
	return FilterSelection{
		Categories: Categories(),
		Types:      GarmentTypes(),
		Patterns:   Patterns(),
		Tones:      Tones(),
	}
}

// Empty reports whether no dimension carries a constraint.
func (f FilterSelection) Empty() bool {
	return len(f.Categories) == 0 && len(f.Types) == 0 && len(f.Patterns) == 0 && len(f.Tones) == 0
}

// SituationRequest describes the situational query submitted for an outfit
// recommendation.
type SituationRequest struct {
	Occasion   string
	Date       time.Time
	Place      string
	ClosetOnly bool // restrict recommendations to owned items
}

// Validate checks the request before any network call. The date must fall
// within [today, today+10 days] relative to now.
func (s SituationRequest) Validate(now time.Time) error {
	if strings.TrimSpace(s.Occasion) == "" {
		return fmt.Errorf("validation: empty occasion")
	}
	if strings.TrimSpace(s.Place) == "" {
		return fmt.Errorf("validation: empty place")
	}
	if s.Date.IsZero() {
		return fmt.Errorf("validation: missing date")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return fmt.Errorf("validation: date %s is in the past", day.Format("2006-01-02"))
	}
	if day.After(today.AddDate(0, 0, 10)) {
		return fmt.Errorf("validation: date %s is more than 10 days ahead", day.Format("2006-01-02"))
	}
	return nil
}

// OutfitContent is a single suggested outfit within a recommendation.
type OutfitContent struct {
	Combination string
	Description string
	ImageURL    string
}

// Recommendation is the backend's answer to a situational query.
type Recommendation struct {
	Summary  string
	Weather  string
	Contents []OutfitContent
}
