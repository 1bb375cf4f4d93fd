package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	valid := Profile{Age: 25, Gender: GenderFemale, Height: 165, Weight: 55, SkinTone: SkinToneNeutral}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"age too low", func(p *Profile) { p.Age = 9 }},
		{"age too high", func(p *Profile) { p.Age = 101 }},
		{"bad gender", func(p *Profile) { p.Gender = "OTHER" }},
		{"height too low", func(p *Profile) { p.Height = 99 }},
		{"height too high", func(p *Profile) { p.Height = 251 }},
		{"weight too low", func(p *Profile) { p.Weight = 29 }},
		{"weight too high", func(p *Profile) { p.Weight = 301 }},
		{"bad skin tone", func(p *Profile) { p.SkinTone = "OLIVE" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			require.Error(t, p.Validate())
		})
	}
}

func TestAttributes_Complete(t *testing.T) {
	t.Parallel()

	full := Attributes{Category: CategoryTop, Type: TypeShirt, Pattern: PatternStripe, Tone: ToneLight}
	if !full.Complete() {
		t.Fatalf("full attributes should be complete")
	}

	partials := []Attributes{
		{Type: TypeShirt, Pattern: PatternStripe, Tone: ToneLight},
		{Category: CategoryTop, Pattern: PatternStripe, Tone: ToneLight},
		{Category: CategoryTop, Type: TypeShirt, Tone: ToneLight},
		{Category: CategoryTop, Type: TypeShirt, Pattern: PatternStripe},
		{},
	}
	for i, a := range partials {
		if a.Complete() {
			t.Fatalf("partial[%d] should not be complete", i)
		}
	}
}

func TestAttributes_Validate(t *testing.T) {
	t.Parallel()

	ok := Attributes{Category: CategoryBottom, Type: TypeJeans, Pattern: PatternEtc, Tone: ToneDark}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Type = "HOODIE"
	require.Error(t, bad.Validate())
}

func TestEnumDomains(t *testing.T) {
	t.Parallel()

	require.Len(t, Categories(), 3)
	require.Len(t, GarmentTypes(), 17)
	require.Len(t, Patterns(), 10)
	require.Len(t, Tones(), 3)

	for _, c := range Categories() {
		require.True(t, c.Valid())
	}
	for _, g := range GarmentTypes() {
		require.True(t, g.Valid())
	}
	for _, p := range Patterns() {
		require.True(t, p.Valid())
	}
	for _, tn := range Tones() {
		require.True(t, tn.Valid())
	}
}

func TestSelectAll_CoversFullDomain(t *testing.T) {
	t.Parallel()

	sel := SelectAll()
	require.Equal(t, Categories(), sel.Categories)
	require.Equal(t, GarmentTypes(), sel.Types)
	require.Equal(t, Patterns(), sel.Patterns)
	require.Equal(t, Tones(), sel.Tones)
	require.False(t, sel.Empty())
	require.True(t, FilterSelection{}.Empty())
}

func TestSituationRequest_Validate_DateWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	base := SituationRequest{Occasion: "date night", Place: "riverside", ClosetOnly: true}

	tests := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{"today", now, false},
		{"today midnight", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), false},
		{"plus ten days", now.AddDate(0, 0, 10), false},
		{"plus eleven days", now.AddDate(0, 0, 11), true},
		{"yesterday", now.AddDate(0, 0, -1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			s.Date = tc.date
			err := s.Validate(now)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSituationRequest_Validate_RequiredFields(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := SituationRequest{Occasion: " ", Date: now, Place: "park"}
	require.Error(t, s.Validate(now))

	s = SituationRequest{Occasion: "trip", Date: now, Place: "  "}
	require.Error(t, s.Validate(now))

	s = SituationRequest{Occasion: "trip", Place: "park"}
	require.Error(t, s.Validate(now))
}

func TestNewStagedItemID_Unique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewStagedItemID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
