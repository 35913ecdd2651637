package domain

import (
	"errors"
	"testing"
)

func TestBuildFilter_CategoryResolution(t *testing.T) {
	tests := []struct {
		name         string
		in           FilterInput
		wantCategory Category
		wantQuery    string
	}{
		{
			name:         "exact category accepted",
			in:           FilterInput{Category: "Farms"},
			wantCategory: CategoryFarms,
		},
		{
			name:         "category is case sensitive",
			in:           FilterInput{Category: "farms"},
			wantCategory: "",
		},
		{
			name:         "unknown category dropped",
			in:           FilterInput{Category: "Penthouses"},
			wantCategory: "",
		},
		{
			name:         "query promoted to category case-insensitively",
			in:           FilterInput{Query: "farms"},
			wantCategory: CategoryFarms,
			wantQuery:    "",
		},
		{
			name:         "multi-word query promoted",
			in:           FilterInput{Query: "iconic CITIES"},
			wantCategory: CategoryIconicCities,
			wantQuery:    "",
		},
		{
			name:         "explicit category wins, query stays text",
			in:           FilterInput{Category: "Cabins", Query: "farms"},
			wantCategory: CategoryCabins,
			wantQuery:    "farms",
		},
		{
			name:         "non-category query kept as text",
			in:           FilterInput{Query: "paris"},
			wantCategory: "",
			wantQuery:    "paris",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := BuildFilter(tt.in)
			if err != nil {
				t.Fatalf("BuildFilter() error = %v", err)
			}
			if spec.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", spec.Category, tt.wantCategory)
			}
			if spec.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", spec.Query, tt.wantQuery)
			}
		})
	}
}

func TestBuildFilter_PromotedQueryHasNoTextPredicate(t *testing.T) {
	spec, err := BuildFilter(FilterInput{Query: "farms"})
	if err != nil {
		t.Fatalf("BuildFilter() error = %v", err)
	}
	if spec.TextMode != TextModeNone {
		t.Errorf("TextMode = %q, want %q after category promotion", spec.TextMode, TextModeNone)
	}
}

func TestBuildFilter_PriceBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		wantMin  *float64
		wantMax  *float64
	}{
		{name: "absent", min: "", max: "", wantMin: nil, wantMax: nil},
		{name: "ordered pair kept", min: "100", max: "500", wantMin: f(100), wantMax: f(500)},
		{name: "inverted pair swapped", min: "500", max: "100", wantMin: f(100), wantMax: f(500)},
		{name: "negative discarded", min: "-5", max: "100", wantMin: nil, wantMax: f(100)},
		{name: "garbage discarded", min: "cheap", max: "100", wantMin: nil, wantMax: f(100)},
		{name: "NaN discarded", min: "NaN", max: "Inf", wantMin: nil, wantMax: nil},
		{name: "zero allowed", min: "0", max: "", wantMin: f(0), wantMax: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := BuildFilter(FilterInput{MinPrice: tt.min, MaxPrice: tt.max})
			if err != nil {
				t.Fatalf("BuildFilter() error = %v", err)
			}
			if !eqPrice(spec.MinPrice, tt.wantMin) {
				t.Errorf("MinPrice = %v, want %v", deref(spec.MinPrice), deref(tt.wantMin))
			}
			if !eqPrice(spec.MaxPrice, tt.wantMax) {
				t.Errorf("MaxPrice = %v, want %v", deref(spec.MaxPrice), deref(tt.wantMax))
			}
			if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
				t.Errorf("swap law violated: min %v > max %v", *spec.MinPrice, *spec.MaxPrice)
			}
		})
	}
}

func TestBuildFilter_SavedOnly(t *testing.T) {
	t.Run("unauthenticated viewer is rejected", func(t *testing.T) {
		_, err := BuildFilter(FilterInput{SavedOnly: true})
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("error = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("saved set becomes id filter", func(t *testing.T) {
		spec, err := BuildFilter(FilterInput{
			SavedOnly:           true,
			ViewerAuthenticated: true,
			SavedIDs:            []string{"a", "b"},
		})
		if err != nil {
			t.Fatalf("BuildFilter() error = %v", err)
		}
		if len(spec.IDs) != 2 {
			t.Errorf("IDs = %v, want 2 ids", spec.IDs)
		}
		if spec.SavedSetEmpty() {
			t.Error("SavedSetEmpty() = true for non-empty set")
		}
	})

	t.Run("empty saved set short-circuits", func(t *testing.T) {
		spec, err := BuildFilter(FilterInput{
			SavedOnly:           true,
			ViewerAuthenticated: true,
		})
		if err != nil {
			t.Fatalf("BuildFilter() error = %v", err)
		}
		if !spec.SavedSetEmpty() {
			t.Error("SavedSetEmpty() = false for empty saved set")
		}
	})

	t.Run("saved off leaves ids nil", func(t *testing.T) {
		spec, _ := BuildFilter(FilterInput{ViewerAuthenticated: true, SavedIDs: []string{"a"}})
		if spec.IDs != nil {
			t.Errorf("IDs = %v, want nil when savedOnly is off", spec.IDs)
		}
	})
}

func TestSelectTextMode(t *testing.T) {
	tests := []struct {
		query string
		want  TextMode
	}{
		{"", TextModeNone},
		{"a", TextModeSubstring},
		{"ab", TextModeSubstring},
		{"abc", TextModeFullText},
		{"château", TextModeFullText}, // rune length, not byte length
		{"ch", TextModeSubstring},
	}

	for _, tt := range tests {
		if got := SelectTextMode(tt.query); got != tt.want {
			t.Errorf("SelectTextMode(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func f(v float64) *float64 { return &v }

func eqPrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
