package domain

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		requested      int
		wantPage       int
		wantTotalPages int
		wantSkip       int
	}{
		{"first page of many", 120, 1, 1, 3, 0},
		{"middle page", 120, 2, 2, 3, 50},
		{"exact multiple", 100, 2, 2, 2, 50},
		{"page beyond range clamps", 10, 99, 1, 1, 0},
		{"page beyond range clamps to last", 120, 99, 3, 3, 100},
		{"zero page clamps up", 120, 0, 1, 3, 0},
		{"negative page clamps up", 120, -4, 1, 3, 0},
		{"zero rows still one page", 0, 1, 1, 1, 0},
		{"zero rows high page", 0, 7, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.requested)
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.Skip != tt.wantSkip {
				t.Errorf("Skip = %d, want %d", p.Skip, tt.wantSkip)
			}
			if p.Limit != PageSize {
				t.Errorf("Limit = %d, want %d", p.Limit, PageSize)
			}
		})
	}
}

func TestPagination_Range(t *testing.T) {
	t.Run("partial page", func(t *testing.T) {
		p := NewPagination(10, 99) // clamps to page 1
		start, end := p.Range(10)
		if start != 1 || end != 10 {
			t.Errorf("Range = [%d,%d], want [1,10]", start, end)
		}
	})

	t.Run("second page", func(t *testing.T) {
		p := NewPagination(120, 2)
		start, end := p.Range(50)
		if start != 51 || end != 100 {
			t.Errorf("Range = [%d,%d], want [51,100]", start, end)
		}
	})

	t.Run("zero rows", func(t *testing.T) {
		p := NewPagination(0, 1)
		start, end := p.Range(0)
		if start != 0 || end != 0 {
			t.Errorf("Range = [%d,%d], want [0,0]", start, end)
		}
	})
}
