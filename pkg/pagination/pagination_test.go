package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestFromContext_Defaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c, DefaultPageSize)

	if p.Page != 1 {
		t.Errorf("expected default page 1, got %d", p.Page)
	}
	if p.Size != DefaultPageSize {
		t.Errorf("expected default size %d, got %d", DefaultPageSize, p.Size)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&page_size=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c, DefaultPageSize)

	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.Size != 10 {
		t.Errorf("expected size 10, got %d", p.Size)
	}
}

func TestFromStrings_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		size     string
		wantPage int
		wantSize int
	}{
		{"non-numeric page", "abc", "10", 1, 10},
		{"zero page", "0", "10", 1, 10},
		{"negative page", "-2", "10", 1, 10},
		{"non-numeric size", "2", "xyz", 2, 50},
		{"size over max", "1", "500", 1, MaxPageSize},
		{"empty strings", "", "", 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromStrings(tt.page, tt.size, 50)
			if p.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.Size != tt.wantSize {
				t.Errorf("size = %d, want %d", p.Size, tt.wantSize)
			}
		})
	}
}

func TestPaginate_PageSizes(t *testing.T) {
	// 25 results at size 10 -> pages of 10, 10, 5.
	p := Params{Page: 1, Size: 10}

	m := p.Paginate(25)
	if m.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", m.TotalPages)
	}
	if !m.HasNext || m.HasPrevious {
		t.Errorf("page 1: has_next=%v has_previous=%v", m.HasNext, m.HasPrevious)
	}

	m = Params{Page: 2, Size: 10}.Paginate(25)
	if !m.HasNext || !m.HasPrevious {
		t.Errorf("page 2: has_next=%v has_previous=%v", m.HasNext, m.HasPrevious)
	}

	m = Params{Page: 3, Size: 10}.Paginate(25)
	if m.HasNext || !m.HasPrevious {
		t.Errorf("page 3: has_next=%v has_previous=%v", m.HasNext, m.HasPrevious)
	}
	if m.Offset() != 20 {
		t.Errorf("page 3 offset = %d, want 20", m.Offset())
	}
}

func TestPaginate_OutOfRangeClamps(t *testing.T) {
	m := Params{Page: 99, Size: 10}.Paginate(25)
	if m.CurrentPage != 3 {
		t.Errorf("expected clamp to page 3, got %d", m.CurrentPage)
	}
	if m.HasNext {
		t.Error("clamped last page should not have next")
	}
}

func TestPaginate_EmptyResultSet(t *testing.T) {
	m := Params{Page: 1, Size: 25}.Paginate(0)
	if m.TotalPages != 1 {
		t.Errorf("expected 1 page for empty set, got %d", m.TotalPages)
	}
	if m.CurrentPage != 1 {
		t.Errorf("expected page 1, got %d", m.CurrentPage)
	}
	if m.HasNext || m.HasPrevious {
		t.Error("empty set should have no next/previous")
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	m := Params{Page: 2, Size: 10}.Paginate(20)
	if m.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", m.TotalPages)
	}
	if m.HasNext {
		t.Error("last page should not have next")
	}
}
