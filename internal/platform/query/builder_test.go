package query

import (
	"reflect"
	"testing"
)

func TestBuilder_NoClauses(t *testing.T) {
	b := New("providers", "npi, last_name")

	if got := b.CountSQL(); got != "SELECT COUNT(*) FROM providers WHERE 1=1" {
		t.Errorf("CountSQL = %q", got)
	}
	if got := b.SQL(); got != "SELECT npi, last_name FROM providers WHERE 1=1" {
		t.Errorf("SQL = %q", got)
	}
	if len(b.Args()) != 0 {
		t.Errorf("expected no args, got %v", b.Args())
	}
}

func TestBuilder_PlaceholderNumbering(t *testing.T) {
	b := New("providers", "npi")
	b.Where("entity_type_code = ?", "1")
	b.Where("first_name ILIKE ?", "%john%")
	b.Where("(first_name ILIKE ? OR last_name ILIKE ?)", "%a%", "%a%")

	want := "SELECT npi FROM providers WHERE 1=1" +
		" AND entity_type_code = $1" +
		" AND first_name ILIKE $2" +
		" AND (first_name ILIKE $3 OR last_name ILIKE $4)"
	if got := b.SQL(); got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(b.Args(), []interface{}{"1", "%john%", "%a%", "%a%"}) {
		t.Errorf("Args = %v", b.Args())
	}
}

func TestBuilder_PageSQL(t *testing.T) {
	b := New("providers", "npi")
	b.Where("entity_type_code = ?", "1")
	b.OrderBy("last_name, first_name")

	want := "SELECT npi FROM providers WHERE 1=1 AND entity_type_code = $1" +
		" ORDER BY last_name, first_name LIMIT $2 OFFSET $3"
	if got := b.PageSQL(); got != want {
		t.Errorf("PageSQL = %q, want %q", got, want)
	}
	args := b.PageArgs(25, 50)
	if !reflect.DeepEqual(args, []interface{}{"1", 25, 50}) {
		t.Errorf("PageArgs = %v", args)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsAndPrefix(t *testing.T) {
	if got := Contains("smith"); got != "%smith%" {
		t.Errorf("Contains = %q", got)
	}
	if got := Prefix("02134"); got != "02134%" {
		t.Errorf("Prefix = %q", got)
	}
}
