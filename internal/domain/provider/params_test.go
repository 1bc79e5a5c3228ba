package provider

import (
	"net/url"
	"testing"
)

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  John  ", "john"},
		{"John\t\tSmith", "john smith"},
		{"  a   b   c  ", "a b c"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTerm(tt.in); got != tt.want {
			t.Errorf("NormalizeTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsZipCode(t *testing.T) {
	valid := []string{"02134", "02134-5678", " 02134 "}
	for _, z := range valid {
		if !IsZipCode(z) {
			t.Errorf("expected %q to be a valid ZIP", z)
		}
	}
	invalid := []string{"0213", "021345", "abcde", "02134-567", "02134 5678", "02134-56789", ""}
	for _, z := range invalid {
		if IsZipCode(z) {
			t.Errorf("expected %q to be invalid", z)
		}
	}
}

func TestPhoneDigits(t *testing.T) {
	if got := PhoneDigits("(617) 555-1234"); got != "6175551234" {
		t.Errorf("PhoneDigits = %q", got)
	}
	if got := PhoneDigits("ext."); got != "" {
		t.Errorf("expected empty digits, got %q", got)
	}
}

func TestParamsFromQuery(t *testing.T) {
	v := url.Values{}
	v.Set("first_name", "John")
	v.Set("state", "MA")
	v.Set("group_by_specialty", "TRUE")
	v.Set("page", "2")
	v.Set("unknown_key", "ignored")

	p := ParamsFromQuery(v)
	if p.FirstName != "John" || p.State != "MA" || p.Page != "2" {
		t.Errorf("unexpected params: %+v", p)
	}
	if !p.GroupBySpecialty {
		t.Error("group_by_specialty should be case-insensitive true")
	}
}

func TestParamsFromJSON(t *testing.T) {
	body := []byte(`{"last_name":"Smith","page":2,"page_size":"10","group_by_specialty":true}`)
	p, err := ParamsFromJSON(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LastName != "Smith" {
		t.Errorf("last_name = %q", p.LastName)
	}
	if p.Page != "2" || p.PageSize != "10" {
		t.Errorf("page=%q page_size=%q", p.Page, p.PageSize)
	}
	if !p.GroupBySpecialty {
		t.Error("expected grouped flag from JSON bool")
	}
}

func TestParamsFromJSON_Malformed(t *testing.T) {
	if _, err := ParamsFromJSON([]byte(`{"first_name":`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestEcho_OnlyNonEmptyRecognizedKeys(t *testing.T) {
	p := SearchParams{FirstName: "John", City: "  ", ZipCode: "02134"}
	got := p.Echo()
	if len(got) != 2 {
		t.Fatalf("expected 2 echoed params, got %v", got)
	}
	if got["first_name"] != "John" || got["zip_code"] != "02134" {
		t.Errorf("echo = %v", got)
	}
}
