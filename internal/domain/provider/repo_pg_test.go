package provider

import (
	"strings"
	"testing"
)

func TestBuildSearchQuery_AlwaysRestrictsToIndividuals(t *testing.T) {
	b := buildSearchQuery(Filter{})
	sql := b.SQL()
	if !strings.Contains(sql, "entity_type_code = $1") {
		t.Errorf("missing individual restriction: %s", sql)
	}
	if got := b.Args()[0]; got != "1" {
		t.Errorf("expected entity type arg \"1\", got %v", got)
	}
	if !strings.Contains(sql, "ORDER BY last_name, first_name, npi") {
		t.Errorf("missing stable ordering: %s", sql)
	}
}

func TestBuildSearchQuery_NameFilters(t *testing.T) {
	b := buildSearchQuery(Filter{FirstName: "john", LastName: "smith"})
	sql := b.SQL()
	if !strings.Contains(sql, "first_name ILIKE $2") || !strings.Contains(sql, "last_name ILIKE $3") {
		t.Errorf("name clauses missing: %s", sql)
	}
	args := b.Args()
	if args[1] != "%john%" || args[2] != "%smith%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildSearchQuery_SingleTokenIsOr(t *testing.T) {
	b := buildSearchQuery(Filter{NameEither: "john"})
	if !strings.Contains(b.SQL(), "(first_name ILIKE $2 OR last_name ILIKE $3)") {
		t.Errorf("expected OR clause: %s", b.SQL())
	}
}

func TestBuildSearchQuery_Zip(t *testing.T) {
	b := buildSearchQuery(Filter{ZipPrefix: "02134"})
	if !strings.Contains(b.SQL(), "practice_postal_code LIKE $2") {
		t.Errorf("prefix clause missing: %s", b.SQL())
	}
	if b.Args()[1] != "02134%" {
		t.Errorf("args = %v", b.Args())
	}

	b = buildSearchQuery(Filter{ZipExact: "02134-5678"})
	if !strings.Contains(b.SQL(), "practice_postal_code = $2") {
		t.Errorf("exact clause missing: %s", b.SQL())
	}
}

func TestBuildSearchQuery_SpecialtySkippedOnEmptyCodes(t *testing.T) {
	b := buildSearchQuery(Filter{TaxonomyCodes: nil})
	if strings.Contains(b.SQL(), "primary_taxonomy_code") {
		t.Errorf("empty code set must add no clause: %s", b.SQL())
	}

	b = buildSearchQuery(Filter{TaxonomyCodes: []string{"207Q00000X"}})
	if !strings.Contains(b.SQL(), "primary_taxonomy_code = ANY($2)") {
		t.Errorf("membership clause missing: %s", b.SQL())
	}
}

func TestBuildSearchQuery_GroupCodesAppliedEvenWhenEmpty(t *testing.T) {
	b := buildSearchQuery(Filter{HasGroupCodes: true, GroupCodes: nil})
	if !strings.Contains(b.SQL(), "primary_taxonomy_code = ANY($2)") {
		t.Errorf("group clause must apply even for an empty set: %s", b.SQL())
	}
}

func TestBuildSearchQuery_Phone(t *testing.T) {
	b := buildSearchQuery(Filter{PhoneDigits: "617555"})
	if b.Args()[1] != "%617555%" {
		t.Errorf("phone args = %v", b.Args())
	}

	b = buildSearchQuery(Filter{PhoneAreaCode: "617"})
	if b.Args()[1] != "617%" {
		t.Errorf("area code args = %v", b.Args())
	}
}

func TestBuildSearchQuery_StateExactCaseInsensitive(t *testing.T) {
	b := buildSearchQuery(Filter{State: "ma"})
	if !strings.Contains(b.SQL(), "LOWER(practice_state) = LOWER($2)") {
		t.Errorf("state clause: %s", b.SQL())
	}
	if b.Args()[1] != "ma" {
		t.Errorf("state arg should be unpatterned: %v", b.Args())
	}
}
