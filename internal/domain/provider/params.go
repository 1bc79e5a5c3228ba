package provider

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// SearchParams is the explicit bag of recognized search parameters. Every
// field is optional; blank means "no constraint". Unrecognized request keys
// are ignored.
type SearchParams struct {
	FirstName string
	LastName  string
	// Name is the legacy combined-name parameter, only consulted when both
	// FirstName and LastName are blank.
	Name      string
	City      string
	State     string
	ZipCode   string
	Specialty string
	Phone     string

	// Advanced-search-only filters.
	SpecialtyGroup string
	PhoneAreaCode  string

	GroupBySpecialty bool

	// Page and PageSize stay raw strings; pagination parsing defaults bad
	// numerics instead of erroring.
	Page     string
	PageSize string
}

// ParamsFromQuery reads the recognized parameters from a query string.
func ParamsFromQuery(values url.Values) SearchParams {
	return SearchParams{
		FirstName:        values.Get("first_name"),
		LastName:         values.Get("last_name"),
		Name:             values.Get("name"),
		City:             values.Get("city"),
		State:            values.Get("state"),
		ZipCode:          values.Get("zip_code"),
		Specialty:        values.Get("specialty"),
		Phone:            values.Get("phone"),
		SpecialtyGroup:   values.Get("specialty_group"),
		PhoneAreaCode:    values.Get("phone_area_code"),
		GroupBySpecialty: strings.EqualFold(values.Get("group_by_specialty"), "true"),
		Page:             values.Get("page"),
		PageSize:         values.Get("page_size"),
	}
}

// ParamsFromJSON reads the recognized parameters from a POST body. String
// and numeric JSON values are both accepted; anything else for a known key
// is ignored.
func ParamsFromJSON(body []byte) (SearchParams, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return SearchParams{}, err
	}
	get := func(key string) string {
		switch v := raw[key].(type) {
		case string:
			return v
		case float64:
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%v", v)
		default:
			return ""
		}
	}
	grouped := false
	switch v := raw["group_by_specialty"].(type) {
	case bool:
		grouped = v
	case string:
		grouped = strings.EqualFold(v, "true")
	}
	return SearchParams{
		FirstName:        get("first_name"),
		LastName:         get("last_name"),
		Name:             get("name"),
		City:             get("city"),
		State:            get("state"),
		ZipCode:          get("zip_code"),
		Specialty:        get("specialty"),
		Phone:            get("phone"),
		SpecialtyGroup:   get("specialty_group"),
		PhoneAreaCode:    get("phone_area_code"),
		GroupBySpecialty: grouped,
		Page:             get("page"),
		PageSize:         get("page_size"),
	}, nil
}

// Echo returns the non-empty recognized filters for the search_params field
// of the response.
func (p SearchParams) Echo() map[string]string {
	out := map[string]string{}
	add := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			out[key] = value
		}
	}
	add("first_name", p.FirstName)
	add("last_name", p.LastName)
	add("name", p.Name)
	add("city", p.City)
	add("state", p.State)
	add("zip_code", p.ZipCode)
	add("specialty", p.Specialty)
	add("phone", p.Phone)
	add("specialty_group", p.SpecialtyGroup)
	add("phone_area_code", p.PhoneAreaCode)
	return out
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	zipPattern    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

// NormalizeTerm collapses internal whitespace runs, trims and lowercases a
// free-text search term.
func NormalizeTerm(term string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(term)), " ")
}

// IsZipCode reports whether term is a 5-digit or hyphenated 9-digit ZIP.
func IsZipCode(term string) bool {
	return zipPattern.MatchString(strings.TrimSpace(term))
}

// PhoneDigits strips everything but digits from a phone search term.
func PhoneDigits(term string) string {
	return nonDigits.ReplaceAllString(term, "")
}

// Filter is the normalized predicate set handed to the repository. Blank
// fields contribute no SQL clause.
type Filter struct {
	FirstName  string // substring, case-insensitive
	LastName   string
	NameEither string // single legacy token, OR across first/last
	City       string
	State      string // exact, case-insensitive
	ZipPrefix  string
	ZipExact   string

	// TaxonomyCodes from a specialty term; empty means the term matched no
	// taxonomy rows and the filter is skipped entirely.
	TaxonomyCodes []string

	// GroupCodes from the advanced specialty_group filter. Unlike specialty,
	// an empty resolution still applies and yields zero results, so presence
	// is tracked separately.
	GroupCodes    []string
	HasGroupCodes bool

	PhoneDigits   string
	PhoneAreaCode string
}
