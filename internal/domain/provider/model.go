package provider

import "strings"

// Provider maps to the externally managed providers table (one row per NPI
// from the NPPES registry feed). The table is read-only from this service's
// perspective.
type Provider struct {
	NPI                  string  `db:"npi" json:"npi"`
	EntityTypeCode       *string `db:"entity_type_code" json:"entity_type_code,omitempty"`
	OrganizationName     *string `db:"organization_name" json:"organization_name,omitempty"`
	LastName             *string `db:"last_name" json:"last_name,omitempty"`
	FirstName            *string `db:"first_name" json:"first_name,omitempty"`
	MiddleName           *string `db:"middle_name" json:"middle_name,omitempty"`
	PracticeAddressLine1 *string `db:"practice_address_line1" json:"practice_address_line1,omitempty"`
	PracticeAddressLine2 *string `db:"practice_address_line2" json:"practice_address_line2,omitempty"`
	PracticeCity         *string `db:"practice_city" json:"practice_city,omitempty"`
	PracticeState        *string `db:"practice_state" json:"practice_state,omitempty"`
	PracticePostalCode   *string `db:"practice_postal_code" json:"practice_postal_code,omitempty"`
	PracticePhone        *string `db:"practice_phone" json:"practice_phone,omitempty"`
	PrimaryTaxonomyCode  *string `db:"primary_taxonomy_code" json:"primary_taxonomy_code,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsIndividual reports whether the row carries entity type "1".
func (p *Provider) IsIndividual() bool {
	return deref(p.EntityTypeCode) == "1"
}

// FullName composes a display name appropriate for the entity type, falling
// back to "Unknown ..." placeholders when the name columns are empty.
func (p *Provider) FullName() string {
	switch {
	case deref(p.EntityTypeCode) == "2" || deref(p.OrganizationName) != "":
		if name := deref(p.OrganizationName); name != "" {
			return name
		}
		return "Unknown Organization"
	case deref(p.EntityTypeCode) == "1" || deref(p.LastName) != "":
		name := joinNonEmpty(" ", p.FirstName, p.MiddleName, p.LastName)
		if name != "" {
			return name
		}
		return "Unknown Individual"
	default:
		return "Unknown Provider"
	}
}

// FullAddress joins the non-empty practice address parts with commas.
func (p *Provider) FullAddress() string {
	return joinNonEmpty(", ",
		p.PracticeAddressLine1, p.PracticeAddressLine2,
		p.PracticeCity, p.PracticeState, p.PracticePostalCode)
}

// EntityTypeDisplay returns the human label for the entity type, guessing
// from the populated name columns when the code is absent.
func (p *Provider) EntityTypeDisplay() string {
	switch deref(p.EntityTypeCode) {
	case "2":
		return "Organization"
	case "1":
		return "Individual"
	}
	if deref(p.OrganizationName) != "" {
		return "Organization (inferred)"
	}
	if deref(p.LastName) != "" {
		return "Individual (inferred)"
	}
	return "Unknown"
}

func joinNonEmpty(sep string, parts ...*string) string {
	var kept []string
	for _, part := range parts {
		if v := deref(part); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}
