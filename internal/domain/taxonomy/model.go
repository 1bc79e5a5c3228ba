package taxonomy

// Taxonomy maps to the externally managed nucc_taxonomy reference table.
// Rows come from the NUCC provider taxonomy code set; this service never
// writes to the table.
type Taxonomy struct {
	Code           string  `db:"code" json:"code"`
	Grouping       *string `db:"grouping" json:"grouping,omitempty"`
	Classification *string `db:"classification" json:"classification,omitempty"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
	Definition     *string `db:"definition" json:"definition,omitempty"`
	Notes          *string `db:"notes" json:"notes,omitempty"`
	DisplayName    *string `db:"display_name" json:"display_name,omitempty"`
	Section        *string `db:"section" json:"section,omitempty"`
}

// ComposedDisplay joins classification and specialization into the
// autocomplete display string.
func (t *Taxonomy) ComposedDisplay() string {
	display := ""
	if t.Classification != nil {
		display = *t.Classification
	}
	if t.Specialization != nil && *t.Specialization != "" {
		display += " - " + *t.Specialization
	}
	return display
}

// Suggestion is one taxonomy autocomplete entry.
type Suggestion struct {
	Code           string  `json:"code"`
	DisplayName    string  `json:"display_name"`
	Classification *string `json:"classification"`
	Specialization *string `json:"specialization"`
	Grouping       *string `json:"grouping"`
}
