package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/providerlookup/providerlookup/internal/domain/taxonomy"
	"github.com/providerlookup/providerlookup/pkg/pagination"
)

// UnknownSpecialty is the grouped-mode bucket for providers whose taxonomy
// has neither a grouping nor a classification, or no taxonomy at all.
const UnknownSpecialty = "Unknown Specialty"

var (
	// ErrNotFound marks an NPI with no individual provider behind it.
	ErrNotFound = errors.New("individual provider not found")

	// ErrTooManyResults marks a grouped search whose filtered set exceeds
	// the configured in-memory cap.
	ErrTooManyResults = errors.New("grouped result set too large")
)

type Service struct {
	providers  Repository
	taxonomies *taxonomy.Service

	// maxGrouped bounds how many rows a grouped search may load. Grouped
	// mode reads the whole filtered set into memory, so without this cap a
	// broad filter could grow without bound.
	maxGrouped int
}

func NewService(providers Repository, taxonomies *taxonomy.Service, maxGrouped int) *Service {
	return &Service{providers: providers, taxonomies: taxonomies, maxGrouped: maxGrouped}
}

// Record is the flat search result shape. Taxonomy fields are explicitly
// null when the provider's code resolves to nothing. DistanceMiles is a
// reserved field; this service never computes it.
type Record struct {
	EntityTypeDisplay   string  `json:"entity_type_display"`
	FirstName           *string `json:"first_name"`
	LastName            *string `json:"last_name"`
	MiddleName          *string `json:"middle_name"`
	FullName            string  `json:"full_name"`
	Address             string  `json:"address"`
	Phone               *string `json:"phone"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	ZipCode             *string `json:"zip_code"`
	DistanceMiles       float64 `json:"distance_miles"`
	TaxonomyDescription *string `json:"taxonomy_description"`
	Specialization      *string `json:"specialization"`
	TaxonomyGrouping    *string `json:"taxonomy_grouping"`
}

// SearchResult is one page of flat search results.
type SearchResult struct {
	Results      []Record          `json:"results"`
	Pagination   pagination.Meta   `json:"pagination"`
	SearchParams map[string]string `json:"search_params"`
}

// GroupedResult buckets the whole filtered set by specialty.
type GroupedResult struct {
	GroupedResults map[string][]Record `json:"grouped_results"`
	TotalResults   int                 `json:"total_results"`
	SearchParams   map[string]string   `json:"search_params"`
	GroupedBy      string              `json:"grouped_by"`
}

// advancedTaxonomy carries the taxonomy fields of an advanced search record.
// Left nil when the provider has no resolvable taxonomy, which omits the
// keys entirely.
type advancedTaxonomy struct {
	TaxonomyClassification *string `json:"taxonomy_classification"`
	TaxonomySpecialization *string `json:"taxonomy_specialization"`
	TaxonomyGrouping       *string `json:"taxonomy_grouping"`
}

// AdvancedRecord is the reduced shape returned by advanced search.
type AdvancedRecord struct {
	EntityTypeDisplay string  `json:"entity_type_display"`
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	FullName          string  `json:"full_name"`
	Address           string  `json:"address"`
	Phone             *string `json:"phone"`
	*advancedTaxonomy
}

// AdvancedResult is one page of advanced search results.
type AdvancedResult struct {
	Results    []AdvancedRecord `json:"results"`
	Pagination pagination.Meta  `json:"pagination"`
}

// QuickSuggestion is one provider autocomplete entry.
type QuickSuggestion struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	FullName  string  `json:"full_name"`
	Type      string  `json:"type"`
	Location  *string `json:"location"`
	Specialty *string `json:"specialty"`
}

// DetailAddress is the nested practice address of a provider detail.
type DetailAddress struct {
	Line1       *string `json:"line1"`
	Line2       *string `json:"line2"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	PostalCode  *string `json:"postal_code"`
	FullAddress string  `json:"full_address"`
}

// DetailTaxonomy is the taxonomy block of a provider detail.
type DetailTaxonomy struct {
	Code           string  `json:"code"`
	Classification *string `json:"classification"`
	Specialization *string `json:"specialization"`
	Definition     *string `json:"definition"`
	Grouping       *string `json:"grouping"`
	DisplayName    *string `json:"display_name"`
	Section        *string `json:"section"`
}

// Detail is the full provider detail response. Taxonomy is null when the
// provider's code has no match in the reference table; that is distinct
// from the provider itself not being found.
type Detail struct {
	EntityTypeDisplay string          `json:"entity_type_display"`
	FirstName         *string         `json:"first_name"`
	MiddleName        *string         `json:"middle_name"`
	LastName          *string         `json:"last_name"`
	FullName          string          `json:"full_name"`
	PracticeAddress   DetailAddress   `json:"practice_address"`
	Phone             *string         `json:"phone"`
	Taxonomy          *DetailTaxonomy `json:"taxonomy"`
}

// Health is the health-check response body.
type Health struct {
	Status                   string `json:"status"`
	TotalIndividualProviders int    `json:"total_individual_providers"`
	StatesWithProviders      int    `json:"states_with_providers"`
	DatabaseConnection       string `json:"database_connection"`
}

// buildFilter normalizes the parameter bag into a Filter, resolving
// specialty terms against the taxonomy table. Advanced-only parameters are
// consulted only when advanced is set.
func (s *Service) buildFilter(ctx context.Context, p SearchParams, advanced bool) (Filter, error) {
	var f Filter

	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)
	if name := strings.TrimSpace(p.Name); name != "" && first == "" && last == "" {
		tokens := strings.Fields(NormalizeTerm(name))
		switch {
		case len(tokens) >= 2:
			first = tokens[0]
			last = strings.Join(tokens[1:], " ")
		case len(tokens) == 1:
			f.NameEither = tokens[0]
		}
	}
	f.FirstName = NormalizeTerm(first)
	f.LastName = NormalizeTerm(last)
	f.City = NormalizeTerm(p.City)
	f.State = strings.TrimSpace(p.State)

	if zip := strings.TrimSpace(p.ZipCode); zip != "" && IsZipCode(zip) {
		// Invalid-format input applies no filter at all.
		if len(zip) == 5 {
			f.ZipPrefix = zip
		} else {
			f.ZipExact = zip
		}
	}

	if specialty := NormalizeTerm(p.Specialty); specialty != "" {
		codes, err := s.taxonomies.CodesForSpecialty(ctx, specialty)
		if err != nil {
			return Filter{}, fmt.Errorf("resolve specialty %q: %w", specialty, err)
		}
		// A term matching zero taxonomy rows skips the filter rather than
		// forcing zero results.
		if len(codes) > 0 {
			f.TaxonomyCodes = codes
		}
	}

	if digits := PhoneDigits(p.Phone); digits != "" {
		f.PhoneDigits = digits
	}

	if advanced {
		if group := NormalizeTerm(p.SpecialtyGroup); group != "" {
			codes, err := s.taxonomies.CodesForGroup(ctx, group)
			if err != nil {
				return Filter{}, fmt.Errorf("resolve specialty group %q: %w", group, err)
			}
			f.GroupCodes = codes
			f.HasGroupCodes = true
		}
		f.PhoneAreaCode = strings.TrimSpace(p.PhoneAreaCode)
	}

	return f, nil
}

// SearchPage runs a flat, paginated provider search.
func (s *Service) SearchPage(ctx context.Context, p SearchParams, pg pagination.Params) (*SearchResult, error) {
	f, err := s.buildFilter(ctx, p, false)
	if err != nil {
		return nil, err
	}
	total, err := s.providers.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count providers: %w", err)
	}
	meta := pg.Paginate(total)
	rows, err := s.providers.SearchPage(ctx, f, meta.PageSize, meta.Offset())
	if err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}
	records, err := s.shapeRecords(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Results: records, Pagination: meta, SearchParams: p.Echo()}, nil
}

// SearchGrouped runs a search bucketed by specialty. It deliberately skips
// pagination and loads the complete filtered set, bounded only by the
// configured cap; callers wanting pages use SearchPage instead.
func (s *Service) SearchGrouped(ctx context.Context, p SearchParams) (*GroupedResult, error) {
	f, err := s.buildFilter(ctx, p, false)
	if err != nil {
		return nil, err
	}
	rows, err := s.providers.SearchAll(ctx, f, s.maxGrouped)
	if err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}
	if len(rows) > s.maxGrouped {
		return nil, fmt.Errorf("%w: over %d rows matched", ErrTooManyResults, s.maxGrouped)
	}

	resolved, err := s.resolveTaxonomies(ctx, rows)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]Record)
	for _, row := range rows {
		tx := resolved[deref(row.PrimaryTaxonomyCode)]
		key := UnknownSpecialty
		if tx != nil && deref(tx.Grouping) != "" {
			key = *tx.Grouping
		} else if tx != nil && deref(tx.Classification) != "" {
			key = *tx.Classification
		}
		buckets[key] = append(buckets[key], shapeRecord(row, tx))
	}
	for key := range buckets {
		group := buckets[key]
		sort.SliceStable(group, func(i, j int) bool {
			li, lj := deref(group[i].LastName), deref(group[j].LastName)
			if li != lj {
				return li < lj
			}
			return deref(group[i].FirstName) < deref(group[j].FirstName)
		})
	}

	return &GroupedResult{
		GroupedResults: buckets,
		TotalResults:   len(rows),
		SearchParams:   p.Echo(),
		GroupedBy:      "specialty",
	}, nil
}

// AdvancedSearch runs the base filters plus specialty_group and
// phone_area_code, returning the reduced advanced record shape.
func (s *Service) AdvancedSearch(ctx context.Context, p SearchParams, pg pagination.Params) (*AdvancedResult, error) {
	f, err := s.buildFilter(ctx, p, true)
	if err != nil {
		return nil, err
	}
	total, err := s.providers.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count providers: %w", err)
	}
	meta := pg.Paginate(total)
	rows, err := s.providers.SearchPage(ctx, f, meta.PageSize, meta.Offset())
	if err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}
	resolved, err := s.resolveTaxonomies(ctx, rows)
	if err != nil {
		return nil, err
	}

	records := make([]AdvancedRecord, 0, len(rows))
	for _, row := range rows {
		rec := AdvancedRecord{
			EntityTypeDisplay: "Individual",
			FirstName:         row.FirstName,
			LastName:          row.LastName,
			FullName:          row.FullName(),
			Address:           row.FullAddress(),
			Phone:             row.PracticePhone,
		}
		if tx := resolved[deref(row.PrimaryTaxonomyCode)]; tx != nil {
			rec.advancedTaxonomy = &advancedTaxonomy{
				TaxonomyClassification: tx.Classification,
				TaxonomySpecialization: tx.Specialization,
				TaxonomyGrouping:       tx.Grouping,
			}
		}
		records = append(records, rec)
	}
	return &AdvancedResult{Results: records, Pagination: meta}, nil
}

// QuickSearchLimit caps autocomplete suggestion lists.
const QuickSearchLimit = 10

// MinQuickQueryLen is the shortest query quick search will run; shorter
// input returns an empty list without querying at all.
const MinQuickQueryLen = 2

// QuickSearch returns autocomplete suggestions via the legacy-name path.
func (s *Service) QuickSearch(ctx context.Context, q string) ([]QuickSuggestion, error) {
	q = strings.TrimSpace(q)
	if len(q) < MinQuickQueryLen {
		return []QuickSuggestion{}, nil
	}
	f, err := s.buildFilter(ctx, SearchParams{Name: q}, false)
	if err != nil {
		return nil, err
	}
	rows, err := s.providers.SearchPage(ctx, f, QuickSearchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("quick search: %w", err)
	}
	resolved, err := s.resolveTaxonomies(ctx, rows)
	if err != nil {
		return nil, err
	}

	suggestions := make([]QuickSuggestion, 0, len(rows))
	for _, row := range rows {
		sg := QuickSuggestion{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			FullName:  row.FullName(),
			Type:      "Individual",
		}
		if city := deref(row.PracticeCity); city != "" {
			loc := city + ", " + deref(row.PracticeState)
			sg.Location = &loc
		}
		if tx := resolved[deref(row.PrimaryTaxonomyCode)]; tx != nil {
			if deref(tx.Specialization) != "" {
				sg.Specialty = tx.Specialization
			} else {
				sg.Specialty = tx.Classification
			}
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions, nil
}

// Detail returns the full record for one individual provider. A missing or
// organization NPI yields ErrNotFound; a missing taxonomy does not.
func (s *Service) Detail(ctx context.Context, npi string) (*Detail, error) {
	row, err := s.providers.GetByNPI(ctx, npi)
	if err != nil {
		return nil, fmt.Errorf("get provider %s: %w", npi, err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	tx, err := s.taxonomies.Resolve(ctx, row.PrimaryTaxonomyCode)
	if err != nil {
		return nil, fmt.Errorf("resolve taxonomy: %w", err)
	}

	d := &Detail{
		EntityTypeDisplay: "Individual",
		FirstName:         row.FirstName,
		MiddleName:        row.MiddleName,
		LastName:          row.LastName,
		FullName:          row.FullName(),
		PracticeAddress: DetailAddress{
			Line1:       row.PracticeAddressLine1,
			Line2:       row.PracticeAddressLine2,
			City:        row.PracticeCity,
			State:       row.PracticeState,
			PostalCode:  row.PracticePostalCode,
			FullAddress: row.FullAddress(),
		},
		Phone: row.PracticePhone,
	}
	if tx != nil {
		d.Taxonomy = &DetailTaxonomy{
			Code:           tx.Code,
			Classification: tx.Classification,
			Specialization: tx.Specialization,
			Definition:     tx.Definition,
			Grouping:       tx.Grouping,
			DisplayName:    tx.DisplayName,
			Section:        tx.Section,
		}
	}
	return d, nil
}

// HealthCheck reports basic registry statistics; a database failure comes
// back as an error for the handler to wrap, never as a panic.
func (s *Service) HealthCheck(ctx context.Context) (*Health, error) {
	total, err := s.providers.CountIndividuals(ctx)
	if err != nil {
		return nil, fmt.Errorf("count individual providers: %w", err)
	}
	states, err := s.providers.CountStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("count states: %w", err)
	}
	return &Health{
		Status:                   "healthy",
		TotalIndividualProviders: total,
		StatesWithProviders:      states,
		DatabaseConnection:       "ok",
	}, nil
}

// States lists the 2-letter practice states with at least one individual
// provider, restricted to the 50 states + DC.
func (s *Service) States(ctx context.Context) ([]string, error) {
	return s.providers.DistinctStates(ctx, USStates)
}

// Cities lists distinct practice cities, optionally scoped to one state.
func (s *Service) Cities(ctx context.Context, state string, limit int) ([]string, error) {
	return s.providers.DistinctCities(ctx, strings.TrimSpace(state), limit)
}

// resolveTaxonomies batch-resolves the distinct taxonomy codes of a result
// set in a single query, instead of one lookup per row.
func (s *Service) resolveTaxonomies(ctx context.Context, rows []*Provider) (map[string]*taxonomy.Taxonomy, error) {
	seen := map[string]bool{}
	var codes []string
	for _, row := range rows {
		if code := deref(row.PrimaryTaxonomyCode); code != "" && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	resolved, err := s.taxonomies.ResolveAll(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("resolve taxonomies: %w", err)
	}
	return resolved, nil
}

func (s *Service) shapeRecords(ctx context.Context, rows []*Provider) ([]Record, error) {
	resolved, err := s.resolveTaxonomies(ctx, rows)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, shapeRecord(row, resolved[deref(row.PrimaryTaxonomyCode)]))
	}
	return records, nil
}

func shapeRecord(row *Provider, tx *taxonomy.Taxonomy) Record {
	rec := Record{
		EntityTypeDisplay: "Individual",
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		MiddleName:        row.MiddleName,
		FullName:          row.FullName(),
		Address:           row.FullAddress(),
		Phone:             row.PracticePhone,
		City:              row.PracticeCity,
		State:             row.PracticeState,
		ZipCode:           row.PracticePostalCode,
	}
	if tx != nil {
		rec.TaxonomyDescription = tx.Classification
		rec.Specialization = tx.Specialization
		rec.TaxonomyGrouping = tx.Grouping
	}
	return rec
}
