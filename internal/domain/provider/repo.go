package provider

import "context"

// Repository is the read-only persistence interface over the providers
// table. Every query is restricted to individual providers
// (entity_type_code = '1'); organization rows are never surfaced.
type Repository interface {
	// Count returns how many individual providers match the filter.
	Count(ctx context.Context, f Filter) (int, error)

	// SearchPage returns one page of matches ordered by last name, first
	// name, NPI.
	SearchPage(ctx context.Context, f Filter, limit, offset int) ([]*Provider, error)

	// SearchAll returns every match in the same order, fetching at most
	// max+1 rows so the caller can detect an over-cap result set.
	SearchAll(ctx context.Context, f Filter, max int) ([]*Provider, error)

	// GetByNPI returns the individual provider with the given NPI, or nil
	// when it does not exist or belongs to an organization.
	GetByNPI(ctx context.Context, npi string) (*Provider, error)

	// CountIndividuals returns the total number of individual providers.
	CountIndividuals(ctx context.Context) (int, error)

	// CountStates returns how many distinct non-empty practice states have
	// at least one individual provider.
	CountStates(ctx context.Context) (int, error)

	// DistinctStates returns the sorted practice states present among
	// individual providers, restricted to the allowed enumeration.
	DistinctStates(ctx context.Context, allowed []string) ([]string, error)

	// DistinctCities returns sorted non-empty practice cities of individual
	// providers, optionally scoped to one state (case-insensitive exact).
	DistinctCities(ctx context.Context, state string, limit int) ([]string, error)
}
