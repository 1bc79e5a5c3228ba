package taxonomy

import "context"

// Repository is the read-only persistence interface for the taxonomy
// reference table.
type Repository interface {
	// GetByCode returns the taxonomy row for an exact code, or nil when the
	// code has no match. A provider may carry a code absent from the table;
	// that is tolerated, not an error.
	GetByCode(ctx context.Context, code string) (*Taxonomy, error)

	// GetByCodes resolves a batch of distinct codes in one query, keyed by
	// code. Codes without a row are simply absent from the map.
	GetByCodes(ctx context.Context, codes []string) (map[string]*Taxonomy, error)

	// CodesMatching returns the codes whose classification, specialization
	// or grouping contains the term (case-insensitive).
	CodesMatching(ctx context.Context, term string) ([]string, error)

	// CodesByGrouping returns the codes whose grouping contains the term.
	CodesByGrouping(ctx context.Context, term string) ([]string, error)

	// List returns taxonomy rows matching q across classification,
	// specialization, grouping and code; an empty q returns all rows.
	List(ctx context.Context, q string, limit int) ([]*Taxonomy, error)

	// DistinctGroupings returns all non-empty grouping values, sorted.
	DistinctGroupings(ctx context.Context) ([]string, error)

	// DistinctClassifications returns all non-empty classification values,
	// sorted, optionally restricted to groupings containing group.
	DistinctClassifications(ctx context.Context, group string) ([]string, error)
}
