package taxonomy

import (
	"context"
	"strings"
)

// MinQueryLen is the shortest autocomplete query that triggers filtering;
// shorter queries list the whole table.
const MinQueryLen = 2

type Service struct {
	taxonomies Repository
}

func NewService(taxonomies Repository) *Service {
	return &Service{taxonomies: taxonomies}
}

// Suggest returns autocomplete entries for q. Queries shorter than
// MinQueryLen ignore q and return the first limit rows.
func (s *Service) Suggest(ctx context.Context, q string, limit int) ([]Suggestion, error) {
	q = strings.TrimSpace(q)
	if len(q) < MinQueryLen {
		q = ""
	}
	items, err := s.taxonomies.List(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, 0, len(items))
	for _, t := range items {
		suggestions = append(suggestions, Suggestion{
			Code:           t.Code,
			DisplayName:    t.ComposedDisplay(),
			Classification: t.Classification,
			Specialization: t.Specialization,
			Grouping:       t.Grouping,
		})
	}
	return suggestions, nil
}

// Groups returns every distinct specialty grouping.
func (s *Service) Groups(ctx context.Context) ([]string, error) {
	return s.taxonomies.DistinctGroupings(ctx)
}

// Classifications returns distinct classifications, optionally restricted to
// groupings containing group.
func (s *Service) Classifications(ctx context.Context, group string) ([]string, error) {
	return s.taxonomies.DistinctClassifications(ctx, strings.TrimSpace(group))
}

// Resolve looks up the taxonomy for a provider's primary code. A nil or
// empty code, or a code missing from the reference table, resolves to nil.
func (s *Service) Resolve(ctx context.Context, code *string) (*Taxonomy, error) {
	if code == nil || *code == "" {
		return nil, nil
	}
	return s.taxonomies.GetByCode(ctx, *code)
}

// ResolveAll batch-resolves the distinct codes of a result set in one query.
func (s *Service) ResolveAll(ctx context.Context, codes []string) (map[string]*Taxonomy, error) {
	return s.taxonomies.GetByCodes(ctx, codes)
}

// CodesForSpecialty resolves a free-text specialty term to taxonomy codes.
func (s *Service) CodesForSpecialty(ctx context.Context, term string) ([]string, error) {
	return s.taxonomies.CodesMatching(ctx, term)
}

// CodesForGroup resolves a grouping substring to taxonomy codes.
func (s *Service) CodesForGroup(ctx context.Context, term string) ([]string, error) {
	return s.taxonomies.CodesByGrouping(ctx, term)
}
