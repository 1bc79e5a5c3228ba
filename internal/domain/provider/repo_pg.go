package provider

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/providerlookup/providerlookup/internal/platform/query"
)

type providerRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &providerRepoPG{pool: pool}
}

const providerCols = `npi, entity_type_code, organization_name, last_name, first_name,
	middle_name, practice_address_line1, practice_address_line2, practice_city,
	practice_state, practice_postal_code, practice_phone, primary_taxonomy_code`

func scanRow(row pgx.Row) (*Provider, error) {
	var p Provider
	err := row.Scan(&p.NPI, &p.EntityTypeCode, &p.OrganizationName, &p.LastName, &p.FirstName,
		&p.MiddleName, &p.PracticeAddressLine1, &p.PracticeAddressLine2, &p.PracticeCity,
		&p.PracticeState, &p.PracticePostalCode, &p.PracticePhone, &p.PrimaryTaxonomyCode)
	return &p, err
}

// buildSearchQuery translates a Filter into SQL. Only non-blank fields add
// clauses; all of them AND together except the legacy single-token name,
// which is an OR across first and last name.
func buildSearchQuery(f Filter) *query.Builder {
	b := query.New("providers", providerCols)
	b.Where(`entity_type_code = ?`, "1")

	if f.FirstName != "" {
		b.Where(`first_name ILIKE ?`, query.Contains(f.FirstName))
	}
	if f.LastName != "" {
		b.Where(`last_name ILIKE ?`, query.Contains(f.LastName))
	}
	if f.NameEither != "" {
		p := query.Contains(f.NameEither)
		b.Where(`(first_name ILIKE ? OR last_name ILIKE ?)`, p, p)
	}
	if f.City != "" {
		b.Where(`practice_city ILIKE ?`, query.Contains(f.City))
	}
	if f.State != "" {
		b.Where(`LOWER(practice_state) = LOWER(?)`, f.State)
	}
	if f.ZipPrefix != "" {
		b.Where(`practice_postal_code LIKE ?`, query.Prefix(f.ZipPrefix))
	}
	if f.ZipExact != "" {
		b.Where(`practice_postal_code = ?`, f.ZipExact)
	}
	if len(f.TaxonomyCodes) > 0 {
		b.Where(`primary_taxonomy_code = ANY(?)`, f.TaxonomyCodes)
	}
	if f.HasGroupCodes {
		// Applied even when the group matched nothing: an unknown group
		// returns zero providers.
		b.Where(`primary_taxonomy_code = ANY(?)`, f.GroupCodes)
	}
	if f.PhoneDigits != "" {
		b.Where(`practice_phone LIKE ?`, query.Contains(f.PhoneDigits))
	}
	if f.PhoneAreaCode != "" {
		b.Where(`practice_phone LIKE ?`, query.Prefix(f.PhoneAreaCode))
	}

	b.OrderBy("last_name, first_name, npi")
	return b
}

func (r *providerRepoPG) Count(ctx context.Context, f Filter) (int, error) {
	b := buildSearchQuery(f)
	var total int
	if err := r.pool.QueryRow(ctx, b.CountSQL(), b.Args()...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *providerRepoPG) SearchPage(ctx context.Context, f Filter, limit, offset int) ([]*Provider, error) {
	b := buildSearchQuery(f)
	return r.query(ctx, b.PageSQL(), b.PageArgs(limit, offset)...)
}

func (r *providerRepoPG) SearchAll(ctx context.Context, f Filter, max int) ([]*Provider, error) {
	b := buildSearchQuery(f)
	return r.query(ctx, b.PageSQL(), b.PageArgs(max+1, 0)...)
}

func (r *providerRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*Provider, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Provider
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *providerRepoPG) GetByNPI(ctx context.Context, npi string) (*Provider, error) {
	p, err := scanRow(r.pool.QueryRow(ctx,
		`SELECT `+providerCols+` FROM providers WHERE npi = $1 AND entity_type_code = '1'`, npi))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *providerRepoPG) CountIndividuals(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM providers WHERE entity_type_code = '1'`).Scan(&total)
	return total, err
}

func (r *providerRepoPG) CountStates(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT practice_state) FROM providers
		 WHERE entity_type_code = '1'
		   AND practice_state IS NOT NULL AND practice_state <> ''`).Scan(&total)
	return total, err
}

func (r *providerRepoPG) DistinctStates(ctx context.Context, allowed []string) ([]string, error) {
	return r.strings(ctx,
		`SELECT DISTINCT practice_state FROM providers
		 WHERE entity_type_code = '1' AND practice_state = ANY($1)
		 ORDER BY practice_state`, allowed)
}

func (r *providerRepoPG) DistinctCities(ctx context.Context, state string, limit int) ([]string, error) {
	b := query.New("providers", "DISTINCT practice_city")
	b.Where(`entity_type_code = ?`, "1")
	b.Where(`practice_city IS NOT NULL AND practice_city <> ''`)
	if state != "" {
		b.Where(`LOWER(practice_state) = LOWER(?)`, state)
	}
	b.OrderBy("practice_city")
	return r.strings(ctx, b.PageSQL(), b.PageArgs(limit, 0)...)
}

func (r *providerRepoPG) strings(ctx context.Context, sql string, args ...interface{}) ([]string, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
