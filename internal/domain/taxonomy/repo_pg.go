package taxonomy

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/providerlookup/providerlookup/internal/platform/query"
)

type taxonomyRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &taxonomyRepoPG{pool: pool}
}

const taxonomyCols = `code, "grouping", classification, specialization,
	definition, notes, display_name, section`

func scanRow(row pgx.Row) (*Taxonomy, error) {
	var t Taxonomy
	err := row.Scan(&t.Code, &t.Grouping, &t.Classification, &t.Specialization,
		&t.Definition, &t.Notes, &t.DisplayName, &t.Section)
	return &t, err
}

func (r *taxonomyRepoPG) GetByCode(ctx context.Context, code string) (*Taxonomy, error) {
	t, err := scanRow(r.pool.QueryRow(ctx,
		`SELECT `+taxonomyCols+` FROM nucc_taxonomy WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taxonomyRepoPG) GetByCodes(ctx context.Context, codes []string) (map[string]*Taxonomy, error) {
	out := make(map[string]*Taxonomy, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+taxonomyCols+` FROM nucc_taxonomy WHERE code = ANY($1)`, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out[t.Code] = t
	}
	return out, rows.Err()
}

func (r *taxonomyRepoPG) CodesMatching(ctx context.Context, term string) ([]string, error) {
	p := query.Contains(term)
	return r.codes(ctx,
		`SELECT code FROM nucc_taxonomy
		 WHERE classification ILIKE $1 OR specialization ILIKE $1 OR "grouping" ILIKE $1`, p)
}

func (r *taxonomyRepoPG) CodesByGrouping(ctx context.Context, term string) ([]string, error) {
	return r.codes(ctx,
		`SELECT code FROM nucc_taxonomy WHERE "grouping" ILIKE $1`, query.Contains(term))
}

func (r *taxonomyRepoPG) codes(ctx context.Context, sql string, args ...interface{}) ([]string, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *taxonomyRepoPG) List(ctx context.Context, q string, limit int) ([]*Taxonomy, error) {
	b := query.New("nucc_taxonomy", taxonomyCols)
	if q != "" {
		p := query.Contains(q)
		b.Where(`(classification ILIKE ? OR specialization ILIKE ?
			OR "grouping" ILIKE ? OR code ILIKE ?)`, p, p, p, p)
	}
	b.OrderBy("code")

	rows, err := r.pool.Query(ctx, b.PageSQL(), b.PageArgs(limit, 0)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Taxonomy
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *taxonomyRepoPG) DistinctGroupings(ctx context.Context) ([]string, error) {
	return r.codes(ctx,
		`SELECT DISTINCT "grouping" FROM nucc_taxonomy
		 WHERE "grouping" IS NOT NULL AND "grouping" <> ''
		 ORDER BY "grouping"`)
}

func (r *taxonomyRepoPG) DistinctClassifications(ctx context.Context, group string) ([]string, error) {
	b := query.New("nucc_taxonomy", "DISTINCT classification")
	b.Where(`classification IS NOT NULL AND classification <> ''`)
	if group != "" {
		b.Where(`"grouping" ILIKE ?`, query.Contains(group))
	}
	b.OrderBy("classification")
	return r.codes(ctx, b.SQL(), b.Args()...)
}
