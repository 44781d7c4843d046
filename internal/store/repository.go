package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) HealthCheck(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// RunQuery executes a raw statement produced by the assistant pipeline and
// returns the result as generic rows keyed by column name. The statement has
// already passed the read-only gate; byte slices are converted to strings so
// text columns survive JSON encoding.
func (r *Repository) RunQuery(ctx context.Context, statement string) ([]map[string]any, error) {
	rows, err := r.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	results := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result rows: %w", err)
	}
	return results, nil
}

func translateConflict(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

// filterClauses accumulates WHERE conditions for the list endpoints. Columns
// are taken from a fixed whitelist at the call sites, never from request
// input.
type filterClauses struct {
	exprs []string
	args  []any
}

func (c *filterClauses) add(column, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	c.exprs = append(c.exprs, fmt.Sprintf(`%s ILIKE '%%' || $%d || '%%'`, column, len(c.args)))
}

func (c *filterClauses) addEqual(column, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	c.exprs = append(c.exprs, fmt.Sprintf(`%s = $%d`, column, len(c.args)))
}

func (c *filterClauses) where() string {
	if len(c.exprs) == 0 {
		return ""
	}
	return "\nWHERE " + strings.Join(c.exprs, " AND ")
}

func orderClause(columns map[string]string, requested string, desc bool) string {
	column, ok := columns[requested]
	if !ok {
		column = `"id"`
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf("\nORDER BY %s %s", column, direction)
}

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// NormalizePage clamps pagination parameters to the supported range. The
// list endpoints report the normalized values back to the caller.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func pageClause(page, pageSize int) (string, int, int) {
	page, pageSize = NormalizePage(page, pageSize)
	return fmt.Sprintf("\nLIMIT %d OFFSET %d", pageSize, (page-1)*pageSize), page, pageSize
}
