package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ReplaceTableRows swaps the full contents of a table inside one
// transaction: existing rows are deleted, the given rows inserted, and the
// id sequence advanced past the highest restored id so later inserts do not
// collide. Column names come from a backup snapshot this process wrote and
// are quoted like every other identifier in this package.
func (r *Repository) ReplaceTableRows(ctx context.Context, table string, rows []map[string]any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin restore of %q: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	quoted := quoteIdent(table)
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+quoted); err != nil {
		return fmt.Errorf("clear table %q: %w", table, err)
	}

	for i, row := range rows {
		columns := make([]string, 0, len(row))
		for column := range row {
			columns = append(columns, column)
		}
		sort.Strings(columns)

		quotedColumns := make([]string, len(columns))
		placeholders := make([]string, len(columns))
		args := make([]any, len(columns))
		for j, column := range columns {
			quotedColumns[j] = quoteIdent(column)
			placeholders[j] = fmt.Sprintf("$%d", j+1)
			args[j] = row[column]
		}

		insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			quoted, strings.Join(quotedColumns, ", "), strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("restore row %d of table %q: %w", i, table, err)
		}
	}

	resetSequence := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX("id") FROM %s), 0) + 1, false)`,
		quoteLiteral(quoted), quoted)
	if _, err := tx.ExecContext(ctx, resetSequence); err != nil {
		return fmt.Errorf("reset id sequence of %q: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit restore of %q: %w", table, err)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return strings.ReplaceAll(value, `'`, `''`)
}
