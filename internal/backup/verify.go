package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// DuckDBVerifier re-reads an encoded table dump with DuckDB to confirm the
// file is a valid parquet document with the expected number of rows.
type DuckDBVerifier struct{}

func (DuckDBVerifier) CountRows(ctx context.Context, data []byte) (int64, error) {
	workDir, err := os.MkdirTemp("", "medstock-backup-verify-")
	if err != nil {
		return 0, fmt.Errorf("create verification work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	localPath := filepath.Join(workDir, "dump.parquet")
	if err := os.WriteFile(localPath, data, 0o600); err != nil {
		return 0, fmt.Errorf("write verification file: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return 0, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM read_parquet(%s)`, quoteString(localPath))
	var count int64
	if err := db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count parquet rows: %w", err)
	}
	return count, nil
}

func quoteString(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}
