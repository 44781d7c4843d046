package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/medstock/medstock/internal/storage"
)

// RowWriter replaces the full contents of one admin table.
type RowWriter interface {
	ReplaceTableRows(ctx context.Context, table string, rows []map[string]any) error
}

type RestoreSummary struct {
	Snapshot  time.Time
	Tables    []TableSummary
	TotalRows int64
	// Missing lists tables whose dump was absent from the snapshot; they are
	// left untouched rather than cleared.
	Missing []string
}

type RestoreService struct {
	Store  storage.ObjectStore
	Writer RowWriter
	Logger *slog.Logger
	Config Config
}

// Run loads every table dump of one snapshot and replaces the corresponding
// table contents. A failing table aborts the restore; tables already
// restored keep their restored state, so a rerun of the same snapshot is the
// recovery path.
func (s *RestoreService) Run(ctx context.Context, snapshot time.Time) (RestoreSummary, error) {
	summary := RestoreSummary{Snapshot: snapshot.UTC()}

	tables := s.Config.Tables
	if len(tables) == 0 {
		tables = defaultTables
	}

	for _, table := range tables {
		key, err := storage.BuildBackupObjectKey(s.Config.Prefix, snapshot, table)
		if err != nil {
			return summary, err
		}

		rows, err := s.loadTableDump(ctx, key, table)
		if errors.Is(err, storage.ErrObjectNotFound) {
			summary.Missing = append(summary.Missing, table)
			s.Logger.Warn("table dump missing from snapshot, skipping",
				slog.String("table", table),
				slog.String("key", key),
			)
			continue
		}
		if err != nil {
			return summary, err
		}

		if err := s.Writer.ReplaceTableRows(ctx, table, rows); err != nil {
			return summary, err
		}

		summary.Tables = append(summary.Tables, TableSummary{Table: table, Key: key, Rows: int64(len(rows))})
		summary.TotalRows += int64(len(rows))
		s.Logger.Info("table restored",
			slog.String("table", table),
			slog.String("key", key),
			slog.Int("rows", len(rows)),
		)
	}

	return summary, nil
}

// Snapshots lists the snapshot timestamps available under the backup prefix,
// newest first. Objects that are not table dumps are ignored.
func Snapshots(ctx context.Context, store storage.ObjectStore, prefix string) ([]time.Time, error) {
	if prefix == "" {
		prefix = storage.DefaultBackupPrefix
	}
	infos, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list backup objects: %w", err)
	}

	seen := make(map[time.Time]struct{})
	var snapshots []time.Time
	for _, info := range infos {
		ts, err := storage.SnapshotFromKey(info.Key)
		if err != nil {
			continue
		}
		if _, ok := seen[ts]; ok {
			continue
		}
		seen[ts] = struct{}{}
		snapshots = append(snapshots, ts)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].After(snapshots[j]) })
	return snapshots, nil
}

func (s *RestoreService) loadTableDump(ctx context.Context, key, table string) ([]map[string]any, error) {
	object, err := s.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("download %q: %w", key, err)
	}
	defer func() { _ = object.Close() }()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}

	records, err := decodeParquetRecords(data)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}

	rows := make([]map[string]any, 0, len(records))
	for i, record := range records {
		if record.Table != table {
			return nil, fmt.Errorf("record %d of %q belongs to table %q, expected %q", i, key, record.Table, table)
		}
		row, err := decodeRow(record.RowJSON)
		if err != nil {
			return nil, fmt.Errorf("record %d of %q: %w", i, key, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeRow keeps numbers as json.Number so 64-bit ids survive the round
// trip; the driver passes them through as text and the database coerces by
// column type.
func decodeRow(rowJSON string) (map[string]any, error) {
	decoder := json.NewDecoder(strings.NewReader(rowJSON))
	decoder.UseNumber()
	var row map[string]any
	if err := decoder.Decode(&row); err != nil {
		return nil, fmt.Errorf("decode row json: %w", err)
	}
	return row, nil
}
