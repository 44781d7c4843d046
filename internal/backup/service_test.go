package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/medstock/medstock/internal/storage"
)

type fakeDumper struct {
	rows map[string][]map[string]any
	err  error
}

func (f *fakeDumper) RunQuery(_ context.Context, statement string) ([]map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	for table, rows := range f.rows {
		if strings.Contains(statement, fmt.Sprintf("%q", table)) {
			return rows, nil
		}
	}
	return []map[string]any{}, nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ storage.PutOptions) (storage.ObjectInfo, error) {
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = data
	return storage.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjectStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (f *fakeObjectStore) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	data, ok := f.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return storage.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var infos []storage.ObjectInfo
	for key, data := range f.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return infos, nil
}

type fakeVerifier struct {
	count int64
	err   error
	calls int
}

func (f *fakeVerifier) CountRows(_ context.Context, _ []byte) (int64, error) {
	f.calls++
	return f.count, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunUploadsEveryTable(t *testing.T) {
	store := &fakeObjectStore{}
	dumper := &fakeDumper{rows: map[string][]map[string]any{
		"Product": {
			{"id": int64(1), "code": "MED-001", "costPrice": 12.5},
			{"id": int64(2), "code": "MED-002", "costPrice": 7.25},
		},
	}}

	service := &Service{
		Store:  store,
		Dumper: dumper,
		Logger: testLogger(),
		Config: Config{Tables: []string{"Product", "Department"}},
	}

	summary, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(summary.Tables) != 2 {
		t.Fatalf("backed up %d tables, want 2", len(summary.Tables))
	}
	if summary.TotalRows != 2 {
		t.Fatalf("TotalRows = %d, want 2", summary.TotalRows)
	}
	if len(store.objects) != 2 {
		t.Fatalf("uploaded %d objects, want 2", len(store.objects))
	}

	productKey := summary.Tables[0].Key
	if !strings.HasPrefix(productKey, "backups/") || !strings.HasSuffix(productKey, "/Product.parquet") {
		t.Fatalf("unexpected product key %q", productKey)
	}
	if _, err := storage.SnapshotFromKey(productKey); err != nil {
		t.Fatalf("SnapshotFromKey(%q) error = %v", productKey, err)
	}

	records, err := decodeParquetRecords(store.objects[productKey])
	if err != nil {
		t.Fatalf("decodeParquetRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("decoded %d records, want 2", len(records))
	}
	if records[0].Table != "Product" {
		t.Fatalf("record table = %q", records[0].Table)
	}
	if !strings.Contains(records[0].RowJSON, `"code":"MED-001"`) {
		t.Fatalf("row json = %q", records[0].RowJSON)
	}
}

func TestRunUploadsEmptyTables(t *testing.T) {
	store := &fakeObjectStore{}
	service := &Service{
		Store:  store,
		Dumper: &fakeDumper{},
		Logger: testLogger(),
		Config: Config{Tables: []string{"Survey"}},
	}

	summary, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.TotalRows != 0 {
		t.Fatalf("TotalRows = %d, want 0", summary.TotalRows)
	}

	records, err := decodeParquetRecords(store.objects[summary.Tables[0].Key])
	if err != nil {
		t.Fatalf("decodeParquetRecords() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("decoded %d records, want 0", len(records))
	}
}

func TestRunUsesConfiguredPrefix(t *testing.T) {
	store := &fakeObjectStore{}
	service := &Service{
		Store:  store,
		Dumper: &fakeDumper{},
		Logger: testLogger(),
		Config: Config{Prefix: "archive", Tables: []string{"Seller"}},
	}

	summary, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(summary.Tables[0].Key, "archive/") {
		t.Fatalf("key = %q", summary.Tables[0].Key)
	}
}

func TestRunAbortsOnDumpError(t *testing.T) {
	dumpErr := errors.New("connection refused")
	service := &Service{
		Store:  &fakeObjectStore{},
		Dumper: &fakeDumper{err: dumpErr},
		Logger: testLogger(),
		Config: Config{Tables: []string{"Product"}},
	}

	if _, err := service.Run(context.Background()); !errors.Is(err, dumpErr) {
		t.Fatalf("Run() error = %v, want %v", err, dumpErr)
	}
}

func TestRunVerifiesRowCounts(t *testing.T) {
	dumper := &fakeDumper{rows: map[string][]map[string]any{
		"Product": {{"id": int64(1)}},
	}}
	verifier := &fakeVerifier{count: 1}
	service := &Service{
		Store:    &fakeObjectStore{},
		Dumper:   dumper,
		Verifier: verifier,
		Logger:   testLogger(),
		Config:   Config{Verify: true, Tables: []string{"Product"}},
	}

	if _, err := service.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("verifier calls = %d, want 1", verifier.calls)
	}
}

func TestRunFailsOnVerificationMismatch(t *testing.T) {
	dumper := &fakeDumper{rows: map[string][]map[string]any{
		"Product": {{"id": int64(1)}, {"id": int64(2)}},
	}}
	service := &Service{
		Store:    &fakeObjectStore{},
		Dumper:   dumper,
		Verifier: &fakeVerifier{count: 1},
		Logger:   testLogger(),
		Config:   Config{Verify: true, Tables: []string{"Product"}},
	}

	_, err := service.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "expected 2") {
		t.Fatalf("Run() error = %v, want row count mismatch", err)
	}
}

func TestRunDefaultsToAllAdminTables(t *testing.T) {
	store := &fakeObjectStore{}
	service := &Service{
		Store:  store,
		Dumper: &fakeDumper{},
		Logger: testLogger(),
	}

	summary, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summary.Tables) != len(defaultTables) {
		t.Fatalf("backed up %d tables, want %d", len(summary.Tables), len(defaultTables))
	}
	if summary.Elapsed < 0 || summary.StartedAt.After(time.Now()) {
		t.Fatalf("summary timing invalid: %+v", summary)
	}
}
