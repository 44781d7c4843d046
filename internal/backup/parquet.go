// Package backup dumps the admin database tables to parquet files and
// uploads them to the configured object store.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

type parquetRecord struct {
	Table   string `parquet:"table"`
	RowJSON string `parquet:"row_json"`
}

type encodeResult struct {
	Data     []byte
	RowCount int64
}

// encodeTableToParquet serializes every row of one table as a parquet record
// holding the table name and the row as a JSON document. Encoding rows as
// JSON keeps one schema for all tables regardless of their columns.
func encodeTableToParquet(table string, rows []map[string]any) (encodeResult, error) {
	records := make([]parquetRecord, 0, len(rows))
	for i, row := range rows {
		payload, err := json.Marshal(row)
		if err != nil {
			return encodeResult{}, fmt.Errorf("marshal row %d of table %q: %w", i, table, err)
		}
		records = append(records, parquetRecord{Table: table, RowJSON: string(payload)})
	}

	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[parquetRecord](buf)
	if len(records) > 0 {
		if _, err := writer.Write(records); err != nil {
			return encodeResult{}, fmt.Errorf("write parquet rows for table %q: %w", table, err)
		}
	}
	if err := writer.Close(); err != nil {
		return encodeResult{}, fmt.Errorf("close parquet writer for table %q: %w", table, err)
	}

	return encodeResult{Data: buf.Bytes(), RowCount: int64(len(records))}, nil
}

// decodeParquetRecords reads back the records of an encoded table dump.
func decodeParquetRecords(data []byte) ([]parquetRecord, error) {
	reader := parquet.NewGenericReader[parquetRecord](bytes.NewReader(data))
	defer reader.Close()

	records := make([]parquetRecord, 0, reader.NumRows())
	buf := make([]parquetRecord, 64)
	for {
		n, err := reader.Read(buf)
		records = append(records, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet records: %w", err)
		}
	}
}
