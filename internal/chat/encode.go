package chat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// maxSafeInteger is the largest integer a float64 represents exactly. Larger
// int64 values would be rounded by JSON readers, so they are rendered as
// decimal strings instead.
const maxSafeInteger = 1<<53 - 1

// EncodeRows serializes a query result for inclusion in a follow-up model
// turn.
func EncodeRows(rows []map[string]any) (string, error) {
	normalized := make([]map[string]any, len(rows))
	for i, row := range rows {
		out := make(map[string]any, len(row))
		for column, value := range row {
			out[column] = normalizeValue(value)
		}
		normalized[i] = out
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("serialize query result: %w", err)
	}
	return string(data), nil
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case int64:
		if typed > maxSafeInteger || typed < -maxSafeInteger {
			return strconv.FormatInt(typed, 10)
		}
		return typed
	case uint64:
		if typed > maxSafeInteger {
			return strconv.FormatUint(typed, 10)
		}
		return typed
	case []byte:
		return string(typed)
	case time.Time:
		return typed.UTC().Format(time.RFC3339)
	default:
		return typed
	}
}
