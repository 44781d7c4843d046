package storage

import (
	"fmt"
	"strings"
	"time"
)

const snapshotTimeLayout = "20060102T150405Z"

// DefaultBackupPrefix is the leading key segment used when no backup prefix
// is configured.
const DefaultBackupPrefix = "backups"

// BuildBackupObjectKey returns the object key for one table dump inside a
// backup snapshot, for example "backups/20260101T020304Z/Product.parquet".
// The bucket-level prefix applied by the object store itself is not part of
// the key.
func BuildBackupObjectKey(prefix string, startedAt time.Time, table string) (string, error) {
	if prefix == "" {
		prefix = DefaultBackupPrefix
	}
	if err := validateKeyComponent(prefix); err != nil {
		return "", fmt.Errorf("invalid backup prefix %q: %w", prefix, err)
	}
	if err := validateKeyComponent(table); err != nil {
		return "", fmt.Errorf("invalid table name %q: %w", table, err)
	}
	snapshot := startedAt.UTC().Format(snapshotTimeLayout)
	return fmt.Sprintf("%s/%s/%s.parquet", prefix, snapshot, table), nil
}

// SnapshotFromKey extracts the snapshot timestamp component of a key produced
// by BuildBackupObjectKey.
func SnapshotFromKey(key string) (time.Time, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("key %q is not a backup object key", key)
	}
	ts, err := ParseSnapshot(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("key %q has invalid snapshot timestamp: %w", key, err)
	}
	return ts, nil
}

// ParseSnapshot parses a snapshot timestamp in the form it takes inside
// backup object keys, e.g. "20260102T030405Z".
func ParseSnapshot(value string) (time.Time, error) {
	return time.Parse(snapshotTimeLayout, value)
}

func validateKeyComponent(component string) error {
	if component == "" {
		return fmt.Errorf("component is empty")
	}
	if strings.ContainsAny(component, "/\\") {
		return fmt.Errorf("component contains a path separator")
	}
	if component == "." || component == ".." {
		return fmt.Errorf("component is a relative path element")
	}
	return nil
}
