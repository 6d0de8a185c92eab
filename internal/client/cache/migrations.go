package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Migration rewrites every stored snapshot from one schema version to the next.
type Migration struct {
	Apply func(snapshots map[string][]byte) (map[string][]byte, error)
	From  string
	To    string
}

// DefaultMigrations returns the built-in migration chain.
func DefaultMigrations() []Migration {
	return []Migration{
		{From: "1.0.0", To: "2.0.0", Apply: wrapBareArrays},
	}
}

// wrapBareArrays переводит формат 1.0.0 (голый JSON массив) в конверт 2.0.0.
// Строковые значения (указатели выбора) переносятся как есть, остальное отбрасывается.
func wrapBareArrays(snapshots map[string][]byte) (map[string][]byte, error) {
	migrated := make(map[string][]byte, len(snapshots))
	for key, data := range snapshots {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			continue
		}

		switch trimmed[0] {
		case '[':
			var records []json.RawMessage
			if err := json.Unmarshal(trimmed, &records); err != nil {
				// Битый массив не переносим
				continue
			}
			wrapped, err := json.Marshal(snapshot{Records: trimmed, LastSyncedAt: time.Time{}})
			if err != nil {
				return nil, fmt.Errorf("failed to wrap %s: %w", key, err)
			}
			migrated[key] = wrapped
		case '"':
			migrated[key] = trimmed
		}
	}
	return migrated, nil
}
