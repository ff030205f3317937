package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/store"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// closeRows closes rows and logs a failure to do so.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}

// countRows runs a COUNT(*) query for table.
func countRows(ctx context.Context, db store.DBTX, table string) (int64, error) {
	var n int64
	// table is always a package constant, never user input.
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// jsonColumn marshals v for a JSONB column.
func jsonColumn(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSONB column: %w", err)
	}
	return b, nil
}

// stringList decodes a JSONB array of strings. NULL or empty input yields an
// empty, non-nil slice.
func stringList(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode JSONB column: %w", err)
	}
	return out, nil
}
