package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
)

var _ repository.BackupRepository = (*BackupRepo)(nil)

// BackupRepo dumps and restores the whole database in the JSON layout the
// fleet's existing backups use.
type BackupRepo struct {
	db conn
}

func NewBackupRepo(s *Store) *BackupRepo { return &BackupRepo{db: s.conn()} }

func (r *BackupRepo) Export(ctx context.Context) (model.Snapshot, error) {
	snap := make(model.Snapshot, len(backupTables))
	for _, table := range backupTables {
		dump, err := r.exportTable(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", table, err)
		}
		snap[table] = dump
	}
	return snap, nil
}

func (r *BackupRepo) exportTable(ctx context.Context, table string) (model.TableDump, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM `+table) //nolint:gosec // table names come from the fixed list above
	if err != nil {
		return model.TableDump{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return model.TableDump{}, err
	}

	dump := model.TableDump{Columns: cols, Rows: []map[string]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return model.TableDump{}, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			// []byte reaches JSON as base64; backups store plain strings.
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = vals[i]
			}
		}
		dump.Rows = append(dump.Rows, row)
	}
	return dump, rows.Err()
}

// Import restores a snapshot inside one transaction. Every known table in
// the snapshot is cleared and refilled; the birthday_settings singleton is
// merged via INSERT OR REPLACE instead of cleared, matching the legacy
// import tool. Unknown tables are skipped.
func (r *BackupRepo) Import(ctx context.Context, snap model.Snapshot) (model.ImportStats, error) {
	stats := model.ImportStats{Tables: map[string]int{}}

	known := make(map[string]bool, len(backupTables))
	for _, t := range backupTables {
		known[t] = true
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range backupTables {
		dump, ok := snap[table]
		if !ok {
			continue
		}
		if table != "birthday_settings" {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return stats, fmt.Errorf("clear %s: %w", table, err)
			}
		}
		n, err := importRows(ctx, tx, table, dump)
		if err != nil {
			return stats, fmt.Errorf("import %s: %w", table, err)
		}
		stats.Tables[table] = n
		stats.TotalRecords += n
	}

	for table := range snap {
		if !known[table] && table != "sqlite_sequence" {
			stats.Tables[table] = 0
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}
	return stats, nil
}

func importRows(ctx context.Context, tx *sql.Tx, table string, dump model.TableDump) (int, error) {
	count := 0
	for _, row := range dump.Rows {
		cols := make([]string, 0, len(row))
		vals := make([]any, 0, len(row))
		for _, c := range dump.Columns {
			v, ok := row[c]
			if !ok {
				continue
			}
			cols = append(cols, c)
			vals = append(vals, normalizeJSONValue(v))
		}
		if len(cols) == 0 {
			continue
		}
		q := fmt.Sprintf(`INSERT OR REPLACE INTO %s (%s) VALUES (%s)`,
			table, strings.Join(cols, ", "), placeholders(len(cols)))
		if _, err := tx.ExecContext(ctx, q, vals...); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// normalizeJSONValue undoes encoding/json's float64 default for integral
// numbers so INTEGER columns round-trip exactly.
func normalizeJSONValue(v any) any {
	if f, ok := v.(float64); ok {
		if f == float64(int64(f)) {
			return int64(f)
		}
	}
	return v
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
