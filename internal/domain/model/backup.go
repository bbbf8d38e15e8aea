package model

// TableDump is one table in a backup snapshot: the column list plus every
// row keyed by column name. The layout is kept stable so old JSON
// snapshots import unchanged.
type TableDump struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Snapshot is a full database export keyed by table name.
type Snapshot map[string]TableDump

// ImportStats reports what a restore touched.
type ImportStats struct {
	Tables       map[string]int `json:"tables"`
	TotalRecords int            `json:"total_records"`
}
