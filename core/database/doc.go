// Package database opens the GORM connection behind the rename journal and
// inspects table schemas.
//
// # Connect
//
// Connect selects the dialector from Config.Driver: "sqlite" (default, a
// local file) or "mysql" for a shared journal. The connection is verified
// with a ping bounded by Config.TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for both dialects. The journal uses
// it with MissingColumns to refuse a pre-existing table it cannot write to.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	columns, err := database.GetTableColumns(db, "fnum_renames")
package database
