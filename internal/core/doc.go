// Package core provides the business logic of the HR console tables.
//
// This package sits between the column engine in internal/grid and the
// transports (web handlers, CLI). It has no HTTP dependencies.
//
// # Architecture
//
//   - Table Definitions: Registered via the registry, each table lists its
//     columns, fixed columns, attribute groups and action column.
//   - Preferences: The committed column configuration of one owner, loaded
//     from and saved to a [PreferenceStore].
//   - Rows: Paged row data from a [RowSource].
//   - Service: The entry point for rendering tables and applying column
//     commands.
//
// # Table Registry
//
// Tables are registered at init time using [Register], usually from the YAML
// catalog in internal/core/tables:
//
//	core.Register(TableDefinition{
//	    Info: TableInfo{Key: "employees", Group: "People", Label: "Employees", RowKey: "id"},
//	    Columns: []ColumnSpec{
//	        {Key: "name", Title: "Name", Width: 200, Pinned: "left"},
//	        {Key: "department", Title: "Department", Width: 160, Group: "org"},
//	    },
//	    Fixed:         []string{"name"},
//	    AttributeKeys: []string{"department"},
//	})
//
// A reload swaps the whole catalog with [Replace].
//
// # Column Commands
//
// [Service.ApplyColumns] builds a grid.Host from the saved preference, runs
// one settings interaction against it and persists whatever the host commits
// through its change callback. The host is then synced with the saved state,
// the same way a browser round trip would.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - TBL001-TBL002: Catalog errors (unknown table, invalid definition)
//   - COL001-COL002: Column command errors
//   - PREF001-PREF002: Preference persistence errors
//   - DB001-DB003: Database errors
//   - REQ001-REQ002: Request cancellation and timeouts
//   - RATE001: Rate limiting
package core
