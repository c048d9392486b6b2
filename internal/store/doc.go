// Package store implements the persistence side of the HR console: column
// preference stores (memory, PostgreSQL, SQLite) and row sources (an
// in-memory demo data set and PostgreSQL tables).
//
// Every implementation satisfies core.PreferenceStore or core.RowSource, so
// the service layer never knows which backend is active. [Open] picks the
// backend from the database configuration.
package store
