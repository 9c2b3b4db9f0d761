// Package sqlite provides the SQLite-backed music library.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// The tracks table keeps the column names of the classic jukebox database
// (title, artist, file_path, lyrics) so existing rows can be copied in with
// a plain INSERT ... SELECT.
//
// # Data Location
//
// By default, the database is stored at ~/.jukebox/data/library.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
