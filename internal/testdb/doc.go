//go:build integration

// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests call GetTestDBWithT, which skips when no database URL is
// configured, applies the embedded migrations and closes the connection on
// cleanup. ResetFavorites empties the favorites table between tests.
//
// The package uses the following environment variables:
//
//   - DATABASE_URL: primary connection string
//   - PROMPTCHAIN_TEST_DB_URL: alternative connection string
package testdb
