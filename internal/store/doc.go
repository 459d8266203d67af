// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism (a CSV file or
// PostgreSQL) from the favorites service, so the service depends only on
// the behavior it needs.
package store
