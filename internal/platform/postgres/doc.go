// Package postgres provides the PostgreSQL implementation of
// store.FavoriteStore, the embedded goose migrations that create its schema,
// and helpers for opening connections and mapping driver errors to store
// errors.
package postgres
