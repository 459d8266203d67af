// Package csvstore implements store.FavoriteStore on top of a single CSV
// file. The file is the source of truth: every operation re-reads it, and
// every mutation rewrites it whole through a temp file and rename.
package csvstore
