// Package testutils holds helpers shared by tests across packages. It
// currently provides an in-memory slog handler for asserting on log output.
package testutils
