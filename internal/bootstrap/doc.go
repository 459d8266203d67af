// Package bootstrap assembles the provider clients, the worker pool, the
// generation chain and the favorites store from a config.Config. Both the
// HTTP server and the CLI are built on it.
package bootstrap
