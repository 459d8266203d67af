// Command promptctl generates prompts and manages favorites from the
// terminal. It builds the same components as the server and works directly
// on the configured favorites backend.
package main
