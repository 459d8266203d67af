// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the prompt and favorites services to
// HTTP: generation endpoints, the favorites CRUD surface and the status
// endpoints. Every error response uses the {"success": false, "error": ...}
// envelope from package shared.
package api
